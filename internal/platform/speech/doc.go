// Package speech synthesizes the audio clips attached to each card.
//
// Two backends are available: the Google Translate TTS endpoint, which needs
// no credentials, and OpenAI TTS. Both return MP3 bytes in memory; Clip turns
// them into the base64 payload and embed reference returned to the caller.
// Every backend is wrapped in a circuit breaker so a dead service fails
// requests quickly instead of tying up handlers until the timeout.
package speech
