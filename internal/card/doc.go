// Package card turns a word analysis into a finished flashcard: Format
// derives the display and link fields, and Render produces the Anki import
// text from the resulting flat mapping.
package card
