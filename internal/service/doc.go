// Package service orchestrates card generation: it fans out the analysis and
// sentence audio calls, derives the example audio, formats and renders the
// card, and dispatches the optional archive write.
package service
