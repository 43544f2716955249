// Package notion archives finished cards to a Notion database through the
// public pages API.
package notion
