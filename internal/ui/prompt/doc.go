// Package prompt provides simple interactive prompts.
//
// Prompts render on stderr so stdout stays clean for data.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt with a configurable default
//   - [TextInput]: Single-line text input
package prompt
