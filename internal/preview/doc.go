// Package preview renders the preview pane of the pickers: highlighted
// diffs for changed files and stashes, highlighted file content for
// untracked files, and a short commit list for branches.
//
// Syntax colours come from chroma. Diff markers, hunk headers and the
// commit list use the active lipgloss theme.
package preview
