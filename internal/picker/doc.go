// Package picker presents rows in an interactive fuzzy selector.
//
// A [Presenter] owns the browsing loop: it renders the active view with an
// Abort sentinel below a separator, hands the menu to a [Selector] backend
// and interprets what came back. The toggle key swaps views while keeping
// the typed query; every other outcome ends the loop.
//
//	Browsing(view) --toggle--> Browsing(next view)
//	Browsing(view) --accept | delete key | alternate key | cancel--> Done
//
// Two backends exist. [Fzf] shells out to fzf and supports a preview pane
// through "gpick preview". [Builtin] is a bubbletea list with sahilm/fuzzy
// filtering for systems without fzf.
//
// If the caller's query matches exactly one candidate, Present returns it
// without starting a selector at all.
package picker
