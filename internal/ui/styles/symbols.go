package styles

import (
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Symbols holds the icon/symbol set based on nerdfont configuration
type Symbols struct {
	Branch  string // current branch marker
	Merged  string
	Stale   string
	Recent  string
	Success string // per-item report: done
	Failure string // per-item report: failed
}

// Default symbols (ASCII-safe)
var defaultSymbols = Symbols{
	Branch:  "*",
	Merged:  "●",
	Stale:   "◌",
	Recent:  "○",
	Success: "✓",
	Failure: "✗",
}

// Nerd font symbols
var nerdfontSymbols = Symbols{
	Branch:  "\ue725", // nf-dev-git_branch
	Merged:  "\ue727", // nf-dev-git_merge
	Stale:   "\uf017", // nf-fa-clock_o
	Recent:  "\uf111", // nf-fa-circle
	Success: "\uf00c", // nf-fa-check
	Failure: "\uf00d", // nf-fa-times
}

// currentSymbols holds the active symbol set
var currentSymbols = defaultSymbols

// SetNerdfont enables or disables nerd font symbols
func SetNerdfont(enabled bool) {
	if enabled {
		currentSymbols = nerdfontSymbols
	} else {
		currentSymbols = defaultSymbols
	}
}

// CurrentSymbols returns the current symbol set
func CurrentSymbols() Symbols {
	return currentSymbols
}

// CategorySymbol returns the symbol for a branch category name.
func CategorySymbol(category string) string {
	switch category {
	case "merged":
		return currentSymbols.Merged
	case "stale":
		return currentSymbols.Stale
	case "recent":
		return currentSymbols.Recent
	default:
		return ""
	}
}

// FormatCategory returns the colored symbol and name of a branch category.
func FormatCategory(category string) string {
	sym := CategorySymbol(category)
	if sym == "" {
		return category
	}
	return CategoryStyle(category).Render(sym + " " + category)
}

// FormatResult renders one line of a per-item report, e.g. "✓ deleted feature/a".
func FormatResult(ok bool, text string) string {
	if ok {
		return SuccessStyle.Render(currentSymbols.Success) + " " + text
	}
	return ErrorStyle.Render(currentSymbols.Failure) + " " + text
}

// FormatLink returns text wrapped in an OSC 8 hyperlink to url.
// Returns the styled text alone if url is empty.
func FormatLink(text, url string, style lipgloss.Style) string {
	if url == "" {
		return style.Render(text)
	}
	styled := style.Underline(true).Render(text)
	return ansi.SetHyperlink(url) + styled + ansi.ResetHyperlink()
}
