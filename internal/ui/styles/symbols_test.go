package styles

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

func TestSetNerdfont(t *testing.T) {
	SetNerdfont(false)
	if CurrentSymbols() != defaultSymbols {
		t.Error("expected default symbols")
	}
	if CategorySymbol("merged") != "●" {
		t.Errorf("expected default merged symbol, got %q", CategorySymbol("merged"))
	}

	SetNerdfont(true)
	if CurrentSymbols() != nerdfontSymbols {
		t.Error("expected nerdfont symbols")
	}
	if CategorySymbol("merged") != "\ue727" {
		t.Errorf("expected nerdfont merged symbol, got %q", CategorySymbol("merged"))
	}

	// Reset
	SetNerdfont(false)
}

func TestCategorySymbol(t *testing.T) {
	SetNerdfont(false)

	tests := []struct {
		category string
		expected string
	}{
		{"merged", "●"},
		{"stale", "◌"},
		{"recent", "○"},
		{"other", ""},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			if got := CategorySymbol(tt.category); got != tt.expected {
				t.Errorf("CategorySymbol(%q) = %q, want %q", tt.category, got, tt.expected)
			}
		})
	}
}

func TestFormatCategory(t *testing.T) {
	SetNerdfont(false)

	if got := ansi.Strip(FormatCategory("stale")); got != "◌ stale" {
		t.Errorf("FormatCategory(stale) = %q", got)
	}
	if got := FormatCategory("whatever"); got != "whatever" {
		t.Errorf("unknown category should pass through, got %q", got)
	}
}

func TestFormatResult(t *testing.T) {
	SetNerdfont(false)

	if got := ansi.Strip(FormatResult(true, "deleted a")); got != "✓ deleted a" {
		t.Errorf("FormatResult(true) = %q", got)
	}
	if got := ansi.Strip(FormatResult(false, "b: boom")); got != "✗ b: boom" {
		t.Errorf("FormatResult(false) = %q", got)
	}
}

func TestFormatLink(t *testing.T) {
	t.Parallel()

	url := "https://github.com/acme/app/compare/main...x"
	got := FormatLink("open", url, lipgloss.NewStyle())
	if !strings.Contains(got, url) {
		t.Errorf("FormatLink() missing hyperlink target: %q", got)
	}
	if ansi.Strip(got) != "open" {
		t.Errorf("visible text = %q, want open", ansi.Strip(got))
	}

	if got := FormatLink("plain", "", lipgloss.NewStyle()); got != "plain" {
		t.Errorf("FormatLink() without url = %q", got)
	}
}
