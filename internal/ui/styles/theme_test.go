package styles

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/raphi011/gpick/internal/config"
)

func init() {
	// never query the real terminal from tests
	hasDarkBackground = func() bool { return true }
}

func TestInit_DefaultTheme(t *testing.T) {
	Init(config.ThemeConfig{})

	theme := Current()
	if theme.Primary != lipgloss.Color("62") {
		t.Errorf("expected default primary color 62, got %v", theme.Primary)
	}
	if theme.Accent != lipgloss.Color("212") {
		t.Errorf("expected default accent color 212, got %v", theme.Accent)
	}
}

func TestInit_PresetTheme(t *testing.T) {
	tests := []struct {
		preset        string
		mode          string
		expectedColor string // primary color
	}{
		{"dracula", "", "#bd93f9"},
		{"nord", "dark", "#88c0d0"},
		{"nord", "light", "#5e81ac"},
		{"gruvbox", "auto", "#83a598"},
		{"catppuccin", "light", "#1e66f5"},
		{"dracula", "light", "#bd93f9"}, // no light variant: falls back to dark
	}

	for _, tt := range tests {
		t.Run(tt.preset+"/"+tt.mode, func(t *testing.T) {
			Init(config.ThemeConfig{Name: tt.preset, Mode: tt.mode})

			if got := Current().Primary; got != lipgloss.Color(tt.expectedColor) {
				t.Errorf("primary = %v, want %s", got, tt.expectedColor)
			}
		})
	}

	Init(config.ThemeConfig{})
}

func TestInit_NoneTheme(t *testing.T) {
	Init(config.ThemeConfig{Name: "none"})

	if _, ok := Current().Primary.(lipgloss.NoColor); !ok {
		t.Errorf("none theme primary = %T, want lipgloss.NoColor", Current().Primary)
	}

	Init(config.ThemeConfig{})
}

func TestInit_PresetWithOverride(t *testing.T) {
	Init(config.ThemeConfig{
		Name:    "dracula",
		Accent:  "#123456",
		Warning: "#abcdef",
	})

	theme := Current()
	if theme.Primary != lipgloss.Color("#bd93f9") {
		t.Errorf("expected dracula primary color, got %v", theme.Primary)
	}
	if theme.Accent != lipgloss.Color("#123456") {
		t.Errorf("expected custom accent color #123456, got %v", theme.Accent)
	}
	if theme.Warning != lipgloss.Color("#abcdef") {
		t.Errorf("expected custom warning color #abcdef, got %v", theme.Warning)
	}

	Init(config.ThemeConfig{})
}

func TestPresetNames(t *testing.T) {
	for _, name := range PresetNames() {
		if _, ok := themeFamilies[name]; !ok {
			t.Errorf("preset %q has no theme family", name)
		}
	}
	if len(PresetNames()) != len(themeFamilies) {
		t.Errorf("%d preset names, %d families", len(PresetNames()), len(themeFamilies))
	}
}

func TestApplyTheme_UpdatesGlobalStyles(t *testing.T) {
	Init(config.ThemeConfig{Name: "dracula"})

	if Primary != lipgloss.Color("#bd93f9") {
		t.Errorf("expected Primary to be updated to dracula color, got %v", Primary)
	}
	if PrimaryStyle.GetForeground() != lipgloss.Color("#bd93f9") {
		t.Errorf("expected PrimaryStyle foreground to be updated, got %v",
			PrimaryStyle.GetForeground())
	}
	if CategoryStyle("stale").GetForeground() != lipgloss.Color("#ffb86c") {
		t.Errorf("stale category should use the warning color, got %v",
			CategoryStyle("stale").GetForeground())
	}

	Init(config.ThemeConfig{})
}
