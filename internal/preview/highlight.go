package preview

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"

	"github.com/raphi011/gpick/internal/ui/styles"
)

// Highlighter colours diffs and source text.
type Highlighter struct {
	style *chroma.Style
	plain bool
}

// New returns a highlighter using a chroma style that suits the terminal
// background. plain disables all colouring.
func New(dark, plain bool) *Highlighter {
	return &Highlighter{style: styleFor(dark), plain: plain}
}

func styleFor(dark bool) *chroma.Style {
	name := "github"
	if dark {
		name = "github-dark"
	}
	if st := chromastyles.Get(name); st != nil {
		return st
	}
	return chromastyles.Fallback
}

// lexerForPath picks a lexer by file name, or nil when none matches.
func lexerForPath(path string) chroma.Lexer {
	if path == "" {
		return nil
	}
	lexer := lexers.Match(path)
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}

// File highlights the content of path.
func (h *Highlighter) File(path, content string) string {
	if h.plain {
		return content
	}
	lexer := lexerForPath(path)
	if lexer == nil {
		return content
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = h.code(lexer, line)
	}
	return strings.Join(lines, "\n")
}

// Diff highlights unified diff text as printed by git. Code lines are
// highlighted with the lexer of the file the hunk belongs to.
func (h *Highlighter) Diff(diff string) string {
	if h.plain {
		return diff
	}

	var lexer chroma.Lexer
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		if path, ok := diffPathFromLine(line); ok {
			lexer = lexerForPath(path)
			lines[i] = headerStyle().Render(line)
			continue
		}
		switch {
		case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "),
			strings.HasPrefix(line, "index "), strings.HasPrefix(line, "new file"),
			strings.HasPrefix(line, "deleted file"), strings.HasPrefix(line, "similarity"),
			strings.HasPrefix(line, "rename "):
			lines[i] = metaStyle().Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = hunkStyle().Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = addStyle().Render("+") + h.codeOr(lexer, line[1:], addStyle())
		case strings.HasPrefix(line, "-"):
			lines[i] = delStyle().Render("-") + h.codeOr(lexer, line[1:], delStyle())
		case strings.HasPrefix(line, " "):
			lines[i] = " " + h.codeOr(lexer, line[1:], plainStyle())
		}
	}
	return strings.Join(lines, "\n")
}

// diffPathFromLine extracts the new path from a "diff --git a/x b/y" line.
func diffPathFromLine(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "diff --git ")
	if !ok {
		return "", false
	}
	if i := strings.LastIndex(rest, " b/"); i >= 0 {
		return rest[i+3:], true
	}
	return "", true
}

func (h *Highlighter) codeOr(lexer chroma.Lexer, code string, fallback lipgloss.Style) string {
	if lexer == nil {
		return fallback.Render(code)
	}
	return h.code(lexer, code)
}

// code renders one line token by token with the chroma style's colours.
func (h *Highlighter) code(lexer chroma.Lexer, code string) string {
	if code == "" {
		return ""
	}
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var b strings.Builder
	for _, token := range iterator.Tokens() {
		if token.Value == "" {
			continue
		}
		// lexers append a newline to the last token of a line
		value := strings.TrimSuffix(token.Value, "\n")
		entry := h.style.Get(token.Type)
		if !entry.Colour.IsSet() {
			b.WriteString(value)
			continue
		}
		st := plainStyle().Foreground(lipgloss.Color(entry.Colour.String()))
		if entry.Bold == chroma.Yes {
			st = st.Bold(true)
		}
		if entry.Italic == chroma.Yes {
			st = st.Italic(true)
		}
		b.WriteString(st.Render(value))
	}
	return b.String()
}

// plainStyle keeps tabs intact so diffs stay aligned with the source.
func plainStyle() lipgloss.Style {
	return lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)
}

func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(styles.Primary)
}

func metaStyle() lipgloss.Style {
	return plainStyle().Foreground(styles.Muted)
}

func hunkStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Info)
}

func addStyle() lipgloss.Style {
	return plainStyle().Foreground(styles.Success)
}

func delStyle() lipgloss.Style {
	return plainStyle().Foreground(styles.Error)
}
