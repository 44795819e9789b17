package preview

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/gpick/internal/git"
	"github.com/raphi011/gpick/internal/ui/styles"
)

// Commits renders a branch log, one commit per line:
// hash, subject, author and relative time.
func Commits(commits []git.Commit) string {
	if len(commits) == 0 {
		return styles.MutedStyle.Render("no commits")
	}
	hashStyle := lipgloss.NewStyle().Foreground(styles.Accent)
	whoStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var b strings.Builder
	for _, c := range commits {
		b.WriteString(hashStyle.Render(c.Hash))
		b.WriteString(" ")
		b.WriteString(c.Subject)
		b.WriteString(" ")
		b.WriteString(whoStyle.Render("(" + c.Author + ", " + c.Relative + ")"))
		b.WriteString("\n")
	}
	return b.String()
}

const sectionRule = "────────"

// Section is one titled part of a preview.
type Section struct {
	Title string
	Body  string
}

// Sections joins titled preview parts, skipping empty ones.
func Sections(parts ...Section) string {
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p.Body) == "" {
			continue
		}
		out = append(out, styles.MutedStyle.Render(sectionRule+" "+p.Title), strings.TrimRight(p.Body, "\n"))
	}
	return strings.Join(out, "\n")
}
