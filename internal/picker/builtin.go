package picker

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"unicode"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/sahilm/fuzzy"

	"github.com/raphi011/gpick/internal/ui/styles"
)

const (
	maxVisible      = 12
	maxPreviewLines = 15
)

// Builtin is a selector that runs inside gpick as a bubbletea program.
type Builtin struct {
	// Output receives the TUI. Defaults to stderr so stdout stays pipeable.
	Output io.Writer
}

// Select implements Selector.
func (b *Builtin) Select(ctx context.Context, m Menu) (Selection, error) {
	out := b.Output
	if out == nil {
		out = os.Stderr
	}
	profile := colorprofile.Detect(out, os.Environ())

	p := tea.NewProgram(newListModel(m),
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithColorProfile(profile),
	)
	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Selection{}, ctxErr
		}
		return Selection{}, err
	}
	return final.(*listModel).selection(), nil
}

// entrySource implements fuzzy.Source for entries.
type entrySource []Entry

func (s entrySource) String(i int) string { return s[i].Display }
func (s entrySource) Len() int            { return len(s) }

// listModel is a filterable list with optional multi-select. The cursor
// skips disabled entries.
type listModel struct {
	entries  []Entry
	filtered []fuzzy.Match
	cursor   int // position in filtered
	filter   string
	header   string

	multi    bool
	selected map[int]bool // entry index -> selected

	keys        map[string]string // bubbletea key name -> fzf key name
	previewFunc func(key string) string
	previews    map[string]string

	done        bool
	cancelled   bool
	interrupted bool
	key         string
	chosen      []int
}

func newListModel(m Menu) *listModel {
	lm := &listModel{
		entries:     m.Entries,
		filter:      m.Query,
		header:      m.Header,
		multi:       m.Multi,
		selected:    make(map[int]bool),
		keys:        make(map[string]string, len(m.Keys)),
		previewFunc: m.PreviewFunc,
		previews:    make(map[string]string),
	}
	for _, k := range m.Keys {
		lm.keys[teaKeyName(k)] = k
	}
	if m.Multi {
		for i, e := range m.Entries {
			if e.Preselected && !e.Disabled {
				lm.selected[i] = true
			}
		}
	}
	lm.applyFilter()
	lm.cursor = lm.findNextEnabled(0)
	return lm
}

// teaKeyName converts an fzf key name ("ctrl-d") to bubbletea's ("ctrl+d").
func teaKeyName(k string) string {
	return strings.ReplaceAll(k, "-", "+")
}

func (m *listModel) Init() tea.Cmd {
	return nil
}

func (m *listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	k := keyMsg.String()
	if name, ok := m.keys[k]; ok {
		m.key = name
		m.finish()
		return m, tea.Quit
	}

	switch k {
	case "ctrl+c", "esc":
		m.cancelled = true
		m.interrupted = true
		m.done = true
		return m, tea.Quit
	case "up", "ctrl+k":
		if prev := m.findPrevEnabled(m.cursor - 1); prev >= 0 {
			m.cursor = prev
		}
	case "down", "ctrl+j":
		if next := m.findNextEnabled(m.cursor + 1); next >= 0 {
			m.cursor = next
		}
	case "home", "pgup":
		if first := m.findNextEnabled(0); first >= 0 {
			m.cursor = first
		}
	case "end", "pgdown":
		if last := m.findPrevEnabled(len(m.filtered) - 1); last >= 0 {
			m.cursor = last
		}
	case "tab":
		if m.multi && m.cursorValid() {
			idx := m.filtered[m.cursor].Index
			if m.selected[idx] {
				delete(m.selected, idx)
			} else {
				m.selected[idx] = true
			}
			if next := m.findNextEnabled(m.cursor + 1); next >= 0 {
				m.cursor = next
			}
		}
	case "enter":
		if !m.cursorValid() {
			// nothing matches: same as fzf, which exits without a choice
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
		m.finish()
		return m, tea.Quit
	case "backspace":
		if m.filter != "" {
			r := []rune(m.filter)
			m.filter = string(r[:len(r)-1])
			m.applyFilter()
		}
	case "alt+backspace", "ctrl+w":
		if m.filter != "" {
			m.filter = deleteLastWord(m.filter)
			m.applyFilter()
		}
	default:
		if text := printable(keyMsg.Text); text != "" {
			m.filter += text
			m.applyFilter()
		}
	}
	return m, nil
}

// finish records the chosen entries: the toggled set in multi mode, or the
// entry under the cursor.
func (m *listModel) finish() {
	m.done = true
	if m.multi && len(m.selected) > 0 {
		for idx := range m.selected {
			m.chosen = append(m.chosen, idx)
		}
		slices.Sort(m.chosen)
		return
	}
	if m.cursorValid() {
		m.chosen = []int{m.filtered[m.cursor].Index}
	}
}

func (m *listModel) selection() Selection {
	return Selection{
		Key:         m.key,
		Query:       m.filter,
		Indices:     m.chosen,
		Cancelled:   m.cancelled,
		Interrupted: m.interrupted,
	}
}

func (m *listModel) cursorValid() bool {
	return m.cursor >= 0 && m.cursor < len(m.filtered) &&
		!m.entries[m.filtered[m.cursor].Index].Disabled
}

func (m *listModel) applyFilter() {
	if m.filter == "" {
		m.filtered = make([]fuzzy.Match, len(m.entries))
		for i, e := range m.entries {
			m.filtered[i] = fuzzy.Match{Str: e.Display, Index: i}
		}
	} else {
		// sorted by score, best first
		m.filtered = fuzzy.FindFrom(m.filter, entrySource(m.entries))
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
	if !m.cursorValid() {
		if next := m.findNextEnabled(m.cursor); next >= 0 {
			m.cursor = next
		} else if prev := m.findPrevEnabled(m.cursor); prev >= 0 {
			m.cursor = prev
		}
	}
}

func (m *listModel) findNextEnabled(from int) int {
	for i := max(from, 0); i < len(m.filtered); i++ {
		if !m.entries[m.filtered[i].Index].Disabled {
			return i
		}
	}
	return -1
}

func (m *listModel) findPrevEnabled(from int) int {
	for i := min(from, len(m.filtered)-1); i >= 0; i-- {
		if !m.entries[m.filtered[i].Index].Disabled {
			return i
		}
	}
	return -1
}

func (m *listModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}

	var b strings.Builder
	if m.header != "" {
		b.WriteString(titleStyle().Render(m.header) + "\n")
	}
	prompt := "Filter: "
	if m.multi {
		prompt = fmt.Sprintf("(%d selected) Filter: ", len(m.selected))
	}
	b.WriteString(mutedStyle().Render(prompt) + filterStyle().Render(m.filter) + "\n\n")

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(m.filtered))

	if start > 0 {
		b.WriteString(normalStyle().Render("  ↑ more above") + "\n")
	}
	for i := start; i < end; i++ {
		match := m.filtered[i]
		e := m.entries[match.Index]
		if e.Disabled {
			b.WriteString("  " + mutedStyle().Render(e.Display) + "\n")
			continue
		}

		cursor := "  "
		style := normalStyle()
		if i == m.cursor {
			cursor = "> "
			style = selectedStyle()
		}
		checkbox := ""
		if m.multi {
			checkbox = "[ ] "
			if m.selected[match.Index] {
				checkbox = "[✓] "
			}
		}

		label := style.Render(e.Display)
		if m.filter != "" && len(match.MatchedIndexes) > 0 {
			label = highlightMatches(e.Display, match.MatchedIndexes, style)
		}
		b.WriteString(cursor + checkbox + label + "\n")
	}
	if end < len(m.filtered) {
		b.WriteString(normalStyle().Render("  ↓ more below") + "\n")
	}
	if len(m.filtered) == 0 {
		b.WriteString(normalStyle().Render("  No matching items") + "\n")
	}

	if preview := m.preview(); preview != "" {
		b.WriteString("\n" + preview + "\n")
	}

	b.WriteString(helpStyle().Render(m.help()))
	return tea.NewView(b.String())
}

// preview renders the preview of the entry under the cursor, cached per key.
func (m *listModel) preview() string {
	if m.previewFunc == nil || !m.cursorValid() {
		return ""
	}
	key := m.entries[m.filtered[m.cursor].Index].Key
	if key == "" {
		return ""
	}
	if cached, ok := m.previews[key]; ok {
		return cached
	}
	lines := strings.Split(strings.TrimRight(m.previewFunc(key), "\n"), "\n")
	if len(lines) > maxPreviewLines {
		lines = append(lines[:maxPreviewLines], mutedStyle().Render("…"))
	}
	out := previewStyle().Render(strings.Join(lines, "\n"))
	m.previews[key] = out
	return out
}

func (m *listModel) help() string {
	parts := []string{"↑/↓ move", "type to filter"}
	if m.multi {
		parts = append(parts, "tab toggle")
	}
	parts = append(parts, "enter confirm")
	for _, k := range slices.Sorted(maps.Values(m.keys)) {
		parts = append(parts, k)
	}
	parts = append(parts, "esc cancel")
	return strings.Join(parts, " • ")
}

// highlightMatches renders label with the fuzzy-matched runes emphasized.
func highlightMatches(label string, matched []int, base lipgloss.Style) string {
	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}
	var b strings.Builder
	// MatchedIndexes are byte offsets into the matched string.
	for i, r := range label {
		if set[i] {
			b.WriteString(matchStyle().Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

func printable(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsPrint(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// deleteLastWord removes the last word and any whitespace after it.
func deleteLastWord(s string) string {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	i := strings.LastIndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return ""
	}
	return s[:i+1]
}

// Style functions pick up theme changes made by styles.Init.

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(styles.Primary)
}

func selectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(styles.Accent)
}

func normalStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Normal)
}

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Muted)
}

func filterStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Accent).Bold(true)
}

func matchStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Accent).Bold(true).Underline(true)
}

func helpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.Muted).MarginTop(1)
}

func previewStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderLeft(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		PaddingLeft(1)
}
