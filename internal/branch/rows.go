package branch

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Row is one line of the branch picker.
type Row struct {
	Record
	Category    Category
	Display     string
	Preselected bool
}

// RowOptions controls how rows are built.
type RowOptions struct {
	// Preselect lists the categories that start out selected.
	Preselect []Category
	// Notes adds a trailing annotation per branch ref, e.g. "merged into main".
	Notes map[string]string
}

// BuildRows renders grouped records into picker rows, in the given category
// order, with the display columns aligned across all rows.
func BuildRows(g Groups, order []Category, opts RowOptions) []Row {
	pre := make(map[Category]bool, len(opts.Preselect))
	for _, c := range opts.Preselect {
		pre[c] = true
	}

	var rows []Row
	for _, c := range order {
		for _, r := range g[c] {
			rows = append(rows, Row{Record: r, Category: c, Preselected: pre[c]})
		}
	}

	var catW, nameW, relW int
	for _, r := range rows {
		catW = max(catW, utf8.RuneCountInString(r.Category.String()))
		nameW = max(nameW, utf8.RuneCountInString(displayName(r.Record)))
		relW = max(relW, utf8.RuneCountInString(relative(r.Record)))
	}
	for i := range rows {
		r := &rows[i]
		line := pad(r.Category.String(), catW) + "  " +
			pad(displayName(r.Record), nameW) + "  " +
			pad(relative(r.Record), relW) + "  " +
			r.AuthorName
		if note := opts.Notes[r.Ref()]; note != "" {
			line += "  (" + note + ")"
		}
		r.Display = strings.TrimRight(line, " ")
	}
	return rows
}

// Names returns the refs of the given rows.
func Names(rows []Row) []string {
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Ref()
	}
	return names
}

// AllIn reports whether every row is in category c. False for no rows.
func AllIn(rows []Row, c Category) bool {
	if len(rows) == 0 {
		return false
	}
	for _, r := range rows {
		if r.Category != c {
			return false
		}
	}
	return true
}

func displayName(r Record) string {
	if r.IsCurrent {
		return "* " + r.Ref()
	}
	return r.Ref()
}

func relative(r Record) string {
	if r.LastCommitRelative == "" {
		return "unknown"
	}
	return r.LastCommitRelative
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// String implements fmt.Stringer for debugging.
func (r Row) String() string {
	return fmt.Sprintf("Row{%s, %s, preselected=%v}", r.Ref(), r.Category, r.Preselected)
}
