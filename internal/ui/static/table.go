// Package static provides non-interactive terminal output components.
//
// This package contains components for rendering formatted output
// that does not require user interaction, such as tables.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/gpick/internal/branch"
	"github.com/raphi011/gpick/internal/ui/styles"
)

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// BranchHeaders are the columns rendered by BranchTable.
var BranchHeaders = []string{"CATEGORY", "BRANCH", "LAST COMMIT", "AUTHOR"}

// BranchTableRow converts a picker row into table cells.
func BranchTableRow(r branch.Row) []string {
	name := r.Ref()
	if r.IsCurrent {
		name = styles.CurrentSymbols().Branch + " " + name
	}
	rel := r.LastCommitRelative
	if rel == "" {
		rel = "unknown"
	}
	return []string{styles.FormatCategory(r.Category.String()), name, rel, r.AuthorName}
}

// BranchTable renders rows as a table, e.g. for dry runs.
func BranchTable(rows []branch.Row) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = BranchTableRow(r)
	}
	return RenderTable(BranchHeaders, cells)
}
