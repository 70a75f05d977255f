package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is a static table with a title and right-aligned cells.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// NewTable creates a new Table with the given title and headers.
func NewTable(title string, headers ...string) *Table {
	return &Table{
		Title:   title,
		Headers: headers,
		Rows:    make([][]string, 0),
	}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table.  A table without rows renders as the title
// followed by "(empty)".
func (t *Table) View(styles Styles) string {

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}
	if len(t.Rows) == 0 {
		sb.WriteString(styles.Muted.Render("(empty)"))
		sb.WriteString("\n")
		return sb.String()
	}

	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(cell); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}

	// Width includes the padding.
	for i := range colWidths {
		colWidths[i] += 2
	}

	header := styles.Header.Align(lipgloss.Right)
	cell := styles.Cell.Align(lipgloss.Right)
	sep := styles.Muted

	for i, h := range t.Headers {
		sb.WriteString(header.Width(colWidths[i]).Render(h))
		if i < len(t.Headers)-1 {
			sb.WriteString(sep.Render("|"))
		}
	}
	sb.WriteString("\n")

	total := len(colWidths) - 1
	for _, w := range colWidths {
		total += w
	}
	sb.WriteString(sep.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		for i := range colWidths {
			var v string
			if i < len(row) {
				v = row[i]
			}
			sb.WriteString(cell.Width(colWidths[i]).Render(v))
			if i < len(colWidths)-1 {
				sb.WriteString(sep.Render("|"))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
