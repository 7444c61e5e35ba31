package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerCellStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Align(lipgloss.Right)

	selectedCellStyle = cellStyle.
				Bold(true).
				Foreground(primaryColor)
)

// Table renders rows under headers with a rounded border.
func Table(headers []string, rows [][]string) string {
	return SelectTable(headers, rows, -1)
}

// SelectTable is Table with row selected highlighted. A negative row
// highlights nothing.
func SelectTable(headers []string, rows [][]string, selected int) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(mutedColor)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerCellStyle
			case row == selected:
				return selectedCellStyle
			default:
				return cellStyle
			}
		}).
		Headers(headers...).
		Rows(rows...)

	return t.String()
}
