package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"goalcal/internal/calendar"
	"goalcal/internal/goals"
)

// TermCellWidth is the number of terminal columns per day.
const TermCellWidth = 12

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	weekdayStyle = lipgloss.NewStyle().Bold(true).Width(TermCellWidth)
	dayStyle     = lipgloss.NewStyle().Width(TermCellWidth)
	mutedStyle   = dayStyle.Faint(true)
)

// Text renders the layout as a month view for the terminal: one line of
// day numbers per week followed by one line per lane. Goal names are
// printed on their label-anchor bar.
func Text(l *calendar.Layout) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", titleStyle.Render(fmt.Sprintf("%s %d", l.Grid.Month, l.Grid.Year)))
	for _, name := range weekdayNames {
		b.WriteString(weekdayStyle.Render(name))
	}
	b.WriteString("\n")

	for row := 0; row < calendar.Rows; row++ {
		for col := 0; col < calendar.Cols; col++ {
			gd := l.Grid.At(row, col)
			style := dayStyle
			if !gd.InCurrentMonth {
				style = mutedStyle
			}
			b.WriteString(style.Render(strconv.Itoa(gd.Day)))
		}
		b.WriteString("\n")

		for lane := 0; lane < l.RowLaneCounts[row]; lane++ {
			b.WriteString(laneLine(l, row, lane))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func laneLine(l *calendar.Layout, row, lane int) string {
	var cells [calendar.Cols]*calendar.Bar
	for i := range l.Bars {
		bar := &l.Bars[i]
		if bar.Row != row || bar.Lane != lane {
			continue
		}
		for c := bar.ColStart; c <= bar.ColEnd; c++ {
			cells[c] = bar
		}
	}

	var b strings.Builder
	for col := 0; col < calendar.Cols; {
		bar := cells[col]
		if bar == nil {
			b.WriteString(strings.Repeat(" ", TermCellWidth))
			col++
			continue
		}
		width := (bar.ColEnd-bar.ColStart+1)*TermCellWidth - 1
		label := ""
		if bar.IsLabelAnchor {
			label = ansi.Truncate(bar.Goal.Name, width, "…")
		}
		style := lipgloss.NewStyle().
			Width(width).
			MaxWidth(width).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color(goals.ColorOf(bar.Goal).Hex()))
		b.WriteString(style.Render(label))
		b.WriteString(" ")
		col = bar.ColEnd + 1
	}
	return strings.TrimRight(b.String(), " ")
}
