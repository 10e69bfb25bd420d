// Package calendar lays out goals (named date intervals) as horizontal
// bars over a 6×7 Monday-first month grid.
//
// Everything in this package is a pure function of its inputs: a Grid is
// rebuilt whenever the displayed month changes, and ComputeLayout can be
// called on every redraw without hidden state.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"goalcal/internal/model"
)

const (
	Rows      = 6
	Cols      = 7
	GridCells = Rows * Cols
)

// ErrInvalidArgument is returned for inputs the engine refuses to guess
// about, such as a month outside [1,12].
var ErrInvalidArgument = errors.New("invalid argument")

// GridDate is one cell of the month grid.
type GridDate struct {
	model.Date
	InCurrentMonth bool
}

// Grid is the 42-day window shown for a month.
type Grid struct {
	Year  int
	Month time.Month
	Dates [GridCells]GridDate

	FirstVisible model.Date
	LastVisible  model.Date
}

// NewGrid builds the grid for the given month. The first cell is the
// Monday on or before the 1st; the grid always spans six full weeks.
func NewGrid(year int, month time.Month) (*Grid, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("calendar: month %d out of range [1,12]: %w", int(month), ErrInvalidArgument)
	}

	first := model.Date{Year: year, Month: month, Day: 1}
	// Monday=0 ... Sunday=6
	back := (int(first.Weekday()) + 6) % 7
	start := first.AddDays(-back)

	g := &Grid{Year: year, Month: month}
	for i := range g.Dates {
		d := start.AddDays(i)
		g.Dates[i] = GridDate{
			Date:           d,
			InCurrentMonth: d.Year == year && d.Month == month,
		}
	}
	g.FirstVisible = g.Dates[0].Date
	g.LastVisible = g.Dates[GridCells-1].Date
	return g, nil
}

// NewGridFor is NewGrid for a model.Month.
func NewGridFor(m model.Month) (*Grid, error) {
	return NewGrid(m.Year, m.Month)
}

// Cell maps a date to its (row, col) position. ok is false for dates
// outside the visible window.
func (g *Grid) Cell(d model.Date) (row, col int, ok bool) {
	if d.Before(g.FirstVisible) || d.After(g.LastVisible) {
		return 0, 0, false
	}
	i := g.FirstVisible.DaysUntil(d)
	return i / Cols, i % Cols, true
}

// At returns the date shown at (row, col).
func (g *Grid) At(row, col int) GridDate {
	return g.Dates[row*Cols+col]
}
