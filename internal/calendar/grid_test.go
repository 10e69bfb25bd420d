package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"goalcal/internal/model"
)

func mustGrid(t *testing.T, year int, month time.Month) *Grid {
	t.Helper()
	g, err := NewGrid(year, month)
	require.NoError(t, err)
	return g
}

func date(y int, m time.Month, d int) model.Date {
	return model.NewDate(y, m, d)
}

func TestNewGrid_Shape(t *testing.T) {
	for year := 2024; year <= 2030; year++ {
		for m := time.January; m <= time.December; m++ {
			g := mustGrid(t, year, m)
			first := date(year, m, 1)

			require.Equal(t, time.Monday, g.Dates[0].Weekday(), "%d-%02d", year, m)
			for i := 1; i < GridCells; i++ {
				require.Equal(t, 1, g.Dates[i-1].DaysUntil(g.Dates[i].Date))
			}
			require.False(t, first.Before(g.FirstVisible))
			require.False(t, first.After(g.LastVisible))
			require.Equal(t, g.Dates[0].Date, g.FirstVisible)
			require.Equal(t, g.Dates[GridCells-1].Date, g.LastVisible)

			for _, d := range g.Dates {
				require.Equal(t, d.Month == m && d.Year == year, d.InCurrentMonth)
			}
		}
	}
}

func TestNewGrid_February2026(t *testing.T) {
	g := mustGrid(t, 2026, time.February)

	require.Equal(t, date(2026, time.January, 26), g.FirstVisible)
	require.Equal(t, date(2026, time.March, 8), g.LastVisible)
	require.False(t, g.At(0, 0).InCurrentMonth)
	require.True(t, g.At(1, 0).InCurrentMonth)

	row, col, ok := g.Cell(date(2026, time.February, 9))
	require.True(t, ok)
	require.Equal(t, 2, row)
	require.Equal(t, 0, col)

	_, _, ok = g.Cell(date(2026, time.March, 9))
	require.False(t, ok)
}

func TestNewGrid_MonthStartingOnMonday(t *testing.T) {
	// June 2026 starts on a Monday, so the grid starts on the 1st.
	g := mustGrid(t, 2026, time.June)
	require.Equal(t, date(2026, time.June, 1), g.FirstVisible)
}

func TestNewGrid_InvalidMonth(t *testing.T) {
	for _, m := range []time.Month{0, 13, -1} {
		_, err := NewGrid(2026, m)
		require.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestNewGridFor(t *testing.T) {
	g, err := NewGridFor(model.Month{Year: 2025, Month: time.December}.Next())
	require.NoError(t, err)
	require.Equal(t, 2026, g.Year)
	require.Equal(t, time.January, g.Month)
}
