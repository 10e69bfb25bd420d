package calendar

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"goalcal/internal/model"
)

func TestClip(t *testing.T) {
	g := mustGrid(t, 2026, time.February)

	goal := &model.Goal{Name: "q1", Start: date(2026, time.January, 20), End: date(2026, time.March, 1)}
	start, end, ok := g.Clip(goal)
	require.True(t, ok)
	require.Equal(t, date(2026, time.January, 26), start)
	require.Equal(t, date(2026, time.March, 1), end)

	outside := &model.Goal{Name: "later", Start: date(2026, time.April, 1), End: date(2026, time.April, 3)}
	_, _, ok = g.Clip(outside)
	require.False(t, ok)

	before := &model.Goal{Name: "earlier", Start: date(2025, time.December, 1), End: date(2026, time.January, 25)}
	_, _, ok = g.Clip(before)
	require.False(t, ok)

	edge := &model.Goal{Name: "edge", Start: date(2026, time.March, 8), End: date(2026, time.March, 20)}
	start, end, ok = g.Clip(edge)
	require.True(t, ok)
	require.Equal(t, start, end)
}

func TestSegmentRange_CrossesWeek(t *testing.T) {
	g := mustGrid(t, 2026, time.February)

	got := g.SegmentRange(date(2026, time.February, 2), date(2026, time.February, 9))
	want := []Span{
		{Row: 1, ColStart: 0, ColEnd: 6},
		{Row: 2, ColStart: 0, ColEnd: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("spans mismatch (-want +got):\n%s", diff)
	}
}

func TestSegmentRange_SingleDay(t *testing.T) {
	g := mustGrid(t, 2026, time.February)
	got := g.SegmentRange(date(2026, time.February, 11), date(2026, time.February, 11))
	require.Equal(t, []Span{{Row: 2, ColStart: 2, ColEnd: 2}}, got)
}

func TestSegmentRange_ClipsToGrid(t *testing.T) {
	g := mustGrid(t, 2026, time.February)
	got := g.SegmentRange(date(2025, time.June, 1), date(2027, time.June, 1))
	require.Len(t, got, Rows)
	for row, sp := range got {
		require.Equal(t, Span{Row: row, ColStart: 0, ColEnd: Cols - 1}, sp)
	}
	require.Nil(t, g.SegmentRange(date(2027, time.January, 1), date(2027, time.January, 2)))
}

func TestSegmentDates_NonContiguous(t *testing.T) {
	g := mustGrid(t, 2026, time.February)
	dates := []model.Date{
		date(2026, time.February, 6),  // row 1 col 4
		date(2026, time.February, 2),  // row 1 col 0
		date(2026, time.February, 3),  // row 1 col 1
		date(2026, time.February, 3),  // duplicate
		date(2026, time.February, 7),  // row 1 col 5
		date(2026, time.February, 16), // row 3 col 0
		date(2030, time.January, 1),   // outside
	}
	want := []Span{
		{Row: 1, ColStart: 0, ColEnd: 1},
		{Row: 1, ColStart: 4, ColEnd: 5},
		{Row: 3, ColStart: 0, ColEnd: 0},
	}
	if diff := cmp.Diff(want, g.SegmentDates(dates)); diff != "" {
		t.Fatalf("spans mismatch (-want +got):\n%s", diff)
	}
}
