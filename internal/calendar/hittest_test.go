package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"goalcal/internal/model"
)

func TestHitTestBars_TopmostWins(t *testing.T) {
	a := &model.Goal{Name: "A"}
	b := &model.Goal{Name: "B"}
	bars := []Bar{
		{Segment: Segment{Goal: a}, Box: Box{X0: 0, Y0: 0, X1: 100, Y1: 20}},
		{Segment: Segment{Goal: b}, Box: Box{X0: 50, Y0: 10, X1: 150, Y1: 30}},
	}

	hit, ok := HitTestBars(bars, 75, 15)
	require.True(t, ok)
	require.Same(t, b, hit.Goal)

	hit, ok = HitTestBars(bars, 10, 5)
	require.True(t, ok)
	require.Same(t, a, hit.Goal)

	_, ok = HitTestBars(bars, 200, 200)
	require.False(t, ok)
}

func TestBox_ContainsInclusive(t *testing.T) {
	box := Box{X0: 10, Y0: 20, X1: 30, Y1: 40}
	for _, p := range [][2]int{{10, 20}, {30, 40}, {10, 40}, {30, 20}} {
		require.True(t, box.Contains(p[0], p[1]), "%v", p)
	}
	require.False(t, box.Contains(9, 20))
	require.False(t, box.Contains(30, 41))
}

func TestLayout_HitTest(t *testing.T) {
	g := mustGrid(t, 2026, time.February)
	sprint := goal("sprint", date(2026, time.February, 2), date(2026, time.February, 9))
	other := goal("other", date(2026, time.February, 4), date(2026, time.February, 4))
	l := ComputeLayout(g, []*model.Goal{sprint, other}, DefaultGeometry())

	hit, ok := l.HitTest(22, 146)
	require.True(t, ok)
	require.Same(t, sprint, hit)

	otherBar := l.GoalBars(other)[0]
	hit, ok = l.HitTest(otherBar.Box.X0+1, otherBar.Box.Y0+1)
	require.True(t, ok)
	require.Same(t, other, hit)

	// Day-number area above the lanes.
	_, ok = l.HitTest(30, 130)
	require.False(t, ok)
}
