package calendar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func seg(start, end int) Segment {
	return Segment{Span: Span{ColStart: start, ColEnd: end}}
}

func lanesOf(segs []Segment) []int {
	out := make([]int, len(segs))
	for i, s := range segs {
		out[i] = s.Lane
	}
	return out
}

func TestAssignLanes_FirstFit(t *testing.T) {
	segs := []Segment{
		seg(0, 2),
		seg(1, 4),
		seg(3, 3), // fits lane 0 after [0,2]
		seg(5, 6), // fits lane 0 again
		seg(2, 6), // collides with both
	}
	n := AssignLanes(segs)
	require.Equal(t, 3, n)
	require.Equal(t, []int{0, 1, 0, 0, 2}, lanesOf(segs))
}

func TestAssignLanes_TouchingColumnsShareLane(t *testing.T) {
	segs := []Segment{seg(0, 2), seg(3, 6)}
	require.Equal(t, 1, AssignLanes(segs))

	segs = []Segment{seg(0, 3), seg(3, 6)}
	require.Equal(t, 2, AssignLanes(segs))
}

func TestAssignLanes_OrderDependent(t *testing.T) {
	// A later segment that starts before an earlier one in the same lane
	// opens a new lane even though it would fit in the gap.
	segs := []Segment{seg(4, 6), seg(0, 1)}
	require.Equal(t, 2, AssignLanes(segs))
	require.Equal(t, []int{0, 1}, lanesOf(segs))
}

func TestAssignLanes_Empty(t *testing.T) {
	require.Equal(t, 0, AssignLanes(nil))
}

func TestParseLanePolicy(t *testing.T) {
	p, err := ParseLanePolicy("")
	require.NoError(t, err)
	require.Equal(t, LanePolicyGreedy, p)

	p, err = ParseLanePolicy("stable")
	require.NoError(t, err)
	require.Equal(t, LanePolicyStable, p)

	_, err = ParseLanePolicy("optimal")
	require.ErrorIs(t, err, ErrInvalidArgument)
}
