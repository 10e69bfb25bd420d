package calendar

import (
	"fmt"

	"goalcal/internal/model"
)

// Segment is the part of one goal that falls inside one grid row, plus
// the lane it was assigned to.
type Segment struct {
	Goal *model.Goal
	Span
	Lane int
}

// LanePolicy selects how segments are distributed over lanes.
type LanePolicy string

const (
	// LanePolicyGreedy assigns lanes row by row, first fit, in goal order.
	// The same goal may land on different lanes in different weeks.
	LanePolicyGreedy LanePolicy = "greedy"
	// LanePolicyStable gives each goal one lane for the whole month: the
	// lowest lane that is free in every row the goal touches.
	LanePolicyStable LanePolicy = "stable"
)

// ParseLanePolicy maps a config string to a policy; "" means greedy.
func ParseLanePolicy(s string) (LanePolicy, error) {
	switch LanePolicy(s) {
	case "", LanePolicyGreedy:
		return LanePolicyGreedy, nil
	case LanePolicyStable:
		return LanePolicyStable, nil
	}
	return "", fmt.Errorf("calendar: unknown lane policy %q: %w", s, ErrInvalidArgument)
}

// AssignLanes places the segments of a single row into lanes using greedy
// first-fit interval partitioning, in slice order. Each lane remembers the
// last column it covers; a segment fits a lane only if it starts strictly
// after that column. It sets Lane on every segment and returns the number
// of lanes opened.
func AssignLanes(segs []Segment) int {
	var lastEnd []int
	for i := range segs {
		s := &segs[i]
		lane := -1
		for l, end := range lastEnd {
			if end < s.ColStart {
				lane = l
				break
			}
		}
		if lane < 0 {
			lane = len(lastEnd)
			lastEnd = append(lastEnd, 0)
		}
		lastEnd[lane] = s.ColEnd
		s.Lane = lane
	}
	return len(lastEnd)
}

// assignStableLanes gives every goal a single lane across all of its rows.
// goalSegs holds each goal's segments, goals in processing order. Lanes
// are set in place.
func assignStableLanes(goalSegs [][]*Segment) {
	var occupied [Rows][][]Span

	fits := func(lane int, segs []*Segment) bool {
		for _, s := range segs {
			lanes := occupied[s.Row]
			if lane >= len(lanes) {
				continue
			}
			for _, o := range lanes[lane] {
				if o.ColStart <= s.ColEnd && s.ColStart <= o.ColEnd {
					return false
				}
			}
		}
		return true
	}

	for _, segs := range goalSegs {
		if len(segs) == 0 {
			continue
		}
		lane := 0
		for !fits(lane, segs) {
			lane++
		}
		for _, s := range segs {
			for len(occupied[s.Row]) <= lane {
				occupied[s.Row] = append(occupied[s.Row], nil)
			}
			occupied[s.Row][lane] = append(occupied[s.Row][lane], s.Span)
			s.Lane = lane
		}
	}
}
