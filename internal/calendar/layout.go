package calendar

import "goalcal/internal/model"

// Box is an axis-aligned pixel rectangle. Both corners are inside the box.
type Box struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

// Contains reports whether (x, y) lies inside b, edges included.
func (b Box) Contains(x, y int) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

// Bar is one drawable segment.
type Bar struct {
	Segment
	Box Box
	// IsLabelAnchor marks the first bar of each goal, where its name is drawn.
	IsLabelAnchor bool
}

// Layout is the result of one layout pass. Bars are in draw order: later
// bars are drawn on top and win hit-tests.
type Layout struct {
	Grid     *Grid
	Geometry Geometry
	Policy   LanePolicy

	Bars          []Bar
	RowLaneCounts [Rows]int
	RowSizing     [Rows]LaneSize
}

type layoutOptions struct {
	policy LanePolicy
}

// Option tweaks a layout pass.
type Option func(*layoutOptions)

// WithLanePolicy overrides the default greedy lane assignment.
func WithLanePolicy(p LanePolicy) Option {
	return func(o *layoutOptions) {
		if p != "" {
			o.policy = p
		}
	}
}

// ComputeLayout lays out goals over grid. Goals are processed in slice
// order, which fixes both lane assignment and draw order. Goals outside
// the visible window produce no bars. A goal listed more than once is laid
// out only at its first position. Neither the grid nor the goals are
// modified.
func ComputeLayout(grid *Grid, goals []*model.Goal, geo Geometry, opts ...Option) *Layout {
	o := layoutOptions{policy: LanePolicyGreedy}
	for _, opt := range opts {
		opt(&o)
	}

	// Segments in goal order, each goal's segments in row order.
	// A goal is identified by its pointer; repeats of the same goal
	// after its first appearance are ignored.
	var segs []Segment
	goalOf := make([]int, 0)
	seen := make(map[*model.Goal]bool, len(goals))
	for gi, goal := range goals {
		if goal == nil || seen[goal] {
			continue
		}
		seen[goal] = true
		start, end, ok := grid.Clip(goal)
		if !ok {
			continue
		}
		for _, sp := range grid.SegmentRange(start, end) {
			segs = append(segs, Segment{Goal: goal, Span: sp})
			goalOf = append(goalOf, gi)
		}
	}

	switch o.policy {
	case LanePolicyStable:
		var perGoal [][]*Segment
		for i := range segs {
			if i == 0 || goalOf[i] != goalOf[i-1] {
				perGoal = append(perGoal, nil)
			}
			perGoal[len(perGoal)-1] = append(perGoal[len(perGoal)-1], &segs[i])
		}
		assignStableLanes(perGoal)
	default:
		var byRow [Rows][]int
		for i, s := range segs {
			byRow[s.Row] = append(byRow[s.Row], i)
		}
		for _, idx := range byRow {
			row := make([]Segment, len(idx))
			for j, i := range idx {
				row[j] = segs[i]
			}
			AssignLanes(row)
			for j, i := range idx {
				segs[i].Lane = row[j].Lane
			}
		}
	}

	l := &Layout{
		Grid:     grid,
		Geometry: geo,
		Policy:   o.policy,
		Bars:     make([]Bar, 0, len(segs)),
	}
	for _, s := range segs {
		l.RowLaneCounts[s.Row] = max(l.RowLaneCounts[s.Row], s.Lane+1)
	}
	l.RowSizing = SizeLanes(l.RowLaneCounts, geo)

	for i, s := range segs {
		l.Bars = append(l.Bars, Bar{
			Segment:       s,
			Box:           barBox(s, l.RowSizing[s.Row], geo),
			IsLabelAnchor: i == 0 || goalOf[i] != goalOf[i-1],
		})
	}
	return l
}

func barBox(s Segment, size LaneSize, geo Geometry) Box {
	cellTop := geo.GridTop() + s.Row*geo.CellHeight
	y0 := cellTop + geo.BaseOffset + s.Lane*(size.Height+size.Gap)
	return Box{
		X0: geo.Pad + s.ColStart*geo.CellWidth + geo.BarInset,
		Y0: y0,
		X1: geo.Pad + (s.ColEnd+1)*geo.CellWidth - geo.BarInset,
		Y1: y0 + size.Height,
	}
}

// CellBox returns the pixel rectangle of the cell at (row, col).
func (geo Geometry) CellBox(row, col int) Box {
	x0 := geo.Pad + col*geo.CellWidth
	y0 := geo.GridTop() + row*geo.CellHeight
	return Box{X0: x0, Y0: y0, X1: x0 + geo.CellWidth, Y1: y0 + geo.CellHeight}
}

// GoalBars returns the bars belonging to goal, in row order.
func (l *Layout) GoalBars(goal *model.Goal) []Bar {
	var out []Bar
	for _, b := range l.Bars {
		if b.Goal == goal {
			out = append(out, b)
		}
	}
	return out
}

// Overflowing reports the rows whose lane stack does not fit in the cell.
func (l *Layout) Overflowing() []int {
	var rows []int
	for row, n := range l.RowLaneCounts {
		if l.RowSizing[row].Stack(n) > l.Geometry.Usable() {
			rows = append(rows, row)
		}
	}
	return rows
}
