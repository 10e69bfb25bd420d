package calendar

import (
	"slices"

	"goalcal/internal/model"
)

// Span is a run of consecutive columns inside one grid row.
type Span struct {
	Row      int `json:"row"`
	ColStart int `json:"col_start"`
	ColEnd   int `json:"col_end"`
}

// Clip intersects [start, end] with [first, last]. ok is false when the
// intersection is empty.
func Clip(start, end, first, last model.Date) (model.Date, model.Date, bool) {
	if start.Before(first) {
		start = first
	}
	if end.After(last) {
		end = last
	}
	if start.After(end) {
		return model.Date{}, model.Date{}, false
	}
	return start, end, true
}

// Clip clips a goal to the grid's visible window.
func (g *Grid) Clip(goal *model.Goal) (model.Date, model.Date, bool) {
	return Clip(goal.Start, goal.End, g.FirstVisible, g.LastVisible)
}

// SegmentRange splits the inclusive range [start, end] into per-row spans.
// Dates outside the grid are dropped, so callers may pass unclipped ranges.
func (g *Grid) SegmentRange(start, end model.Date) []Span {
	start, end, ok := Clip(start, end, g.FirstVisible, g.LastVisible)
	if !ok {
		return nil
	}
	dates := make([]model.Date, 0, start.DaysUntil(end)+1)
	for d := start; !d.After(end); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return g.SegmentDates(dates)
}

// SegmentDates groups an arbitrary set of dates into maximal runs of
// consecutive columns per row. Spans come out ordered by row, then column.
// The dates need not be contiguous or sorted; duplicates are ignored.
func (g *Grid) SegmentDates(dates []model.Date) []Span {
	var byRow [Rows][]int
	for _, d := range dates {
		row, col, ok := g.Cell(d)
		if !ok {
			continue
		}
		byRow[row] = append(byRow[row], col)
	}

	var spans []Span
	for row, cols := range byRow {
		if len(cols) == 0 {
			continue
		}
		slices.Sort(cols)
		cols = slices.Compact(cols)

		cur := Span{Row: row, ColStart: cols[0], ColEnd: cols[0]}
		for _, c := range cols[1:] {
			if c == cur.ColEnd+1 {
				cur.ColEnd = c
				continue
			}
			spans = append(spans, cur)
			cur = Span{Row: row, ColStart: c, ColEnd: c}
		}
		spans = append(spans, cur)
	}
	return spans
}
