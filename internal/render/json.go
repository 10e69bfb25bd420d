package render

import (
	"goalcal/internal/calendar"
	"goalcal/internal/model"
)

// LayoutJSON is the wire form of a layout, shared by `goalcal layout`
// and /api/layout.
type LayoutJSON struct {
	Year          int                              `json:"year"`
	Month         int                              `json:"month"`
	FirstVisible  model.Date                       `json:"first_visible"`
	LastVisible   model.Date                       `json:"last_visible"`
	Policy        calendar.LanePolicy              `json:"lane_policy"`
	Width         int                              `json:"width"`
	Height        int                              `json:"height"`
	RowLaneCounts [calendar.Rows]int               `json:"row_lane_counts"`
	RowSizing     [calendar.Rows]calendar.LaneSize `json:"row_sizing"`
	Overflowing   []int                            `json:"overflowing_rows,omitempty"`
	Bars          []BarJSON                        `json:"bars"`
}

type BarJSON struct {
	Name        string       `json:"name"`
	Color       string       `json:"color,omitempty"`
	Row         int          `json:"row"`
	ColStart    int          `json:"col_start"`
	ColEnd      int          `json:"col_end"`
	Lane        int          `json:"lane"`
	Box         calendar.Box `json:"box"`
	LabelAnchor bool         `json:"label_anchor"`
}

func NewBarJSON(b calendar.Bar) BarJSON {
	return BarJSON{
		Name:        b.Goal.Name,
		Color:       b.Goal.Color,
		Row:         b.Row,
		ColStart:    b.ColStart,
		ColEnd:      b.ColEnd,
		Lane:        b.Lane,
		Box:         b.Box,
		LabelAnchor: b.IsLabelAnchor,
	}
}

// NewLayoutJSON converts l, keeping bars in draw order.
func NewLayoutJSON(l *calendar.Layout) LayoutJSON {
	bars := make([]BarJSON, 0, len(l.Bars))
	for _, b := range l.Bars {
		bars = append(bars, NewBarJSON(b))
	}
	return LayoutJSON{
		Year:          l.Grid.Year,
		Month:         int(l.Grid.Month),
		FirstVisible:  l.Grid.FirstVisible,
		LastVisible:   l.Grid.LastVisible,
		Policy:        l.Policy,
		Width:         l.Geometry.Width(),
		Height:        l.Geometry.Height(),
		RowLaneCounts: l.RowLaneCounts,
		RowSizing:     l.RowSizing,
		Overflowing:   l.Overflowing(),
		Bars:          bars,
	}
}
