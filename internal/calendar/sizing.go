package calendar

import "fmt"

// Geometry is the fixed pixel geometry of the month grid plus the lane
// sizing limits. All values are in pixels.
type Geometry struct {
	Pad                 int `yaml:"pad" json:"pad"`
	CellWidth           int `yaml:"cell_width" json:"cell_width"`
	CellHeight          int `yaml:"cell_height" json:"cell_height"`
	WeekdayHeaderHeight int `yaml:"weekday_header_height" json:"weekday_header_height"`

	// BaseOffset is the distance from the top of a cell to its first lane
	// (room for the day number).
	BaseOffset   int `yaml:"base_offset" json:"base_offset"`
	BottomMargin int `yaml:"bottom_margin" json:"bottom_margin"`
	// BarInset shrinks bars horizontally so adjacent cells stay visible.
	BarInset int `yaml:"bar_inset" json:"bar_inset"`

	LaneGap       int `yaml:"lane_gap" json:"lane_gap"`
	MinLaneHeight int `yaml:"min_lane_height" json:"min_lane_height"`
	MaxLaneHeight int `yaml:"max_lane_height" json:"max_lane_height"`
}

// DefaultGeometry fits a 900x600 window.
func DefaultGeometry() Geometry {
	return Geometry{
		Pad:                 20,
		CellWidth:           120,
		CellHeight:          80,
		WeekdayHeaderHeight: 24,
		BaseOffset:          22,
		BottomMargin:        4,
		BarInset:            2,
		LaneGap:             2,
		MinLaneHeight:       6,
		MaxLaneHeight:       18,
	}
}

// Validate rejects geometries that cannot produce a sensible grid.
func (g Geometry) Validate() error {
	switch {
	case g.CellWidth <= 0 || g.CellHeight <= 0:
		return fmt.Errorf("calendar: cell size %dx%d must be positive: %w", g.CellWidth, g.CellHeight, ErrInvalidArgument)
	case g.Pad < 0 || g.WeekdayHeaderHeight < 0 || g.BaseOffset < 0 || g.BottomMargin < 0 || g.BarInset < 0 || g.LaneGap < 0:
		return fmt.Errorf("calendar: negative offsets in geometry: %w", ErrInvalidArgument)
	case g.MinLaneHeight <= 0:
		return fmt.Errorf("calendar: min lane height %d must be positive: %w", g.MinLaneHeight, ErrInvalidArgument)
	case g.MinLaneHeight > g.MaxLaneHeight:
		return fmt.Errorf("calendar: min lane height %d > max %d: %w", g.MinLaneHeight, g.MaxLaneHeight, ErrInvalidArgument)
	case g.Usable() < g.MinLaneHeight:
		return fmt.Errorf("calendar: cell height %d leaves %d px for lanes, below min lane height %d: %w",
			g.CellHeight, g.Usable(), g.MinLaneHeight, ErrInvalidArgument)
	case 2*g.BarInset >= g.CellWidth:
		return fmt.Errorf("calendar: bar inset %d too wide for cell width %d: %w", g.BarInset, g.CellWidth, ErrInvalidArgument)
	}
	return nil
}

// Usable is the vertical budget available to lanes inside one cell.
func (g Geometry) Usable() int {
	return g.CellHeight - g.BaseOffset - g.BottomMargin
}

// GridTop is the y coordinate of the top edge of row 0.
func (g Geometry) GridTop() int {
	return g.Pad + g.WeekdayHeaderHeight
}

// Width and Height are the full canvas size including padding.
func (g Geometry) Width() int  { return 2*g.Pad + Cols*g.CellWidth }
func (g Geometry) Height() int { return g.GridTop() + Rows*g.CellHeight + g.Pad }

// MaxFittingLanes is the largest lane count whose stack still fits inside
// a cell at MinLaneHeight. Rows with more lanes overflow the cell.
func (g Geometry) MaxFittingLanes() int {
	if g.Usable() < g.MinLaneHeight {
		return 0
	}
	return (g.Usable() + g.LaneGap) / (g.MinLaneHeight + g.LaneGap)
}

// LaneSize is the computed lane height and gap for one row.
type LaneSize struct {
	Height int `json:"height"`
	Gap    int `json:"gap"`
}

// Stack returns the total height of n lanes.
func (s LaneSize) Stack(n int) int {
	if n <= 0 {
		return 0
	}
	return n*s.Height + (n-1)*s.Gap
}

// SizeLanes computes a lane height per row so that the lanes of each row
// share the cell's usable height, clamped to [MinLaneHeight, MaxLaneHeight].
// Rows busier than MaxFittingLanes get MinLaneHeight and overflow.
func SizeLanes(counts [Rows]int, g Geometry) [Rows]LaneSize {
	var out [Rows]LaneSize
	usable := g.Usable()
	for row, n := range counts {
		lanes := max(1, n)
		h := (usable - (lanes-1)*g.LaneGap) / lanes
		out[row] = LaneSize{
			Height: clamp(h, g.MinLaneHeight, g.MaxLaneHeight),
			Gap:    g.LaneGap,
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
