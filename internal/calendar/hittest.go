package calendar

import "goalcal/internal/model"

// HitTestBars returns the topmost bar containing (x, y). Bars are scanned
// last to first since later bars are drawn on top.
func HitTestBars(bars []Bar, x, y int) (*Bar, bool) {
	for i := len(bars) - 1; i >= 0; i-- {
		if bars[i].Box.Contains(x, y) {
			return &bars[i], true
		}
	}
	return nil, false
}

// HitTest resolves which goal, if any, is under (x, y) in this layout.
func (l *Layout) HitTest(x, y int) (*model.Goal, bool) {
	b, ok := HitTestBars(l.Bars, x, y)
	if !ok {
		return nil, false
	}
	return b.Goal, true
}
