package model

import (
	"fmt"
	"time"
)

// Month identifies a displayed month. Navigation arithmetic (wrapping
// across year boundaries) lives here so the grid builder never has to
// guess what an out-of-range month means.
type Month struct {
	Year  int
	Month time.Month
}

// CurrentMonth returns the month containing today.
func CurrentMonth() Month {
	t := Today()
	return Month{Year: t.Year, Month: t.Month}
}

// ParseMonth parses "YYYY-MM".
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("parse month %q: %w", s, err)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// Add moves n months forward (negative n moves back), wrapping the year.
func (m Month) Add(n int) Month {
	idx := m.Year*12 + int(m.Month-1) + n
	year := idx / 12
	mon := idx % 12
	if mon < 0 {
		mon += 12
		year--
	}
	return Month{Year: year, Month: time.Month(mon + 1)}
}

func (m Month) Next() Month { return m.Add(1) }
func (m Month) Prev() Month { return m.Add(-1) }

// First returns the first day of the month.
func (m Month) First() Date {
	return Date{Year: m.Year, Month: m.Month, Day: 1}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
