package model

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the textual form of a Date in config files, JSON and CLI args.
const DateLayout = "2006-01-02"

// Date is a calendar day without any time-of-day or timezone component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalizes out-of-range values the same way time.Date does
// (e.g. Feb 30 becomes Mar 2).
func NewDate(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime takes the calendar day of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return FromTime(t), nil
}

// Today returns the current local calendar day.
func Today() Date {
	return FromTime(time.Now())
}

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }
func (d Date) Equal(o Date) bool  { return d.Compare(o) == 0 }

// AddDays returns the date n days later (n may be negative).
func (d Date) AddDays(n int) Date {
	return FromTime(d.time().AddDate(0, 0, n))
}

// DaysUntil returns the signed number of days from d to o.
func (d Date) DaysUntil(o Date) int {
	return int(o.time().Sub(d.time()).Hours() / 24)
}

func (d Date) Weekday() time.Weekday {
	return d.time().Weekday()
}

// IsZero reports whether d is the zero Date (not a valid day).
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	// Unquoted dates resolve to !!timestamp; the raw scalar is what we want.
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("date: expected scalar, got yaml kind %d", node.Kind)
	}
	return d.UnmarshalText([]byte(node.Value))
}

// Goal is a named, inclusive date interval rendered as a bar.
//
// Goals are owned by the caller. The layout engine only reads them and
// hands the same pointers back in its results.
type Goal struct {
	Name  string `yaml:"name" json:"name"`
	Start Date   `yaml:"start" json:"start"`
	End   Date   `yaml:"end" json:"end"`
	// Color is an opaque display token, by convention "#rrggbb".
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
}

// Days returns the number of days the goal covers, inclusive.
func (g *Goal) Days() int {
	return g.Start.DaysUntil(g.End) + 1
}
