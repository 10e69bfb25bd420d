// Package goals owns the goal collection: validation at the boundary,
// the YAML-backed store, ICS import and the read-only snapshots handed
// to the layout engine.
package goals

import (
	"errors"
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"goalcal/internal/model"
)

var (
	ErrEmptyName     = errors.New("goal name is empty")
	ErrMissingDate   = errors.New("goal start or end date is missing")
	ErrInvertedRange = errors.New("goal ends before it starts")
	ErrBadColor      = errors.New("goal color is not a #rrggbb hex value")
	ErrNotFound      = errors.New("goal not found")
	ErrDuplicate     = errors.New("goal name already exists")
)

// DefaultColor is used for goals that do not specify one.
const DefaultColor = "#4a90d9"

// Validate checks a goal before it may enter the collection. The layout
// engine assumes every goal it receives passed this check.
func Validate(g *model.Goal) error {
	if g == nil {
		return ErrMissingDate
	}
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if g.Start.IsZero() || g.End.IsZero() {
		return fmt.Errorf("%q: %w", g.Name, ErrMissingDate)
	}
	if g.Start.After(g.End) {
		return fmt.Errorf("%q %s..%s: %w", g.Name, g.Start, g.End, ErrInvertedRange)
	}
	if g.Color != "" {
		if _, err := ParseColor(g.Color); err != nil {
			return fmt.Errorf("%q: %w", g.Name, err)
		}
	}
	return nil
}

// ParseColor decodes a goal's color token.
func ParseColor(s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%q: %w", s, ErrBadColor)
	}
	return c, nil
}

// ColorOf returns the goal's color, falling back to DefaultColor.
func ColorOf(g *model.Goal) colorful.Color {
	if c, err := ParseColor(g.Color); err == nil {
		return c
	}
	c, _ := colorful.Hex(DefaultColor)
	return c
}

// Find returns the goal with the given name (case-insensitive).
func Find(list []*model.Goal, name string) (*model.Goal, int, bool) {
	for i, g := range list {
		if strings.EqualFold(g.Name, name) {
			return g, i, true
		}
	}
	return nil, -1, false
}
