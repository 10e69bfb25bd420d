package goals

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "goalcal/internal/log"
	"goalcal/internal/model"
)

// ParseICS converts the VEVENTs of an iCalendar payload into goals.
//
//   - SUMMARY becomes the goal name; events without one are skipped.
//   - All-day events (VALUE=DATE) have an exclusive DTEND, so the goal ends
//     the day before it. A missing DTEND means a single-day goal.
//   - Timed events keep the calendar days of DTSTART and DTEND as written;
//     no timezone conversion is done.
//   - RRULE is not expanded: only the first occurrence becomes a goal.
//
// color is applied to every imported goal. Invalid events are logged and
// skipped; the error is reserved for payloads that cannot be parsed at all.
func ParseICS(src string, body []byte, color string) ([]*model.Goal, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		appLog.Error("ics parse failed", err, "src", redactURL(src))
		return nil, err
	}

	out := make([]*model.Goal, 0)
	for _, ve := range cal.Events() {
		g, perr := eventToGoal(ve, color)
		if perr != nil {
			appLog.Error("ics vevent skipped", perr, "src", redactURL(src))
			continue
		}
		out = append(out, g)
	}

	appLog.Info("ics parse completed", "src", redactURL(src), "goal_count", len(out))
	return out, nil
}

func eventToGoal(ve *ical.VEvent, color string) (*model.Goal, error) {
	g := &model.Goal{Color: color}

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		g.Name = strings.TrimSpace(p.Value)
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return nil, fmt.Errorf("%q: missing DTSTART", g.Name)
	}
	start, allDay, err := parseICSDate(dtStart.Value, dtStart.ICalParameters)
	if err != nil {
		return nil, fmt.Errorf("%q: DTSTART: %w", g.Name, err)
	}
	g.Start = start
	g.End = start

	if dtEnd := ve.GetProperty(ical.ComponentPropertyDtEnd); dtEnd != nil {
		end, endAllDay, err := parseICSDate(dtEnd.Value, dtEnd.ICalParameters)
		if err != nil {
			return nil, fmt.Errorf("%q: DTEND: %w", g.Name, err)
		}
		if allDay && endAllDay {
			end = end.AddDays(-1)
		}
		if end.Before(start) {
			end = start
		}
		g.End = end
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		appLog.Debug("ics recurrence ignored; importing first occurrence", "name", g.Name, "rrule", p.Value)
	}

	if err := Validate(g); err != nil {
		return nil, err
	}
	return g, nil
}

// parseICSDate returns the calendar day of an ICS DATE or DATE-TIME value
// and whether it was a bare DATE.
func parseICSDate(v string, params map[string][]string) (model.Date, bool, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return model.Date{}, false, errors.New("empty time value")
	}

	allDay := !strings.Contains(v, "T")
	if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		allDay = true
	}

	layout := "20060102"
	if !allDay {
		layout = "20060102T150405"
		v = strings.TrimSuffix(v, "Z")
	}
	t, err := time.Parse(layout, v)
	if err != nil {
		return model.Date{}, false, err
	}
	return model.FromTime(t), allDay, nil
}
