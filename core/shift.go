package core

import (
	"fmt"
	"strings"
	"time"
)

// Shift window boundaries, as offsets from midnight.
const (
	amWindowStart = 6 * time.Hour
	amWindowEnd   = 12 * time.Hour
	pmWindowStart = 18 * time.Hour

	hrMiddayStart = 10 * time.Hour
	hrWindowEnd   = 18 * time.Hour
)

// HR keeps fixed expectations regardless of configured group overrides.
const (
	hrMorningExpected = "08:00"
	hrMiddayExpected  = "12:00"
)

// Shift labels written onto time-in rows.
const (
	LabelAM              = "AM Shift"
	LabelPM              = "PM Shift"
	LabelMidday          = "Midday Shift"
	LabelPMAfterMidnight = "PM Shift (after midnight)"
	LabelNoPM            = "No PM Shift"
	LabelUnknown         = "Unknown"
	LabelHalfday         = "Halfday"
)

// GroupShift overrides the expected check-in times for one employee group.
// Empty fields fall back to the policy defaults; an explicit empty PM on a
// group with no default would mean the group has no PM shift at all.
type GroupShift struct {
	AM string
	PM string
}

// ShiftPolicy maps (employee group, time of day) to the expected check-in
// instant and a shift label. It is built once from configuration and never
// mutated afterwards.
type ShiftPolicy struct {
	defaultAM string
	defaultPM string
	groups    map[string]GroupShift
}

// NewShiftPolicy validates every configured time of day ("15:04") up front so
// later lookups cannot fail.
func NewShiftPolicy(defaultAM, defaultPM string, groups map[string]GroupShift) (*ShiftPolicy, error) {
	if err := checkClockTime(defaultAM); err != nil {
		return nil, fmt.Errorf("default AM expectation: %w", err)
	}
	if err := checkClockTime(defaultPM); err != nil {
		return nil, fmt.Errorf("default PM expectation: %w", err)
	}

	normalized := make(map[string]GroupShift, len(groups))
	for name, gs := range groups {
		if gs.AM != "" {
			if err := checkClockTime(gs.AM); err != nil {
				return nil, fmt.Errorf("group %q AM expectation: %w", name, err)
			}
		}
		if gs.PM != "" {
			if err := checkClockTime(gs.PM); err != nil {
				return nil, fmt.Errorf("group %q PM expectation: %w", name, err)
			}
		}
		normalized[strings.ToLower(strings.TrimSpace(name))] = gs
	}

	return &ShiftPolicy{
		defaultAM: defaultAM,
		defaultPM: defaultPM,
		groups:    normalized,
	}, nil
}

func checkClockTime(s string) error {
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return nil
}

// ExpectedCheckIn returns the instant the employee was expected to clock in at,
// plus the shift label for the window `now` falls in. A nil instant means no
// shift covers this time of day and the time-in is invalid.
func (p *ShiftPolicy) ExpectedCheckIn(group string, now time.Time) (*time.Time, string) {
	group = strings.ToLower(strings.TrimSpace(group))
	tod := timeOfDay(now)

	// HR follows its own windows: a morning shift, a midday shift, and no PM
	// shift at all, so a pre-dawn check-in has no previous-evening anchor.
	if group == "hr" {
		switch {
		case tod >= amWindowStart && tod < hrMiddayStart:
			expected := at(now, hrMorningExpected)
			return &expected, LabelAM
		case tod >= hrMiddayStart && tod < hrWindowEnd:
			expected := at(now, hrMiddayExpected)
			return &expected, LabelMidday
		default:
			return nil, LabelNoPM
		}
	}

	am, pm := p.defaultAM, p.defaultPM
	if gs, ok := p.groups[group]; ok {
		if gs.AM != "" {
			am = gs.AM
		}
		if gs.PM != "" {
			pm = gs.PM
		}
	}

	switch {
	case tod >= amWindowStart && tod < amWindowEnd:
		expected := at(now, am)
		return &expected, LabelAM
	case tod >= pmWindowStart:
		expected := at(now, pm)
		return &expected, LabelPM
	case tod < amWindowStart:
		// Before 06:00 a check-in belongs to the previous evening's PM shift.
		if pm == "" {
			return nil, LabelNoPM
		}
		expected := at(now.AddDate(0, 0, -1), pm)
		return &expected, LabelPMAfterMidnight
	default:
		return nil, LabelUnknown
	}
}

func timeOfDay(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
}

// at anchors a validated "15:04" time of day onto day's calendar date and
// location.
func at(day time.Time, hhmm string) time.Time {
	t, _ := time.Parse("15:04", hhmm)
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}
