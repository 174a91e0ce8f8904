/*
calendar.go - Date classification for one calendar year

PURPOSE:
  Resolves a date to exactly one of {holiday, restday, workday}. The
  calendar is built once for a year from a fixed holiday table plus
  weekday/weekend rules, then optionally patched with schedule adjustments
  (compensatory shifts around holiday blocks). Read-only thereafter.

INVARIANT:
  Every date of the initialized year belongs to exactly one of the three
  sets. Holidays are immutable: overrides silently skip them.

SEE ALSO:
  - calendar2025.go: the shipped holiday table and adjustments for 2025
*/
package attendance

import (
	"fmt"
)

// =============================================================================
// DAY TYPE
// =============================================================================

type DayType string

const (
	DayHoliday DayType = "holiday"
	DayRest    DayType = "restday"
	DayWork    DayType = "workday"
	DayUnknown DayType = "unknown"
)

// =============================================================================
// CALENDAR
// =============================================================================

// Calendar owns three disjoint date sets covering one year.
type Calendar struct {
	year     int
	holidays map[Date]string
	restdays map[Date]struct{}
	workdays map[Date]struct{}
}

// Adjustment flips a contiguous date range to restday or workday. These are
// configuration data (compensatory schedule shifts), not algorithm.
type Adjustment struct {
	From Date
	To   Date
	Kind DayType // DayRest or DayWork
}

// NewCalendar seeds a full year: every date not in the holiday table is a
// restday on Saturday/Sunday, a workday otherwise. Adjustments are applied
// in order as a second pass.
func NewCalendar(year int, holidays map[Date]string, adjustments []Adjustment) (*Calendar, error) {
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("year %d: %w", year, ErrInvalidYear)
	}

	c := &Calendar{
		year:     year,
		holidays: make(map[Date]string, len(holidays)),
		restdays: make(map[Date]struct{}),
		workdays: make(map[Date]struct{}),
	}

	for d, name := range holidays {
		if d.Year != year {
			return nil, fmt.Errorf("holiday %s outside year %d: %w", d, year, ErrInvalidYear)
		}
		c.holidays[d] = name
	}

	for d := NewDate(year, 1, 1); d.Year == year; d = d.AddDays(1) {
		if _, ok := c.holidays[d]; ok {
			continue
		}
		if d.IsWeekend() {
			c.restdays[d] = struct{}{}
		} else {
			c.workdays[d] = struct{}{}
		}
	}

	for _, adj := range adjustments {
		if err := c.OverrideRange(adj.From, adj.To, adj.Kind); err != nil {
			return nil, fmt.Errorf("adjustment %s..%s: %w", adj.From, adj.To, err)
		}
	}
	return c, nil
}

// Year returns the calendar's initialized year.
func (c *Calendar) Year() int { return c.year }

// Resolve classifies a date. DayUnknown only for dates outside the year.
func (c *Calendar) Resolve(d Date) DayType {
	switch {
	case c.IsHoliday(d):
		return DayHoliday
	case c.isRestday(d):
		return DayRest
	case c.isWorkday(d):
		return DayWork
	default:
		return DayUnknown
	}
}

func (c *Calendar) IsHoliday(d Date) bool {
	_, ok := c.holidays[d]
	return ok
}

// HolidayName returns the label of a holiday date.
func (c *Calendar) HolidayName(d Date) (string, bool) {
	name, ok := c.holidays[d]
	return name, ok
}

func (c *Calendar) isRestday(d Date) bool {
	_, ok := c.restdays[d]
	return ok
}

func (c *Calendar) isWorkday(d Date) bool {
	_, ok := c.workdays[d]
	return ok
}

// Override moves a date between the restday and workday sets. Idempotent.
// Holiday dates are immutable: the override is silently ignored.
func (c *Calendar) Override(d Date, kind DayType) error {
	if kind != DayRest && kind != DayWork {
		return fmt.Errorf("%q: %w", kind, ErrInvalidDayType)
	}
	if d.Year != c.year {
		return &OutOfRangeError{Date: d, Year: c.year}
	}
	if c.IsHoliday(d) {
		return nil
	}

	delete(c.restdays, d)
	delete(c.workdays, d)
	if kind == DayRest {
		c.restdays[d] = struct{}{}
	} else {
		c.workdays[d] = struct{}{}
	}
	return nil
}

// OverrideRange applies Override to every date in [from, to].
func (c *Calendar) OverrideRange(from, to Date, kind DayType) error {
	if to.Before(from) {
		return fmt.Errorf("%s..%s: %w", from, to, ErrInvalidRange)
	}
	for d := from; !d.After(to); d = d.AddDays(1) {
		if err := c.Override(d, kind); err != nil {
			return err
		}
	}
	return nil
}
