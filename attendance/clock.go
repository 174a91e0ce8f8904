package attendance

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar date without a time component
// =============================================================================

// Date is a civil date. It is comparable and safe to use as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	// Round-trip through time.Date to normalize out-of-range components.
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC on the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// At returns the wall-clock instant hh:mm on the date.
func (d Date) At(hour, minute int) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date          { return DateOf(d.Time().AddDate(0, 0, n)) }
func (d Date) Weekday() time.Weekday       { return d.Time().Weekday() }
func (d Date) Before(other Date) bool      { return d.Time().Before(other.Time()) }
func (d Date) After(other Date) bool       { return d.Time().After(other.Time()) }
func (d Date) IsWeekend() bool             { wd := d.Weekday(); return wd == time.Saturday || wd == time.Sunday }
func (d Date) String() string              { return d.Time().Format("2006-01-02") }

// MarshalText encodes the date as YYYY-MM-DD, so JSON payloads and map keys
// carry readable dates instead of struct fields.
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// CLOCK TIME - Wall-clock time of day, applied to a target date
// =============================================================================

// ClockTime is a time of day. Shift boundaries are ClockTimes; they become
// concrete instants only when combined with a date.
type ClockTime struct {
	Hour   int
	Minute int
}

// On returns the instant at this clock time on the given date.
func (c ClockTime) On(d Date) time.Time { return d.At(c.Hour, c.Minute) }

func (c ClockTime) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }
