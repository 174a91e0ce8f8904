/*
errors.go - Centralized error types for the attendance engine

PURPOSE:
  All fatal error values in one place. These cover the configuration error
  taxonomy: invalid year, malformed override, end-before-start spans, and
  calendar lookups outside the initialized year.

  Recoverable irregularities are NOT errors: they are Anomaly values
  attached to the day's result (see types.go). A single day's anomaly must
  never abort a multi-day batch.

USAGE:
  Callers branch with errors.Is:

    if errors.Is(err, attendance.ErrDateOutOfRange) {
        // skip the date or reject the batch, caller's choice
    }
*/
package attendance

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidYear is returned when a calendar is constructed for a year
	// outside the supported range.
	ErrInvalidYear = errors.New("invalid calendar year")

	// ErrInvalidDayType is returned when an override names a day type other
	// than restday or workday.
	ErrInvalidDayType = errors.New("invalid day type for override")

	// ErrInvalidRange is returned when a range override ends before it starts.
	ErrInvalidRange = errors.New("invalid date range: end before start")

	// ErrEndBeforeStart is returned by RoundedHours when the span is negative.
	ErrEndBeforeStart = errors.New("end before start")

	// ErrDateOutOfRange is returned when a date falls outside the calendar's
	// initialized year. The caller decides whether to skip or reject.
	ErrDateOutOfRange = errors.New("date outside initialized year")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// OutOfRangeError reports which date missed the calendar and which year the
// calendar covers.
type OutOfRangeError struct {
	Date Date
	Year int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("date %s outside calendar year %d", e.Date, e.Year)
}

func (e *OutOfRangeError) Unwrap() error { return ErrDateOutOfRange }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsConfiguration returns true if the error is a fatal configuration error:
// no partial result exists and the input must be corrected.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidYear) ||
		errors.Is(err, ErrInvalidDayType) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrEndBeforeStart)
}

// IsLookupMiss returns true if the error is a calendar miss for a date
// outside the initialized year.
func IsLookupMiss(err error) bool {
	return errors.Is(err, ErrDateOutOfRange)
}
