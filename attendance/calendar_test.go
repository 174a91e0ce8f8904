package attendance_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iceNo9/infoProcessClock-In/attendance"
)

func newTestCalendar(t *testing.T) *attendance.Calendar {
	t.Helper()
	cal, err := attendance.NewYear2025Calendar()
	require.NoError(t, err)
	return cal
}

func TestCalendar_EveryDateHasExactlyOneType(t *testing.T) {
	// GIVEN: the shipped 2025 calendar
	// THEN: every date of the year resolves to holiday, restday or workday
	cal := newTestCalendar(t)

	for d := attendance.NewDate(2025, time.January, 1); d.Year == 2025; d = d.AddDays(1) {
		dt := cal.Resolve(d)
		assert.NotEqual(t, attendance.DayUnknown, dt, "date %s unclassified", d)
	}
}

func TestCalendar_OutsideYearIsUnknown(t *testing.T) {
	cal := newTestCalendar(t)

	assert.Equal(t, attendance.DayUnknown, cal.Resolve(attendance.NewDate(2024, time.December, 31)))
	assert.Equal(t, attendance.DayUnknown, cal.Resolve(attendance.NewDate(2026, time.January, 1)))
}

func TestCalendar_WeekendSeeding(t *testing.T) {
	cal := newTestCalendar(t)

	// 2025-03-08 is a Saturday, 2025-03-10 a Monday; neither is adjusted.
	assert.Equal(t, attendance.DayRest, cal.Resolve(attendance.NewDate(2025, time.March, 8)))
	assert.Equal(t, attendance.DayWork, cal.Resolve(attendance.NewDate(2025, time.March, 10)))
}

func TestCalendar_HolidayTable(t *testing.T) {
	cal := newTestCalendar(t)

	d := attendance.NewDate(2025, time.October, 1)
	assert.Equal(t, attendance.DayHoliday, cal.Resolve(d))
	name, ok := cal.HolidayName(d)
	require.True(t, ok)
	assert.Equal(t, attendance.HolidayNational, name)
}

func TestCalendar_SpringFestivalAdjustments(t *testing.T) {
	// The adjustment block turns the surrounding stretch into rest days but
	// never touches the holiday dates inside it, and the make-up Saturdays
	// flip back to workdays.
	cal := newTestCalendar(t)

	assert.Equal(t, attendance.DayRest, cal.Resolve(attendance.NewDate(2025, time.January, 27)))
	assert.Equal(t, attendance.DayRest, cal.Resolve(attendance.NewDate(2025, time.February, 3)))
	assert.Equal(t, attendance.DayHoliday, cal.Resolve(attendance.NewDate(2025, time.January, 28)))
	assert.Equal(t, attendance.DayWork, cal.Resolve(attendance.NewDate(2025, time.January, 25)))
	assert.Equal(t, attendance.DayWork, cal.Resolve(attendance.NewDate(2025, time.February, 8)))
}

func TestCalendar_OverrideOnHolidayIsNoOp(t *testing.T) {
	// GIVEN: a holiday date
	// WHEN: overriding it to workday
	// THEN: the override is silently ignored, holidays are immutable
	cal := newTestCalendar(t)
	holiday := attendance.NewDate(2025, time.May, 1)

	err := cal.Override(holiday, attendance.DayWork)
	require.NoError(t, err)
	assert.Equal(t, attendance.DayHoliday, cal.Resolve(holiday))
}

func TestCalendar_OverrideMovesAndIsIdempotent(t *testing.T) {
	cal := newTestCalendar(t)
	saturday := attendance.NewDate(2025, time.June, 7)
	require.Equal(t, attendance.DayRest, cal.Resolve(saturday))

	require.NoError(t, cal.Override(saturday, attendance.DayWork))
	assert.Equal(t, attendance.DayWork, cal.Resolve(saturday))

	// Applying the same override again changes nothing.
	require.NoError(t, cal.Override(saturday, attendance.DayWork))
	assert.Equal(t, attendance.DayWork, cal.Resolve(saturday))

	require.NoError(t, cal.Override(saturday, attendance.DayRest))
	assert.Equal(t, attendance.DayRest, cal.Resolve(saturday))
}

func TestCalendar_OverrideRejectsInvalidKind(t *testing.T) {
	cal := newTestCalendar(t)

	err := cal.Override(attendance.NewDate(2025, time.June, 9), attendance.DayHoliday)
	require.Error(t, err)
	assert.True(t, errors.Is(err, attendance.ErrInvalidDayType))
	assert.True(t, attendance.IsConfiguration(err))
}

func TestCalendar_OverrideOutsideYear(t *testing.T) {
	cal := newTestCalendar(t)

	err := cal.Override(attendance.NewDate(2024, time.June, 9), attendance.DayWork)
	require.Error(t, err)
	assert.True(t, attendance.IsLookupMiss(err))

	var oor *attendance.OutOfRangeError
	require.True(t, errors.As(err, &oor))
	assert.Equal(t, 2025, oor.Year)
}

func TestNewCalendar_InvalidYear(t *testing.T) {
	_, err := attendance.NewCalendar(0, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, attendance.ErrInvalidYear))
}

func TestNewCalendar_HolidayOutsideYearRejected(t *testing.T) {
	holidays := map[attendance.Date]string{
		attendance.NewDate(2024, time.January, 1): "stale entry",
	}
	_, err := attendance.NewCalendar(2025, holidays, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, attendance.ErrInvalidYear))
}

func TestCalendar_OverrideRangeEndBeforeStart(t *testing.T) {
	cal := newTestCalendar(t)

	err := cal.OverrideRange(
		attendance.NewDate(2025, time.June, 10),
		attendance.NewDate(2025, time.June, 9),
		attendance.DayRest,
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, attendance.ErrInvalidRange))
}
