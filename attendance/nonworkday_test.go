package attendance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iceNo9/infoProcessClock-In/attendance"
)

// 2025-03-08 is a Saturday.
var saturday = attendance.NewDate(2025, time.March, 8)

func TestNonWorkday_NoPunchesIsNormal(t *testing.T) {
	rec, anomalies := attendance.ClassifyNonWorkday(saturday, attendance.DayRest, nil)

	assert.Empty(t, anomalies)
	assert.Equal(t, attendance.NonWorkdayNormal, rec.Status)
	assert.Nil(t, rec.WorkStart)
	assert.Nil(t, rec.WorkEnd)
	assert.True(t, rec.OvertimeHours.IsZero())
}

func TestNonWorkday_SinglePunchIsMissing(t *testing.T) {
	punch := saturday.At(9, 0)
	rec, anomalies := attendance.ClassifyNonWorkday(saturday, attendance.DayRest, []time.Time{punch})

	assert.Empty(t, anomalies)
	assert.Equal(t, attendance.NonWorkdayMissing, rec.Status)
	require.NotNil(t, rec.WorkStart)
	assert.True(t, punch.Equal(*rec.WorkStart))
	assert.Nil(t, rec.WorkEnd)
	assert.True(t, rec.OvertimeHours.IsZero())
}

func TestNonWorkday_TwoPunchesRestOvertime(t *testing.T) {
	// GIVEN: punches 09:00 and 17:00 on a rest day
	// THEN: an eight hour rest-overtime span
	rec, anomalies := attendance.ClassifyNonWorkday(saturday, attendance.DayRest,
		[]time.Time{saturday.At(9, 0), saturday.At(17, 0)})

	assert.Empty(t, anomalies)
	assert.Equal(t, attendance.RestOvertime, rec.Status)
	require.NotNil(t, rec.WorkStart)
	require.NotNil(t, rec.WorkEnd)
	assert.True(t, hours("8").Equal(rec.OvertimeHours))
}

func TestNonWorkday_HolidayLabel(t *testing.T) {
	holiday := attendance.NewDate(2025, time.May, 1)
	rec, _ := attendance.ClassifyNonWorkday(holiday, attendance.DayHoliday,
		[]time.Time{holiday.At(10, 0), holiday.At(12, 20)})

	assert.Equal(t, attendance.HolidayOvertime, rec.Status)
	// 2h20m rounds to 2.5.
	assert.True(t, hours("2.5").Equal(rec.OvertimeHours))
}

func TestNonWorkday_ThreePunchesUseFirstAndLast(t *testing.T) {
	// GIVEN: three punches on a rest day
	// THEN: the span runs first to last and the surplus is reported
	rec, anomalies := attendance.ClassifyNonWorkday(saturday, attendance.DayRest,
		[]time.Time{saturday.At(9, 0), saturday.At(12, 0), saturday.At(17, 0)})

	require.Len(t, anomalies, 1)
	assert.Equal(t, attendance.AnomalyNonWorkdayOverflow, anomalies[0].Code)

	assert.Equal(t, attendance.RestOvertime, rec.Status)
	require.NotNil(t, rec.WorkStart)
	require.NotNil(t, rec.WorkEnd)
	assert.True(t, saturday.At(9, 0).Equal(*rec.WorkStart))
	assert.True(t, saturday.At(17, 0).Equal(*rec.WorkEnd))
	assert.True(t, hours("8").Equal(rec.OvertimeHours))
}
