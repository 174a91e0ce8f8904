package report_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iceNo9/infoProcessClock-In/attendance"
	"github.com/iceNo9/infoProcessClock-In/report"
)

func processMarch(t *testing.T) (*attendance.Calendar, map[attendance.Date]attendance.DayResult) {
	t.Helper()

	cal, err := attendance.NewYear2025Calendar()
	require.NoError(t, err)
	proc := attendance.NewProcessor(cal, attendance.DefaultWorkdayConfig())

	monday := attendance.NewDate(2025, time.March, 10)
	saturday := attendance.NewDate(2025, time.March, 8)
	punches := map[attendance.Date][]time.Time{
		monday:   {monday.At(8, 0), monday.At(12, 20), monday.At(13, 30), monday.At(19, 0)},
		saturday: {saturday.At(9, 0), saturday.At(17, 0)},
	}

	results, err := proc.ProcessMonth(time.March, punches)
	require.NoError(t, err)
	return cal, results
}

func TestVerdictFor(t *testing.T) {
	monday := attendance.NewDate(2025, time.March, 10)

	cases := []struct {
		name string
		rec  attendance.DayRecord
		want report.Verdict
	}{
		{
			"absent workday is irregular",
			attendance.AbsentDay{Date: monday},
			report.VerdictIrregular,
		},
		{
			"clean workday is normal",
			&attendance.WorkdayRecord{
				Date:         monday,
				MorningIn:    attendance.Slot{Status: attendance.StatusNormal},
				MorningOut:   attendance.Slot{Status: attendance.StatusNormal},
				AfternoonIn:  attendance.Slot{Status: attendance.StatusNormal},
				AfternoonOut: attendance.Slot{Status: attendance.StatusNormal},
			},
			report.VerdictNormal,
		},
		{
			"late arrival is irregular",
			&attendance.WorkdayRecord{
				Date:         monday,
				MorningIn:    attendance.Slot{Status: attendance.StatusLate},
				MorningOut:   attendance.Slot{Status: attendance.StatusNormal},
				AfternoonIn:  attendance.Slot{Status: attendance.StatusNormal},
				AfternoonOut: attendance.Slot{Status: attendance.StatusNormal},
			},
			report.VerdictIrregular,
		},
		{
			"overtime departure outranks normal",
			&attendance.WorkdayRecord{
				Date:         monday,
				MorningIn:    attendance.Slot{Status: attendance.StatusNormal},
				MorningOut:   attendance.Slot{Status: attendance.StatusNormal},
				AfternoonIn:  attendance.Slot{Status: attendance.StatusNormal},
				AfternoonOut: attendance.Slot{Status: attendance.StatusOvertime},
				OvertimeIn:   attendance.Slot{Status: attendance.StatusNormal},
				OvertimeOut:  attendance.Slot{Status: attendance.StatusNormal},
			},
			report.VerdictOvertime,
		},
		{
			"rest overtime",
			&attendance.NonWorkdayRecord{Date: monday, Kind: attendance.DayRest, Status: attendance.RestOvertime},
			report.VerdictOvertime,
		},
		{
			"missing second punch on rest day",
			&attendance.NonWorkdayRecord{Date: monday, Kind: attendance.DayRest, Status: attendance.NonWorkdayMissing},
			report.VerdictIrregular,
		},
		{
			"quiet holiday",
			&attendance.NonWorkdayRecord{Date: monday, Kind: attendance.DayHoliday, Status: attendance.NonWorkdayNormal},
			report.VerdictNormal,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, report.VerdictFor(tc.rec))
		})
	}
}

func TestBuildRows_OrderedAndFilled(t *testing.T) {
	cal, results := processMarch(t)

	rows := report.BuildRows(cal, results)
	require.Len(t, rows, 31)

	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i-1].Date.Before(rows[i].Date), "rows out of order at %d", i)
	}

	// March 10 row carries the overtime punches.
	var monday report.Row
	for _, r := range rows {
		if r.Date == attendance.NewDate(2025, time.March, 10) {
			monday = r
		}
	}
	assert.Equal(t, report.VerdictOvertime, monday.Verdict)
	assert.Equal(t, "Monday", monday.Weekday)
	assert.Equal(t, "08:00:00", monday.MorningIn)
	assert.Equal(t, "18:30:00", monday.OvertimeIn)
	assert.Equal(t, "19:00:00", monday.OvertimeOut)
	assert.Equal(t, "0.5", monday.OvertimeHours.String())
}

func TestWriteCSV(t *testing.T) {
	cal, results := processMarch(t)
	rows := report.BuildRows(cal, results)

	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, rows))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)

	// Header + 31 days + total line.
	require.Len(t, records, 33)
	assert.Equal(t, "date", records[0][0])

	last := records[len(records)-1]
	assert.Equal(t, "total", last[0])
	// 0.5h workday overtime plus 8h rest-day overtime.
	assert.Equal(t, "8.5", last[len(last)-1])
}
