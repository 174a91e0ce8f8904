package attendance

import (
	"fmt"
	"time"
)

// ClassifyNonWorkday classifies the punches recorded on a rest day or
// holiday. kind selects the overtime label (RestOvertime vs HolidayOvertime).
// The punch list is taken in the order given; the caller guarantees it is
// chronological.
//
// Three or more punches are an anomaly: the span is bounded by the first and
// last punch and the surplus is reported, never silently normalized.
func ClassifyNonWorkday(date Date, kind DayType, punches []time.Time) (*NonWorkdayRecord, []Anomaly) {
	rec := &NonWorkdayRecord{Date: date, Kind: kind}

	switch len(punches) {
	case 0:
		rec.Status = NonWorkdayNormal
		return rec, nil

	case 1:
		start := punches[0]
		rec.Status = NonWorkdayMissing
		rec.WorkStart = &start
		return rec, nil

	case 2:
		return overtimeSpan(rec, kind, punches[0], punches[1]), nil

	default:
		overtimeSpan(rec, kind, punches[0], punches[len(punches)-1])
		return rec, []Anomaly{{
			Date:       date,
			PunchIndex: 2,
			Code:       AnomalyNonWorkdayOverflow,
			Message: fmt.Sprintf("%d punches on a %s, using first and last as the span",
				len(punches), kind),
		}}
	}
}

func overtimeSpan(rec *NonWorkdayRecord, kind DayType, start, end time.Time) *NonWorkdayRecord {
	if kind == DayHoliday {
		rec.Status = HolidayOvertime
	} else {
		rec.Status = RestOvertime
	}
	s, e := start, end
	rec.WorkStart = &s
	rec.WorkEnd = &e
	hours, _ := RoundedHours(start, end) // input is chronological
	rec.OvertimeHours = hours
	return rec
}
