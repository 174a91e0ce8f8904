/*
Package report rolls classified attendance results up for presentation.

PURPOSE:
  The engine produces one record per date; reporting needs a day-level
  verdict (normal / irregular / overtime), display rows, and a period
  total. Spreadsheet generation and styling are outside this system, so
  rows are rendered as CSV for whatever sheet tool consumes them.

VERDICT RULES:
  - An absent expected workday is irregular.
  - A workday with any missing, late or early-leave core slot is irregular;
    otherwise a day with overtime punches is overtime; otherwise normal.
  - A non-workday missing its second punch is irregular; an overtime span
    makes it overtime; a quiet day is normal.
*/
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iceNo9/infoProcessClock-In/attendance"
)

// =============================================================================
// DAY VERDICT
// =============================================================================

type Verdict string

const (
	VerdictNormal    Verdict = "normal"
	VerdictIrregular Verdict = "irregular"
	VerdictOvertime  Verdict = "overtime"
)

// VerdictFor derives the day-level verdict from a record.
func VerdictFor(rec attendance.DayRecord) Verdict {
	switch r := rec.(type) {
	case attendance.AbsentDay:
		return VerdictIrregular

	case *attendance.WorkdayRecord:
		for _, slot := range r.Slots() {
			switch slot.Status {
			case attendance.StatusMissing, attendance.StatusLate, attendance.StatusEarlyLeave:
				return VerdictIrregular
			}
		}
		if r.OvertimeIn.IsSet() || r.OvertimeOut.IsSet() {
			return VerdictOvertime
		}
		return VerdictNormal

	case *attendance.NonWorkdayRecord:
		switch r.Status {
		case attendance.NonWorkdayMissing:
			return VerdictIrregular
		case attendance.RestOvertime, attendance.HolidayOvertime:
			return VerdictOvertime
		default:
			return VerdictNormal
		}

	default:
		return VerdictIrregular
	}
}

// =============================================================================
// ROWS
// =============================================================================

// Row is one rendered report line.
type Row struct {
	Date          attendance.Date
	Weekday       string
	DayType       attendance.DayType
	Verdict       Verdict
	MorningIn     string
	MorningOut    string
	AfternoonIn   string
	AfternoonOut  string
	OvertimeIn    string
	OvertimeOut   string
	OvertimeHours decimal.Decimal
}

// BuildRows renders results into date-ordered rows.
func BuildRows(cal *attendance.Calendar, results map[attendance.Date]attendance.DayResult) []Row {
	dates := make([]attendance.Date, 0, len(results))
	for d := range results {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rows := make([]Row, 0, len(dates))
	for _, d := range dates {
		rows = append(rows, buildRow(cal, d, results[d]))
	}
	return rows
}

func buildRow(cal *attendance.Calendar, d attendance.Date, result attendance.DayResult) Row {
	row := Row{
		Date:    d,
		Weekday: d.Weekday().String(),
		DayType: cal.Resolve(d),
		Verdict: VerdictFor(result.Record),
	}

	switch r := result.Record.(type) {
	case *attendance.WorkdayRecord:
		row.MorningIn = slotTime(r.MorningIn)
		row.MorningOut = slotTime(r.MorningOut)
		row.AfternoonIn = slotTime(r.AfternoonIn)
		row.AfternoonOut = slotTime(r.AfternoonOut)
		row.OvertimeIn = slotTime(r.OvertimeIn)
		row.OvertimeOut = slotTime(r.OvertimeOut)
		row.OvertimeHours = r.OvertimeHours

	case *attendance.NonWorkdayRecord:
		// A non-workday span doubles as the overtime span.
		row.MorningIn = timeOrEmpty(r.WorkStart)
		row.AfternoonOut = timeOrEmpty(r.WorkEnd)
		row.OvertimeIn = timeOrEmpty(r.WorkStart)
		row.OvertimeOut = timeOrEmpty(r.WorkEnd)
		row.OvertimeHours = r.OvertimeHours
	}
	return row
}

func slotTime(s attendance.Slot) string { return timeOrEmpty(s.Time) }

func timeOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04:05")
}

// =============================================================================
// CSV RENDERING
// =============================================================================

var csvHeader = []string{
	"date", "weekday", "day_type", "verdict",
	"morning_in", "morning_out", "afternoon_in", "afternoon_out",
	"overtime_in", "overtime_out", "overtime_hours",
}

// WriteCSV renders the rows plus a trailing total line.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	total := decimal.Zero
	for _, row := range rows {
		record := []string{
			row.Date.String(), row.Weekday, string(row.DayType), string(row.Verdict),
			row.MorningIn, row.MorningOut, row.AfternoonIn, row.AfternoonOut,
			row.OvertimeIn, row.OvertimeOut, hoursOrEmpty(row.OvertimeHours),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", row.Date, err)
		}
		total = total.Add(row.OvertimeHours)
	}

	totalRow := make([]string, len(csvHeader))
	totalRow[0] = "total"
	totalRow[len(totalRow)-1] = total.String()
	if err := cw.Write(totalRow); err != nil {
		return fmt.Errorf("write total: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

func hoursOrEmpty(h decimal.Decimal) string {
	if h.IsZero() {
		return ""
	}
	return h.String()
}
