/*
Package attendance converts raw clock-punch timestamps into structured
per-day attendance records.

PURPOSE:
  This package contains the core classification engine. Given a calendar
  that labels each date as workday, rest day or holiday, and a sorted list
  of punch timestamps for a date, it produces a record that labels each
  expected punch event (on-time, late, early-leave, missing, overtime) and
  computes the overtime duration for the day.

KEY CONCEPTS IN THIS FILE (types.go):
  - Status/Slot: a labeled punch event with an optional timestamp
  - WorkdayRecord: the six-slot record produced for workdays
  - NonWorkdayRecord: the single-status record for rest days and holidays
  - DayRecord: closed sum type over the per-day outcomes
  - Anomaly: a recoverable classification irregularity attached to a result

DESIGN PRINCIPLES:
  1. Purity: classification is a pure function of (date, punches, config)
  2. Precision: overtime hours use decimal.Decimal, quantized to 0.5
  3. Recoverability: anomalies ride alongside records, they never abort a day
  4. Exhaustiveness: DayRecord is sealed so report code can switch on it

USAGE:
  cal, _ := attendance.NewYear2025Calendar()
  proc := attendance.NewProcessor(cal, attendance.DefaultWorkdayConfig())
  result, err := proc.ProcessDay(attendance.NewDate(2025, time.March, 10), punches)

SEE ALSO:
  - workday.go: the window state machine for workdays
  - nonworkday.go: rest day / holiday classification
  - calendar.go: date -> day type resolution
  - rounding.go: half-hour overtime rounding
*/
package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SLOT STATUS - Label for a single expected punch event
// =============================================================================

type Status string

const (
	StatusNormal     Status = "normal"
	StatusLate       Status = "late"
	StatusEarlyLeave Status = "early_leave"
	StatusMissing    Status = "missing"
	StatusOvertime   Status = "overtime"
)

// Slot is one expected punch event. The zero value means "not determined yet";
// a Missing slot carries no timestamp.
type Slot struct {
	Status Status
	Time   *time.Time
}

// IsSet reports whether the slot has been assigned a status.
func (s Slot) IsSet() bool { return s.Status != "" }

func newSlot(status Status, at time.Time) Slot {
	t := at
	return Slot{Status: status, Time: &t}
}

func missingSlot() Slot { return Slot{Status: StatusMissing} }

// =============================================================================
// NON-WORKDAY STATUS - Day-level label for rest days and holidays
// =============================================================================

type NonWorkdayStatus string

const (
	NonWorkdayNormal  NonWorkdayStatus = "normal"
	NonWorkdayMissing NonWorkdayStatus = "missing"
	RestOvertime      NonWorkdayStatus = "rest_overtime"
	HolidayOvertime   NonWorkdayStatus = "holiday_overtime"
)

// =============================================================================
// DAY RECORDS - Closed sum type over per-day outcomes
// =============================================================================

// DayRecord is the per-date classification outcome. It is a sealed interface:
// the only implementations are WorkdayRecord, NonWorkdayRecord and AbsentDay,
// so callers can switch exhaustively.
type DayRecord interface {
	RecordDate() Date
	Overtime() decimal.Decimal

	dayRecord()
}

// WorkdayRecord owns exactly six slots plus the rounded overtime duration.
type WorkdayRecord struct {
	Date Date

	MorningIn    Slot
	MorningOut   Slot
	AfternoonIn  Slot
	AfternoonOut Slot
	OvertimeIn   Slot
	OvertimeOut  Slot

	OvertimeHours decimal.Decimal
}

func (r *WorkdayRecord) RecordDate() Date          { return r.Date }
func (r *WorkdayRecord) Overtime() decimal.Decimal { return r.OvertimeHours }
func (r *WorkdayRecord) dayRecord()                {}

// Slots returns the four core slots in schedule order. The overtime pair is
// excluded: it is only meaningful when an overtime punch was observed.
func (r *WorkdayRecord) Slots() [4]Slot {
	return [4]Slot{r.MorningIn, r.MorningOut, r.AfternoonIn, r.AfternoonOut}
}

// NonWorkdayRecord is produced for rest days and holidays.
type NonWorkdayRecord struct {
	Date Date
	Kind DayType // DayRest or DayHoliday

	Status    NonWorkdayStatus
	WorkStart *time.Time
	WorkEnd   *time.Time

	OvertimeHours decimal.Decimal
}

func (r *NonWorkdayRecord) RecordDate() Date          { return r.Date }
func (r *NonWorkdayRecord) Overtime() decimal.Decimal { return r.OvertimeHours }
func (r *NonWorkdayRecord) dayRecord()                {}

// AbsentDay marks an expected workday with no punches at all.
type AbsentDay struct {
	Date Date
}

func (r AbsentDay) RecordDate() Date          { return r.Date }
func (r AbsentDay) Overtime() decimal.Decimal { return decimal.Zero }
func (r AbsentDay) dayRecord()                {}

// Compile-time checks that the sum type is complete.
var (
	_ DayRecord = (*WorkdayRecord)(nil)
	_ DayRecord = (*NonWorkdayRecord)(nil)
	_ DayRecord = AbsentDay{}
)

// =============================================================================
// ANOMALY - Recoverable classification irregularity
// =============================================================================

type AnomalyCode string

const (
	// AnomalyLunchOverflow: three or more punches accumulated in the lunch
	// window; disambiguation is skipped rather than guessed.
	AnomalyLunchOverflow AnomalyCode = "lunch_overflow"

	// AnomalyFlexDisabled: a punch landed in the flex-grace sub-window while
	// flexible mode is off. The punch is dropped but still counts toward the
	// end-of-scan punch total.
	AnomalyFlexDisabled AnomalyCode = "flex_disabled"

	// AnomalyNonWorkdayOverflow: three or more punches on a rest day or
	// holiday; the first and last bound the overtime span.
	AnomalyNonWorkdayOverflow AnomalyCode = "nonworkday_overflow"

	// AnomalySlotUnfilled: four or more punches were recorded but a core slot
	// was never assigned.
	AnomalySlotUnfilled AnomalyCode = "slot_unfilled"
)

// Anomaly reports an input shape the classification rules do not
// unambiguously cover. It is attached to the day's result, never fatal.
type Anomaly struct {
	Date       Date
	PunchIndex int // index into the day's punch list, -1 if not tied to one
	Code       AnomalyCode
	Message    string
}

func (a Anomaly) String() string {
	return string(a.Code) + " on " + a.Date.String() + ": " + a.Message
}

// =============================================================================
// DAY RESULT - Record plus collected anomalies
// =============================================================================

// DayResult pairs the attendance record for a date with any anomalies the
// classifier collected while producing it.
type DayResult struct {
	Record    DayRecord
	Anomalies []Anomaly
}
