/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - attendance: the domain types these mirror
*/
package api

import (
	"time"

	"github.com/iceNo9/infoProcessClock-In/attendance"
	"github.com/iceNo9/infoProcessClock-In/report"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// IngestRequest carries a raw punch log for one month.
type IngestRequest struct {
	Month int    `json:"month"`
	Text  string `json:"text"`
}

// IngestResponse summarizes what the ingest kept per date.
type IngestResponse struct {
	Days    []IngestDayDTO `json:"days"`
	Punches int            `json:"punches"`
}

type IngestDayDTO struct {
	Date    string   `json:"date"`
	Punches []string `json:"punches"`
}

// ProcessRequest selects the month to classify from stored punches.
type ProcessRequest struct {
	Month int `json:"month"`
}

// ProcessResponse returns the classified month.
type ProcessResponse struct {
	Days          []DayDTO     `json:"days"`
	TotalOvertime string       `json:"total_overtime"`
	Anomalies     []AnomalyDTO `json:"anomalies"`
}

// SlotDTO is one labeled punch event.
type SlotDTO struct {
	Status string  `json:"status"`
	Time   *string `json:"time,omitempty"`
}

// DayDTO flattens a day record for API responses. Kind selects which of the
// optional field groups is populated.
type DayDTO struct {
	Date    string `json:"date"`
	Kind    string `json:"kind"` // workday, restday, holiday, absent
	Verdict string `json:"verdict"`

	// Workday slots
	MorningIn    *SlotDTO `json:"morning_in,omitempty"`
	MorningOut   *SlotDTO `json:"morning_out,omitempty"`
	AfternoonIn  *SlotDTO `json:"afternoon_in,omitempty"`
	AfternoonOut *SlotDTO `json:"afternoon_out,omitempty"`
	OvertimeIn   *SlotDTO `json:"overtime_in,omitempty"`
	OvertimeOut  *SlotDTO `json:"overtime_out,omitempty"`

	// Non-workday span
	Status    string  `json:"status,omitempty"`
	WorkStart *string `json:"work_start,omitempty"`
	WorkEnd   *string `json:"work_end,omitempty"`

	OvertimeHours string `json:"overtime_hours"`
}

type AnomalyDTO struct {
	Date       string `json:"date"`
	PunchIndex int    `json:"punch_index"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// CalendarDayDTO describes how the calendar labels one date.
type CalendarDayDTO struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	HolidayName string `json:"holiday_name,omitempty"`
}

// OverrideRequest reclassifies a date range as rest or work.
type OverrideRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Kind string `json:"kind"` // restday or workday
}

// ReportRowDTO mirrors one line of the month report.
type ReportRowDTO struct {
	Date         string `json:"date"`
	Weekday      string `json:"weekday"`
	DayType      string `json:"day_type"`
	Verdict      string `json:"verdict"`
	MorningIn    string `json:"morning_in,omitempty"`
	MorningOut   string `json:"morning_out,omitempty"`
	AfternoonIn  string `json:"afternoon_in,omitempty"`
	AfternoonOut string `json:"afternoon_out,omitempty"`
	OvertimeIn   string `json:"overtime_in,omitempty"`
	OvertimeOut  string `json:"overtime_out,omitempty"`
	Overtime     string `json:"overtime_hours"`
}

type ReportResponse struct {
	Rows          []ReportRowDTO `json:"rows"`
	TotalOvertime string         `json:"total_overtime"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

const clockLayout = "15:04:05"

func slotDTO(s attendance.Slot) *SlotDTO {
	if !s.IsSet() {
		return nil
	}
	dto := &SlotDTO{Status: string(s.Status)}
	if s.Time != nil {
		formatted := s.Time.Format(clockLayout)
		dto.Time = &formatted
	}
	return dto
}

func clockPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(clockLayout)
	return &formatted
}

func toDayDTO(result attendance.DayResult) DayDTO {
	dto := DayDTO{
		Date:          result.Record.RecordDate().String(),
		Verdict:       string(report.VerdictFor(result.Record)),
		OvertimeHours: result.Record.Overtime().String(),
	}

	switch rec := result.Record.(type) {
	case *attendance.WorkdayRecord:
		dto.Kind = "workday"
		dto.MorningIn = slotDTO(rec.MorningIn)
		dto.MorningOut = slotDTO(rec.MorningOut)
		dto.AfternoonIn = slotDTO(rec.AfternoonIn)
		dto.AfternoonOut = slotDTO(rec.AfternoonOut)
		dto.OvertimeIn = slotDTO(rec.OvertimeIn)
		dto.OvertimeOut = slotDTO(rec.OvertimeOut)

	case *attendance.NonWorkdayRecord:
		if rec.Kind == attendance.DayHoliday {
			dto.Kind = "holiday"
		} else {
			dto.Kind = "restday"
		}
		dto.Status = string(rec.Status)
		dto.WorkStart = clockPtr(rec.WorkStart)
		dto.WorkEnd = clockPtr(rec.WorkEnd)

	case attendance.AbsentDay:
		dto.Kind = "absent"
	}

	return dto
}

func toReportRowDTOs(rows []report.Row) []ReportRowDTO {
	dtos := make([]ReportRowDTO, len(rows))
	for i, row := range rows {
		dtos[i] = ReportRowDTO{
			Date:         row.Date.String(),
			Weekday:      row.Weekday,
			DayType:      string(row.DayType),
			Verdict:      string(row.Verdict),
			MorningIn:    row.MorningIn,
			MorningOut:   row.MorningOut,
			AfternoonIn:  row.AfternoonIn,
			AfternoonOut: row.AfternoonOut,
			OvertimeIn:   row.OvertimeIn,
			OvertimeOut:  row.OvertimeOut,
			Overtime:     row.OvertimeHours.String(),
		}
	}
	return dtos
}

func toAnomalyDTOs(anomalies []attendance.Anomaly) []AnomalyDTO {
	dtos := make([]AnomalyDTO, len(anomalies))
	for i, a := range anomalies {
		dtos[i] = AnomalyDTO{
			Date:       a.Date.String(),
			PunchIndex: a.PunchIndex,
			Code:       string(a.Code),
			Message:    a.Message,
		}
	}
	return dtos
}
