/*
handlers.go - HTTP API handlers for the attendance engine

PURPOSE:
  Exposes ingest, classification, calendar and reporting via REST API.
  Handles HTTP request/response, JSON serialization, and delegates to
  domain logic.

ENDPOINTS:
  Ingest:
    POST   /api/ingest            Parse a raw punch log and store the month

  Processing:
    POST   /api/process           Classify a month from stored punches
    GET    /api/days              Stored day results in a date range
    GET    /api/days/{date}       One stored day result

  Calendar:
    GET    /api/calendar/{date}   Day type and holiday name for a date
    POST   /api/calendar/override Reclassify a date range

  Reports:
    GET    /api/report/{month}       Month report rows as JSON
    GET    /api/report/{month}/csv   Month report as CSV download

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (ingest, processor, report)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iceNo9/infoProcessClock-In/attendance"
	"github.com/iceNo9/infoProcessClock-In/ingest"
	"github.com/iceNo9/infoProcessClock-In/report"
	"github.com/iceNo9/infoProcessClock-In/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     *sqlite.Store
	Processor *attendance.Processor

	// MergeThreshold collapses badge double punches during ingest.
	MergeThreshold time.Duration
}

// NewHandler creates a new handler with the given store and processor.
func NewHandler(store *sqlite.Store, proc *attendance.Processor) *Handler {
	return &Handler{
		Store:          store,
		Processor:      proc,
		MergeThreshold: ingest.DefaultMergeThreshold,
	}
}

func (h *Handler) year() int { return h.Processor.Calendar.Year() }

// =============================================================================
// INGEST HANDLERS
// =============================================================================

// Ingest parses a raw punch log, keeps the requested month and stores the
// merged punch lists.
// POST /api/ingest
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Month < 1 || req.Month > 12 {
		writeError(w, http.StatusBadRequest, "Month must be 1-12", nil)
		return
	}

	all := ingest.ExtractPunches(req.Text)
	month := ingest.FilterMonth(all, h.year(), time.Month(req.Month), h.MergeThreshold)

	resp := IngestResponse{Days: []IngestDayDTO{}}
	dates := sortedDates(month)
	for _, d := range dates {
		if err := h.Store.SavePunches(r.Context(), d, month[d]); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to store punches", err)
			return
		}
		day := IngestDayDTO{Date: d.String()}
		for _, p := range month[d] {
			day.Punches = append(day.Punches, p.Format(clockLayout))
		}
		resp.Days = append(resp.Days, day)
		resp.Punches += len(month[d])
	}

	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// PROCESSING HANDLERS
// =============================================================================

// Process classifies a whole month from stored punches and persists the
// results. Reprocessing a month overwrites the previous results.
// POST /api/process
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Month < 1 || req.Month > 12 {
		writeError(w, http.StatusBadRequest, "Month must be 1-12", nil)
		return
	}
	month := time.Month(req.Month)

	from, to := monthBounds(h.year(), month)
	punches, err := h.Store.LoadPunches(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load punches", err)
		return
	}

	results, err := h.Processor.ProcessMonth(month, punches)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to process month", err)
		return
	}
	if err := h.Store.SaveResults(r.Context(), results); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store results", err)
		return
	}

	writeJSON(w, http.StatusOK, h.toProcessResponse(results))
}

// ListDays returns stored day results for ?from= and ?to= (both inclusive,
// defaulting to the calendar year).
// GET /api/days
func (h *Handler) ListDays(w http.ResponseWriter, r *http.Request) {
	from := attendance.NewDate(h.year(), time.January, 1)
	to := attendance.NewDate(h.year(), time.December, 31)

	var err error
	if q := r.URL.Query().Get("from"); q != "" {
		if from, err = attendance.ParseDate(q); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from date", err)
			return
		}
	}
	if q := r.URL.Query().Get("to"); q != "" {
		if to, err = attendance.ParseDate(q); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to date", err)
			return
		}
	}

	results, err := h.Store.LoadDayResults(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load day results", err)
		return
	}

	writeJSON(w, http.StatusOK, h.toProcessResponse(results))
}

// GetDay returns one stored day result.
// GET /api/days/{date}
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	d, err := attendance.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	results, err := h.Store.LoadDayResults(r.Context(), d, d)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load day result", err)
		return
	}
	result, ok := results[d]
	if !ok {
		writeError(w, http.StatusNotFound, "Day not processed", nil)
		return
	}

	writeJSON(w, http.StatusOK, toDayDTO(result))
}

// =============================================================================
// CALENDAR HANDLERS
// =============================================================================

// GetCalendarDay returns the day type and holiday name for a date.
// GET /api/calendar/{date}
func (h *Handler) GetCalendarDay(w http.ResponseWriter, r *http.Request) {
	d, err := attendance.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	dayType := h.Processor.Calendar.Resolve(d)
	if dayType == attendance.DayUnknown {
		writeError(w, http.StatusNotFound,
			fmt.Sprintf("Date outside calendar year %d", h.year()), nil)
		return
	}

	dto := CalendarDayDTO{Date: d.String(), Type: string(dayType)}
	if name, ok := h.Processor.Calendar.HolidayName(d); ok {
		dto.HolidayName = name
	}
	writeJSON(w, http.StatusOK, dto)
}

// OverrideCalendar reclassifies a date range as rest or work days.
// Holidays inside the range are left untouched.
// POST /api/calendar/override
func (h *Handler) OverrideCalendar(w http.ResponseWriter, r *http.Request) {
	var req OverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	from, err := attendance.ParseDate(req.From)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from date", err)
		return
	}
	to := from
	if req.To != "" {
		if to, err = attendance.ParseDate(req.To); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to date", err)
			return
		}
	}

	var kind attendance.DayType
	switch req.Kind {
	case string(attendance.DayRest):
		kind = attendance.DayRest
	case string(attendance.DayWork):
		kind = attendance.DayWork
	default:
		writeError(w, http.StatusBadRequest, "Kind must be restday or workday", nil)
		return
	}

	if err := h.Processor.Calendar.OverrideRange(from, to, kind); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, attendance.ErrDateOutOfRange) {
			status = http.StatusNotFound
		}
		writeError(w, status, "Failed to override calendar", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"from": from.String(), "to": to.String(), "kind": string(kind),
	})
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetReport returns the month report rows as JSON.
// GET /api/report/{month}
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	rows, results, ok := h.monthReport(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, ReportResponse{
		Rows:          toReportRowDTOs(rows),
		TotalOvertime: attendance.TotalOvertime(results).String(),
	})
}

// GetReportCSV streams the month report as a CSV download.
// GET /api/report/{month}/csv
func (h *Handler) GetReportCSV(w http.ResponseWriter, r *http.Request) {
	rows, _, ok := h.monthReport(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="attendance-%d-%s.csv"`, h.year(), chi.URLParam(r, "month")))
	if err := report.WriteCSV(w, rows); err != nil {
		// Headers are already out; nothing sensible left to send.
		return
	}
}

func (h *Handler) monthReport(w http.ResponseWriter, r *http.Request) ([]report.Row, map[attendance.Date]attendance.DayResult, bool) {
	var month int
	if _, err := fmt.Sscanf(chi.URLParam(r, "month"), "%d", &month); err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "Month must be 1-12", err)
		return nil, nil, false
	}

	from, to := monthBounds(h.year(), time.Month(month))
	results, err := h.Store.LoadDayResults(r.Context(), from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load day results", err)
		return nil, nil, false
	}
	if len(results) == 0 {
		writeError(w, http.StatusNotFound, "Month not processed", nil)
		return nil, nil, false
	}

	return report.BuildRows(h.Processor.Calendar, results), results, true
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) toProcessResponse(results map[attendance.Date]attendance.DayResult) ProcessResponse {
	resp := ProcessResponse{
		Days:          []DayDTO{},
		TotalOvertime: attendance.TotalOvertime(results).String(),
		Anomalies:     toAnomalyDTOs(attendance.CollectAnomalies(results)),
	}
	for _, d := range sortedResultDates(results) {
		resp.Days = append(resp.Days, toDayDTO(results[d]))
	}
	return resp
}

func monthBounds(year int, month time.Month) (attendance.Date, attendance.Date) {
	from := attendance.NewDate(year, month, 1)
	to := from.AddDays(1)
	for to.Month == month {
		to = to.AddDays(1)
	}
	return from, to.AddDays(-1)
}

func sortedDates(punches map[attendance.Date][]time.Time) []attendance.Date {
	dates := make([]attendance.Date, 0, len(punches))
	for d := range punches {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func sortedResultDates(results map[attendance.Date]attendance.DayResult) []attendance.Date {
	dates := make([]attendance.Date, 0, len(results))
	for d := range results {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
