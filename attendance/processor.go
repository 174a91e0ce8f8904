/*
processor.go - Day routing and period aggregation

PURPOSE:
  The Processor dispatches a (date, punch list) pair to the workday or
  non-workday classifier based on the calendar's verdict, and walks whole
  months emitting the absence sentinel for punch-less expected workdays.

  Overtime totaling is an explicit aggregation over finalized results
  (TotalOvertime), not a running mutable counter: reprocessing a day can
  never double count, and parallel callers can reduce independently
  classified days themselves.
*/
package attendance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Processor routes dates to the appropriate classifier.
type Processor struct {
	Calendar *Calendar
	Workday  WorkdayConfig
}

func NewProcessor(cal *Calendar, cfg WorkdayConfig) *Processor {
	return &Processor{Calendar: cal, Workday: cfg}
}

// ProcessDay classifies one date. The punch list must be chronologically
// sorted and already deduplicated (see the ingest package).
// Dates outside the calendar's year return an OutOfRangeError.
func (p *Processor) ProcessDay(date Date, punches []time.Time) (DayResult, error) {
	switch p.Calendar.Resolve(date) {
	case DayWork:
		rec, anomalies := p.Workday.Classify(date, punches)
		return DayResult{Record: rec, Anomalies: anomalies}, nil

	case DayRest:
		rec, anomalies := ClassifyNonWorkday(date, DayRest, punches)
		return DayResult{Record: rec, Anomalies: anomalies}, nil

	case DayHoliday:
		rec, anomalies := ClassifyNonWorkday(date, DayHoliday, punches)
		return DayResult{Record: rec, Anomalies: anomalies}, nil

	default:
		return DayResult{}, &OutOfRangeError{Date: date, Year: p.Calendar.Year()}
	}
}

// ProcessMonth classifies every day of the given month in the calendar's
// year. Days with no punches yield the AbsentDay sentinel on workdays and a
// Normal non-workday record otherwise.
func (p *Processor) ProcessMonth(month time.Month, punches map[Date][]time.Time) (map[Date]DayResult, error) {
	results := make(map[Date]DayResult)

	for d := NewDate(p.Calendar.Year(), month, 1); d.Month == month; d = d.AddDays(1) {
		if day, ok := punches[d]; ok {
			result, err := p.ProcessDay(d, day)
			if err != nil {
				return nil, err
			}
			results[d] = result
			continue
		}

		switch p.Calendar.Resolve(d) {
		case DayWork:
			results[d] = DayResult{Record: AbsentDay{Date: d}}
		case DayRest:
			rec, _ := ClassifyNonWorkday(d, DayRest, nil)
			results[d] = DayResult{Record: rec}
		case DayHoliday:
			rec, _ := ClassifyNonWorkday(d, DayHoliday, nil)
			results[d] = DayResult{Record: rec}
		}
	}
	return results, nil
}

// TotalOvertime sums the overtime hours across finalized results.
func TotalOvertime(results map[Date]DayResult) decimal.Decimal {
	total := decimal.Zero
	for _, r := range results {
		if r.Record != nil {
			total = total.Add(r.Record.Overtime())
		}
	}
	return total
}

// CollectAnomalies returns every anomaly across the results, ordered by date
// then punch index.
func CollectAnomalies(results map[Date]DayResult) []Anomaly {
	var all []Anomaly
	for _, r := range results {
		all = append(all, r.Anomalies...)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Date != all[j].Date {
			return all[i].Date.Before(all[j].Date)
		}
		return all[i].PunchIndex < all[j].PunchIndex
	})
	return all
}
