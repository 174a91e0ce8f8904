package attendance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var halfHour = decimal.New(5, -1) // 0.5

// RoundedHours converts the span between start and end into a half-hour
// quantized duration. The rounding is ceiling-biased with asymmetric
// thresholds, not symmetric half-up rounding:
//
//	remainder >= 45 min  -> next whole hour
//	remainder >= 15 min  -> half hour
//	remainder <  15 min  -> dropped
//
// Returns ErrEndBeforeStart when end precedes start.
func RoundedHours(start, end time.Time) (decimal.Decimal, error) {
	if end.Before(start) {
		return decimal.Zero, fmt.Errorf("span %s to %s: %w",
			start.Format("15:04:05"), end.Format("15:04:05"), ErrEndBeforeStart)
	}

	span := end.Sub(start)
	whole := span / time.Hour
	remainder := (span - whole*time.Hour).Minutes()

	hours := decimal.NewFromInt(int64(whole))
	switch {
	case remainder >= 45:
		return hours.Add(decimal.NewFromInt(1)), nil
	case remainder >= 15:
		return hours.Add(halfHour), nil
	default:
		return hours, nil
	}
}
