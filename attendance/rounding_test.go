package attendance_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iceNo9/infoProcessClock-In/attendance"
)

func hours(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRoundedHours_Thresholds(t *testing.T) {
	// The 15/45 thresholds are asymmetric by design: 44 minutes round down
	// to the half hour below, 45 minutes round up to the full hour.
	base := time.Date(2025, time.March, 10, 18, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		span time.Duration
		want decimal.Decimal
	}{
		{"zero", 0, hours("0")},
		{"fourteen minutes dropped", 14 * time.Minute, hours("0")},
		{"fifteen minutes is half", 15 * time.Minute, hours("0.5")},
		{"fortyfour minutes is half", 44 * time.Minute, hours("0.5")},
		{"fortyfive minutes is one", 45 * time.Minute, hours("1")},
		{"one hour", time.Hour, hours("1")},
		{"ninety minutes", 90 * time.Minute, hours("1.5")},
		{"two hours fifty", 2*time.Hour + 50*time.Minute, hours("3")},
		{"eight hours", 8 * time.Hour, hours("8")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := attendance.RoundedHours(base, base.Add(tc.span))
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "span %v: want %v, got %v", tc.span, tc.want, got)
		})
	}
}

func TestRoundedHours_SecondsCountTowardMinutes(t *testing.T) {
	// 14m59s stays below the 15 minute threshold, 44m30s stays below 45.
	base := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	got, err := attendance.RoundedHours(base, base.Add(14*time.Minute+59*time.Second))
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = attendance.RoundedHours(base, base.Add(44*time.Minute+30*time.Second))
	require.NoError(t, err)
	assert.True(t, hours("0.5").Equal(got))
}

func TestRoundedHours_EndBeforeStart(t *testing.T) {
	base := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	_, err := attendance.RoundedHours(base, base.Add(-time.Minute))
	require.Error(t, err)
	assert.True(t, errors.Is(err, attendance.ErrEndBeforeStart))
	assert.True(t, attendance.IsConfiguration(err))
}

func TestRoundedHours_MonotonicInSpan(t *testing.T) {
	// Growing the span never shrinks the rounded result.
	base := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)

	prev := decimal.Zero
	for minutes := 0; minutes <= 10*60; minutes += 7 {
		got, err := attendance.RoundedHours(base, base.Add(time.Duration(minutes)*time.Minute))
		require.NoError(t, err)
		assert.False(t, got.LessThan(prev), "result decreased at %d minutes", minutes)
		prev = got
	}
}
