package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iceNo9/infoProcessClock-In/attendance"
	"github.com/iceNo9/infoProcessClock-In/store/sqlite"
)

// newCurrentYearHandler builds a handler whose calendar covers today, so the
// scheduler's current-month check passes regardless of when the test runs.
func newCurrentYearHandler(t *testing.T) *Handler {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cal, err := attendance.NewCalendar(time.Now().Year(), nil, nil)
	require.NoError(t, err)

	return NewHandler(store, attendance.NewProcessor(cal, attendance.DefaultWorkdayConfig()))
}

func TestReprocessCurrentMonth(t *testing.T) {
	// GIVEN stored punches in the current month
	h := newCurrentYearHandler(t)
	ctx := context.Background()

	now := time.Now()
	day := attendance.NewDate(now.Year(), now.Month(), 10)
	require.NoError(t, h.Store.SavePunches(ctx, day, []time.Time{
		day.At(8, 30), day.At(12, 10), day.At(13, 40), day.At(18, 0),
	}))

	// WHEN the scheduler reprocesses
	s := NewReprocessScheduler(h)
	require.NoError(t, s.ReprocessCurrentMonth(ctx))

	// THEN results exist for the whole month, including the punched day
	from, to := monthBounds(now.Year(), now.Month())
	results, err := h.Store.LoadDayResults(ctx, from, to)
	require.NoError(t, err)
	assert.NotEmpty(t, results)
	assert.Contains(t, results, day)
}

func TestReprocessSkipsEmptyMonth(t *testing.T) {
	h := newCurrentYearHandler(t)
	ctx := context.Background()

	s := NewReprocessScheduler(h)
	require.NoError(t, s.ReprocessCurrentMonth(ctx))

	now := time.Now()
	from, to := monthBounds(now.Year(), now.Month())
	results, err := h.Store.LoadDayResults(ctx, from, to)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSchedulerStartStop(t *testing.T) {
	h := newCurrentYearHandler(t)

	s := NewReprocessScheduler(h)
	s.CheckInterval = 10 * time.Millisecond
	s.Start()
	s.Start() // second start is a no-op
	time.Sleep(25 * time.Millisecond)
	s.Stop()
	s.Stop() // second stop is a no-op
}

func TestDisabledSchedulerDoesNotStart(t *testing.T) {
	h := newCurrentYearHandler(t)

	s := NewReprocessScheduler(h)
	s.Enabled = false
	s.Start()
	s.Stop() // must not block waiting for a goroutine that never ran
}
