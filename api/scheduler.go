/*
scheduler.go - Automated reprocessing scheduler

PURPOSE:
  Periodically reclassifies the current month from stored punches, so
  results stay current after ingests without a manual process call.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Reprocesses only the month containing "today" in the calendar year
  - Skips months with no stored punches
  - Reprocessing is idempotent: results are upserted per date

CONFIGURATION:
  - CheckInterval: How often to reprocess (default: 1 hour)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewReprocessScheduler(handler)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: Process endpoint (manual reprocessing)
*/
package api

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iceNo9/infoProcessClock-In/attendance"
)

// ReprocessScheduler keeps the current month's results in sync with the
// stored punches.
type ReprocessScheduler struct {
	handler *Handler

	CheckInterval time.Duration
	Enabled       bool

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewReprocessScheduler creates a scheduler with default settings.
func NewReprocessScheduler(h *Handler) *ReprocessScheduler {
	return &ReprocessScheduler{
		handler:       h,
		CheckInterval: time.Hour,
		Enabled:       true,
	}
}

// Start launches the background goroutine. Safe to call once.
func (s *ReprocessScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running || !s.Enabled {
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})

	go s.run()
	logrus.Infof("reprocess scheduler started (interval: %s)", s.CheckInterval)
}

// Stop signals the goroutine and waits for it to exit.
func (s *ReprocessScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	done := s.doneCh
	s.mu.Unlock()

	<-done
	logrus.Info("reprocess scheduler stopped")
}

func (s *ReprocessScheduler) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			if err := s.ReprocessCurrentMonth(context.Background()); err != nil {
				logrus.Errorf("scheduled reprocess failed: %v", err)
			}
		}
	}
}

// ReprocessCurrentMonth reclassifies the month containing today, if today
// falls inside the calendar year and punches are stored for it.
func (s *ReprocessScheduler) ReprocessCurrentMonth(ctx context.Context) error {
	now := time.Now()
	if now.Year() != s.handler.year() {
		return nil
	}
	month := now.Month()

	from, to := monthBounds(s.handler.year(), month)
	punches, err := s.handler.Store.LoadPunches(ctx, from, to)
	if err != nil {
		return err
	}
	if len(punches) == 0 {
		return nil
	}

	results, err := s.handler.Processor.ProcessMonth(month, punches)
	if err != nil {
		return err
	}
	if err := s.handler.Store.SaveResults(ctx, results); err != nil {
		return err
	}

	logrus.Debugf("reprocessed %d-%02d: %d days, %s overtime hours",
		s.handler.year(), month, len(results), attendance.TotalOvertime(results))
	return nil
}
