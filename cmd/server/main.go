/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the attendance engine HTTP server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration from environment (.env supported)
  2. Build the year calendar and processor
  3. Initialize SQLite store
  4. Create API handler with dependencies
  5. Start server with graceful shutdown

CONFIGURATION (environment variables):
  ATTENDANCE_PORT           HTTP server port (default: 8080)
  ATTENDANCE_DB             SQLite database path (default: ./data/attendance.db)
                            Use ":memory:" for an in-memory database
  ATTENDANCE_YEAR           Calendar year (default: 2025)
  ATTENDANCE_FLEXIBLE       Flexible arrival mode (default: true)
  ATTENDANCE_MERGE_MINUTES  Ingest merge threshold (default: 3)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iceNo9/infoProcessClock-In/api"
	"github.com/iceNo9/infoProcessClock-In/attendance"
	"github.com/iceNo9/infoProcessClock-In/config"
	"github.com/iceNo9/infoProcessClock-In/store/sqlite"
)

func main() {
	cfg := config.GetServerConfig()

	calendar, err := newCalendar(cfg.Year)
	if err != nil {
		logrus.Fatalf("failed to build calendar: %v", err)
	}

	workday := attendance.DefaultWorkdayConfig()
	workday.FlexibleEnabled = cfg.Flexible
	processor := attendance.NewProcessor(calendar, workday)

	store, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		logrus.Fatalf("failed to initialize database: %v", err)
	}
	defer store.Close()

	handler := api.NewHandler(store, processor)
	handler.MergeThreshold = cfg.MergeThreshold
	router := api.NewRouter(handler)

	scheduler := api.NewReprocessScheduler(handler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("server starting on http://localhost:%s (year %d)", cfg.Port, cfg.Year)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Fatalf("server forced to shutdown: %v", err)
	}

	logrus.Info("server stopped")
}

// newCalendar builds the calendar for the configured year. Only 2025 ships
// with a holiday table; other years fall back to plain weekday/weekend rules.
func newCalendar(year int) (*attendance.Calendar, error) {
	if year == 2025 {
		return attendance.NewYear2025Calendar()
	}
	logrus.Warnf("no holiday table for %d, using weekday/weekend rules only", year)
	return attendance.NewCalendar(year, nil, nil)
}
