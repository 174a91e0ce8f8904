/*
main.go - Batch processing CLI

PURPOSE:
  One-shot pipeline for a raw punch log: extract punches, keep one month,
  classify every day and write the month report. No server, no database.

COMMAND-LINE FLAGS:
  -file      Path to the raw punch log (required)
  -month     Month to process, 1-12 (required)
  -year      Calendar year (default: 2025)
  -out       Report CSV path (default: stdout)
  -json      Emit JSON instead of CSV
  -flexible  Flexible arrival mode (default: true)
  -merge     Merge threshold for double punches, in minutes (default: 3)

EXAMPLES:
  # CSV report for March to stdout
  ./process -file=punches.log -month=3

  # JSON report to a file
  ./process -file=punches.log -month=3 -json -out=march.json

SEE ALSO:
  - ingest: log parsing and punch merging
  - report: row building and CSV rendering
*/
package main

import (
	"encoding/json"
	"flag"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iceNo9/infoProcessClock-In/attendance"
	"github.com/iceNo9/infoProcessClock-In/ingest"
	"github.com/iceNo9/infoProcessClock-In/report"
)

func main() {
	file := flag.String("file", "", "path to the raw punch log")
	month := flag.Int("month", 0, "month to process (1-12)")
	year := flag.Int("year", 2025, "calendar year")
	out := flag.String("out", "", "report output path (default: stdout)")
	asJSON := flag.Bool("json", false, "emit JSON instead of CSV")
	flexible := flag.Bool("flexible", true, "flexible arrival mode")
	merge := flag.Int("merge", 3, "double-punch merge threshold in minutes")
	flag.Parse()

	if *file == "" {
		logrus.Fatal("-file is required")
	}
	if *month < 1 || *month > 12 {
		logrus.Fatal("-month must be 1-12")
	}

	content, err := os.ReadFile(*file)
	if err != nil {
		logrus.Fatalf("failed to read %s: %v", *file, err)
	}

	calendar, err := newCalendar(*year)
	if err != nil {
		logrus.Fatalf("failed to build calendar: %v", err)
	}
	workday := attendance.DefaultWorkdayConfig()
	workday.FlexibleEnabled = *flexible
	processor := attendance.NewProcessor(calendar, workday)

	punches := ingest.FilterMonth(ingest.ExtractPunches(string(content)),
		*year, time.Month(*month), time.Duration(*merge)*time.Minute)
	logrus.Infof("found punches on %d days of %d-%02d", len(punches), *year, *month)

	results, err := processor.ProcessMonth(time.Month(*month), punches)
	if err != nil {
		logrus.Fatalf("failed to process month: %v", err)
	}

	for _, a := range attendance.CollectAnomalies(results) {
		logrus.Warnf("anomaly: %s", a)
	}
	logrus.Infof("total overtime: %s hours", attendance.TotalOvertime(results))

	rows := report.BuildRows(calendar, results)
	if err := writeReport(*out, rows, *asJSON); err != nil {
		logrus.Fatalf("failed to write report: %v", err)
	}
}

func writeReport(path string, rows []report.Row, asJSON bool) error {
	var w io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	return report.WriteCSV(w, rows)
}

func newCalendar(year int) (*attendance.Calendar, error) {
	if year == 2025 {
		return attendance.NewYear2025Calendar()
	}
	logrus.Warnf("no holiday table for %d, using weekday/weekend rules only", year)
	return attendance.NewCalendar(year, nil, nil)
}
