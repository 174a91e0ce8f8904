/*
Package ingest turns raw clock-machine exports into per-date punch lists.

PURPOSE:
  Clock exports are loosely structured text with embedded timestamps. This
  package extracts every "YYYY-MM-DD HH:MM:SS" occurrence, groups punches
  by date, merges near-duplicates (people habitually badge twice), and
  filters to the requested month. The output satisfies the classifier's
  input contract: chronologically sorted, deduplicated punch lists.

MERGE RULE:
  Punches closer together than the threshold collapse to the LATER punch.
  The merge is transitive within a chain: a run of punches where each is
  within the threshold of the previous one collapses to the last.

SEE ALSO:
  - attendance: consumes the map this package produces
*/
package ingest

import (
	"regexp"
	"sort"
	"time"

	"github.com/iceNo9/infoProcessClock-In/attendance"
)

// DefaultMergeThreshold is the near-duplicate window applied when the
// caller does not choose one.
const DefaultMergeThreshold = 3 * time.Minute

var punchPattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2}) (\d{2}:\d{2}:\d{2})`)

// ExtractPunches scans raw export text and groups every embedded timestamp
// by its date. Timestamps that do not parse as real instants (e.g. a 25th
// hour matched by the pattern) are skipped. Each day's punches are sorted.
func ExtractPunches(content string) map[attendance.Date][]time.Time {
	punches := make(map[attendance.Date][]time.Time)

	for _, m := range punchPattern.FindAllStringSubmatch(content, -1) {
		t, err := time.Parse("2006-01-02 15:04:05", m[1]+" "+m[2])
		if err != nil {
			continue
		}
		d := attendance.DateOf(t)
		punches[d] = append(punches[d], t)
	}

	for d := range punches {
		day := punches[d]
		sort.Slice(day, func(i, j int) bool { return day[i].Before(day[j]) })
	}
	return punches
}

// MergeClose collapses punches closer together than threshold, keeping the
// later punch of each run. The input must be sorted; the result is too.
func MergeClose(punches []time.Time, threshold time.Duration) []time.Time {
	if len(punches) == 0 {
		return nil
	}

	merged := []time.Time{punches[0]}
	for _, next := range punches[1:] {
		last := merged[len(merged)-1]
		if next.Sub(last) <= threshold {
			merged[len(merged)-1] = next
		} else {
			merged = append(merged, next)
		}
	}
	return merged
}

// FilterMonth narrows the punch map to one year+month and applies the merge
// threshold to every remaining day.
func FilterMonth(punches map[attendance.Date][]time.Time, year int, month time.Month, threshold time.Duration) map[attendance.Date][]time.Time {
	filtered := make(map[attendance.Date][]time.Time)
	for d, day := range punches {
		if d.Year != year || d.Month != month {
			continue
		}
		filtered[d] = MergeClose(day, threshold)
	}
	return filtered
}
