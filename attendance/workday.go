/*
workday.go - The workday classification state machine

PURPOSE:
  Classifies a chronologically sorted punch list for one workday into six
  labeled events plus an overtime duration. Each punch falls into exactly
  one of seven ordered time windows; the first matching window wins.

WINDOWS (boundaries use the current afternoon extension, which a flex-grace
arrival earlier in the same scan may already have shifted):

  pre-shift        punch <= 08:30
  flex-grace       08:30 < punch <= 09:00   (only when flexible mode is on)
  morning core     punch < 12:10
  lunch break      12:10 <= punch <= 13:40  (ambiguous, accumulated)
  afternoon core   13:40 < punch < 18:00+ext
  overtime grace   18:00+ext <= punch < 18:45+ext
  overtime         punch >= 18:45+ext

LUNCH DISAMBIGUATION:
  Punches in the lunch window cannot be told apart as "end of morning" vs
  "start of afternoon" until a later punch arrives. The accumulated lunch
  punches are resolved at the first afternoon-core, grace or overtime punch.
  Outside the afternoon core, resolution only fills slots that are still
  unset; it never downgrades a status that an earlier window assigned.

FAILURE HANDLING:
  Anomalies (three or more lunch punches, a flex-grace punch while flexible
  mode is off, an unset slot despite four or more punches) are collected on
  the scan and surfaced with the record. They never abort the day.
*/
package attendance

import (
	"fmt"
	"time"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// WorkdayConfig holds the fixed shift schedule. All clock times are applied
// to the target date; durations shift the later boundaries.
type WorkdayConfig struct {
	AMStart ClockTime // morning shift begins
	AMEnd   ClockTime // morning shift ends
	PMStart ClockTime // afternoon shift begins
	PMEnd   ClockTime // afternoon shift ends
	Split   ClockTime // cutoff disambiguating a single lunch-window punch

	FlexGrace     time.Duration // allowed late-arrival window after AMStart
	OvertimeGrace time.Duration // leeway after PMEnd before overtime starts
	LunchBreak    time.Duration // rest buffer deducted before overtime begins

	// FlexibleEnabled toggles the flex-grace rule. When off, a punch in the
	// flex sub-window matches no window and is reported as an anomaly.
	FlexibleEnabled bool
}

// DefaultWorkdayConfig returns the single fixed AM/PM/overtime schedule.
func DefaultWorkdayConfig() WorkdayConfig {
	return WorkdayConfig{
		AMStart:         ClockTime{8, 30},
		AMEnd:           ClockTime{12, 10},
		PMStart:         ClockTime{13, 40},
		PMEnd:           ClockTime{18, 0},
		Split:           ClockTime{13, 0},
		FlexGrace:       30 * time.Minute,
		OvertimeGrace:   45 * time.Minute,
		LunchBreak:      30 * time.Minute,
		FlexibleEnabled: true,
	}
}

// =============================================================================
// SCAN STATE
// =============================================================================

// workdayScan is the explicit fold state carried across the punch sequence.
type workdayScan struct {
	cfg  WorkdayConfig
	date Date

	amStart time.Time
	amEnd   time.Time
	pmStart time.Time
	pmEnd   time.Time
	split   time.Time

	// extension shifts every boundary after PMEnd once a flex-grace arrival
	// has been observed.
	extension time.Duration

	// lunch accumulates punches inside [AMEnd, PMStart] until a later punch
	// resolves them.
	lunch []time.Time

	rec       *WorkdayRecord
	anomalies []Anomaly
}

// Classify runs the state machine over a chronologically sorted punch list
// and returns the day's record plus any anomalies. The caller guarantees
// ordering; punches are never re-sorted here.
func (cfg WorkdayConfig) Classify(date Date, punches []time.Time) (*WorkdayRecord, []Anomaly) {
	s := &workdayScan{
		cfg:     cfg,
		date:    date,
		amStart: cfg.AMStart.On(date),
		amEnd:   cfg.AMEnd.On(date),
		pmStart: cfg.PMStart.On(date),
		pmEnd:   cfg.PMEnd.On(date),
		split:   cfg.Split.On(date),
		rec:     &WorkdayRecord{Date: date},
	}

	for i, punch := range punches {
		s.apply(i, punch)
	}
	s.finish(len(punches))

	return s.rec, s.anomalies
}

func (s *workdayScan) apply(i int, punch time.Time) {
	switch {
	case !punch.After(s.amStart):
		// Pre-shift arrival.
		if !s.rec.MorningIn.IsSet() {
			s.rec.MorningIn = newSlot(StatusNormal, punch)
		}

	case !punch.After(s.amStart.Add(s.cfg.FlexGrace)):
		if !s.cfg.FlexibleEnabled {
			s.report(i, AnomalyFlexDisabled, fmt.Sprintf(
				"punch %s in flex window while flexible mode is off", punch.Format("15:04:05")))
			return
		}
		// Flex-grace arrival shifts every later boundary by the same amount.
		if !s.rec.MorningIn.IsSet() {
			s.rec.MorningIn = newSlot(StatusNormal, punch)
			s.extension = punch.Sub(s.amStart)
		}

	case punch.Before(s.amEnd):
		// Morning core: first punch is a late arrival, any further punch is
		// an early leave (last one wins).
		if !s.rec.MorningIn.IsSet() {
			s.rec.MorningIn = newSlot(StatusLate, punch)
		} else {
			s.rec.MorningOut = newSlot(StatusEarlyLeave, punch)
		}

	case !punch.After(s.pmStart):
		// Lunch window: ambiguous until a later punch resolves it.
		if !s.rec.MorningIn.IsSet() {
			s.rec.MorningIn = missingSlot()
		}
		s.lunch = append(s.lunch, punch)

	case punch.Before(s.pmEnd.Add(s.extension)):
		s.afternoonCore(i, punch)

	case punch.Before(s.pmEnd.Add(s.extension + s.cfg.OvertimeGrace)):
		// Departure inside the post-shift grace: a normal afternoon-out.
		s.rec.AfternoonOut = newSlot(StatusNormal, punch)
		if !s.rec.MorningOut.IsSet() || !s.rec.AfternoonIn.IsSet() {
			s.resolveLunch(i)
		}

	default:
		s.overtime(i, punch)
	}
}

// afternoonCore handles a punch between PMStart and the (extended) PMEnd.
// Unlike the later windows, a single before-split lunch punch makes THIS
// punch the late afternoon arrival rather than the early departure.
func (s *workdayScan) afternoonCore(i int, punch time.Time) {
	if s.rec.MorningOut.IsSet() && s.rec.AfternoonIn.IsSet() {
		s.rec.AfternoonOut = newSlot(StatusEarlyLeave, punch) // last one wins
		return
	}

	switch len(s.lunch) {
	case 2:
		s.fill(&s.rec.MorningOut, newSlot(StatusNormal, s.lunch[0]))
		s.fill(&s.rec.AfternoonIn, newSlot(StatusNormal, s.lunch[1]))
		s.rec.AfternoonOut = newSlot(StatusEarlyLeave, punch)
	case 1:
		if s.lunch[0].Before(s.split) {
			// The lone lunch punch ended the morning; this punch starts the
			// afternoon, late. No departure is recorded yet.
			s.fill(&s.rec.MorningOut, newSlot(StatusNormal, s.lunch[0]))
			s.fill(&s.rec.AfternoonIn, newSlot(StatusLate, punch))
		} else {
			s.fill(&s.rec.MorningOut, missingSlot())
			s.fill(&s.rec.AfternoonIn, newSlot(StatusNormal, s.lunch[0]))
			s.rec.AfternoonOut = newSlot(StatusEarlyLeave, punch)
		}
	case 0:
		s.fill(&s.rec.MorningOut, missingSlot())
		s.fill(&s.rec.AfternoonIn, missingSlot())
		s.rec.AfternoonOut = newSlot(StatusEarlyLeave, punch)
	default:
		s.reportLunchOverflow(i)
	}
}

// overtime handles a punch at or beyond PMEnd+ext+OvertimeGrace. The
// overtime clock starts after the rest buffer, not at the punch boundary.
func (s *workdayScan) overtime(i int, punch time.Time) {
	otStart := s.pmEnd.Add(s.extension + s.cfg.LunchBreak)

	s.rec.OvertimeIn = newSlot(StatusNormal, otStart)
	s.rec.OvertimeOut = newSlot(StatusNormal, punch)
	s.rec.AfternoonOut = newSlot(StatusOvertime, punch)

	// punch >= otStart by window ordering, so the span is never negative.
	hours, _ := RoundedHours(otStart, punch)
	s.rec.OvertimeHours = hours

	if !s.rec.MorningOut.IsSet() || !s.rec.AfternoonIn.IsSet() {
		s.resolveLunch(i)
	}
}

// resolveLunch applies the generic lunch disambiguation used by the grace
// and overtime windows. Only unset slots are filled.
func (s *workdayScan) resolveLunch(i int) {
	switch len(s.lunch) {
	case 2:
		s.fill(&s.rec.MorningOut, newSlot(StatusNormal, s.lunch[0]))
		s.fill(&s.rec.AfternoonIn, newSlot(StatusNormal, s.lunch[1]))
	case 1:
		if s.lunch[0].Before(s.split) {
			s.fill(&s.rec.MorningOut, newSlot(StatusNormal, s.lunch[0]))
			s.fill(&s.rec.AfternoonIn, missingSlot())
		} else {
			s.fill(&s.rec.MorningOut, missingSlot())
			s.fill(&s.rec.AfternoonIn, newSlot(StatusNormal, s.lunch[0]))
		}
	case 0:
		s.fill(&s.rec.MorningOut, missingSlot())
		s.fill(&s.rec.AfternoonIn, missingSlot())
	default:
		s.reportLunchOverflow(i)
	}
}

// finish applies the end-of-scan fixups.
func (s *workdayScan) finish(punchCount int) {
	if punchCount < 4 {
		// Too few punches to have covered the schedule: every undetermined
		// core slot is a missing punch.
		s.fill(&s.rec.MorningIn, missingSlot())
		s.fill(&s.rec.MorningOut, missingSlot())
		s.fill(&s.rec.AfternoonIn, missingSlot())
		s.fill(&s.rec.AfternoonOut, missingSlot())
		return
	}

	// Enough punches, yet a slot stayed unset: the punches clustered in a
	// subset of windows. Flag instead of emitting a silently ambiguous record.
	names := [4]string{"morning_in", "morning_out", "afternoon_in", "afternoon_out"}
	for idx, slot := range s.rec.Slots() {
		if !slot.IsSet() {
			s.report(-1, AnomalySlotUnfilled, fmt.Sprintf(
				"%s unset despite %d punches", names[idx], punchCount))
		}
	}
}

// fill assigns the slot only if it is still unset.
func (s *workdayScan) fill(slot *Slot, value Slot) {
	if !slot.IsSet() {
		*slot = value
	}
}

func (s *workdayScan) report(punchIndex int, code AnomalyCode, msg string) {
	s.anomalies = append(s.anomalies, Anomaly{
		Date:       s.date,
		PunchIndex: punchIndex,
		Code:       code,
		Message:    msg,
	})
}

func (s *workdayScan) reportLunchOverflow(i int) {
	s.report(i, AnomalyLunchOverflow, fmt.Sprintf(
		"%d punches in the lunch window, refusing to guess", len(s.lunch)))
}
