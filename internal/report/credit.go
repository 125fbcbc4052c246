package report

import "math"

// roundingBias nudges the quarter-unit floor so that attendance a few
// minutes shy of a quarter boundary still earns it.
const roundingBias = 0.45

// ComputeCredit converts an attendee's reconciled timeline into a credit
// value and the qualifying minutes behind it, writing both onto the
// attendee. Attendees with a preset credit (seed records) or an empty
// timeline are left untouched.
//
// Each entry is classified against the business window:
//
//   - Spans the whole window (join ≤ business start, leave ≥ business
//     end): the attendee earns the full maxCredit outright; qualifying
//     minutes are the scheduled session length and no further entries
//     are considered.
//   - Present at business start, leaves early: accumulates
//     leave − scheduled start.
//   - Joins late, present through business end: the tally is REPLACED by
//     scheduled end − join. The replacement (rather than accumulation)
//     is asymmetric with the previous branch but reproduces the
//     long-standing behavior this report is reconciled against; see
//     DESIGN.md before changing it.
//   - Present at neither boundary: accumulates leave − join.
//
// The minute total converts to credit at quarter-unit granularity,
// floor(minutes/60·4 + bias)/4, then caps at maxCredit.
func ComputeCredit(a *Attendee, w Window, maxCredit float64) {
	if a.CreditPreset || len(a.Timeline) == 0 {
		return
	}

	var total float64
	for _, e := range a.Timeline {
		joinsBeforeStart := !e.Join.After(w.BusinessStart)
		staysThroughEnd := !e.Leave.Before(w.BusinessEnd)

		switch {
		case joinsBeforeStart && staysThroughEnd:
			a.Credit = maxCredit
			a.QualifyingMinutes = w.ScheduledEnd.Sub(w.ScheduledStart).Minutes()
			return
		case joinsBeforeStart:
			total += e.Leave.Sub(w.ScheduledStart).Minutes()
		case staysThroughEnd:
			total = w.ScheduledEnd.Sub(e.Join).Minutes()
		default:
			total += e.Leave.Sub(e.Join).Minutes()
		}
	}

	a.QualifyingMinutes = total
	a.Credit = creditFromMinutes(total, maxCredit)
}

// creditFromMinutes applies quarter-unit rounding and the configured cap.
func creditFromMinutes(minutes, maxCredit float64) float64 {
	credit := math.Floor(minutes/60*4+roundingBias) / 4
	if credit > maxCredit {
		credit = maxCredit
	}
	if credit < 0 {
		credit = 0
	}
	return credit
}
