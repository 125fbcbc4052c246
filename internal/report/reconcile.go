package report

import "time"

// MergeTolerance is the largest disconnect treated as continuous
// presence. A reconnect or role promotion lands the same person back in
// the session within seconds; gaps at or past a full minute count as a
// real absence. The bound is half-open: 59s merges, 60s does not.
const MergeTolerance = 60 * time.Second

// Reconcile merges near-adjacent intervals of one attendee's timeline
// into continuous spans, in place.
//
// The timeline is scanned in discovery order, never sorted: the role
// tables arrive host, attendee, panelist, each internally chronological,
// and that order is what makes promotion chains adjacent. For each
// adjacent pair, if the gap between entry[i].Leave and entry[i+1].Join is
// non-negative and under MergeTolerance, entry[i+1] folds into entry[i]
// (roles append, leave extends, declared minutes sum) and the same index
// is re-examined so that three or more chained entries collapse into one.
// A gap of MergeTolerance or more, or a negative gap, advances the scan.
//
// Reconcile is idempotent: applying it to its own output changes nothing.
func Reconcile(a *Attendee) {
	entries := a.Timeline

	for i := 0; i < len(entries)-1; {
		cur, next := entries[i], entries[i+1]

		gap := next.Join.Sub(cur.Leave)
		if gap < 0 || gap >= MergeTolerance {
			i++
			continue
		}

		cur.Roles = append(cur.Roles, next.Roles...)
		cur.Leave = next.Leave
		cur.Minutes += next.Minutes
		entries = append(entries[:i+1], entries[i+2:]...)
	}

	a.Timeline = entries
}
