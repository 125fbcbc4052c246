package report

import (
	"reflect"
	"testing"
	"time"
)

// at builds a timestamp on the fixed test day.
func at(hour, minute, second int) time.Time {
	return time.Date(2024, time.March, 12, hour, minute, second, 0, time.UTC)
}

func entry(role Role, join, leave time.Time, minutes float64) *TimelineEntry {
	return &TimelineEntry{Roles: []Role{role}, Join: join, Leave: leave, Minutes: minutes}
}

// ============================================================================
// Reconcile Tests
// ============================================================================

func TestReconcile_MergeTolerance(t *testing.T) {
	tests := []struct {
		name     string
		gap      time.Duration
		wantLen  int
		wantTag  string
		wantMins float64
	}{
		{
			name:     "59 second gap merges",
			gap:      59 * time.Second,
			wantLen:  1,
			wantTag:  "attendee/attendee",
			wantMins: 70,
		},
		{
			name:     "zero gap merges",
			gap:      0,
			wantLen:  1,
			wantTag:  "attendee/attendee",
			wantMins: 70,
		},
		{
			name:    "exactly 60 seconds does not merge",
			gap:     60 * time.Second,
			wantLen: 2,
		},
		{
			name:    "negative gap does not merge",
			gap:     -30 * time.Second,
			wantLen: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leave := at(9, 40, 0)
			a := &Attendee{Timeline: []*TimelineEntry{
				entry(RoleAttendee, at(9, 0, 0), leave, 40),
				entry(RoleAttendee, leave.Add(tt.gap), at(10, 30, 0), 30),
			}}

			Reconcile(a)

			if len(a.Timeline) != tt.wantLen {
				t.Fatalf("timeline length = %d, want %d", len(a.Timeline), tt.wantLen)
			}
			if tt.wantLen == 1 {
				merged := a.Timeline[0]
				if merged.RoleTag() != tt.wantTag {
					t.Errorf("RoleTag() = %q, want %q", merged.RoleTag(), tt.wantTag)
				}
				if !merged.Leave.Equal(at(10, 30, 0)) {
					t.Errorf("Leave = %v, want extended to second entry", merged.Leave)
				}
				if merged.Minutes != tt.wantMins {
					t.Errorf("Minutes = %v, want %v", merged.Minutes, tt.wantMins)
				}
			}
		})
	}
}

func TestReconcile_GapJustUnderTolerance(t *testing.T) {
	// leave 09:00:00, next join 09:00:59 -> 59s gap, one merged entry.
	a := &Attendee{Timeline: []*TimelineEntry{
		entry(RoleAttendee, at(8, 30, 0), at(9, 0, 0), 30),
		entry(RolePanelist, at(9, 0, 59), at(9, 45, 0), 44),
	}}

	Reconcile(a)

	if len(a.Timeline) != 1 {
		t.Fatalf("timeline length = %d, want 1", len(a.Timeline))
	}
	if got := a.Timeline[0].RoleTag(); got != "attendee/panelist" {
		t.Errorf("RoleTag() = %q, want %q", got, "attendee/panelist")
	}
	if got := a.Timeline[0].Minutes; got != 74 {
		t.Errorf("Minutes = %v, want 74", got)
	}
}

func TestReconcile_ChainCollapsesAtSameIndex(t *testing.T) {
	// Three entries within tolerance of each other must collapse into
	// one, which requires re-examining the same index after a merge.
	a := &Attendee{Timeline: []*TimelineEntry{
		entry(RoleHost, at(9, 0, 0), at(9, 20, 0), 20),
		entry(RoleAttendee, at(9, 20, 30), at(9, 40, 0), 19),
		entry(RolePanelist, at(9, 40, 10), at(10, 0, 0), 20),
	}}

	Reconcile(a)

	if len(a.Timeline) != 1 {
		t.Fatalf("timeline length = %d, want 1", len(a.Timeline))
	}
	merged := a.Timeline[0]
	if got := merged.RoleTag(); got != "host/attendee/panelist" {
		t.Errorf("RoleTag() = %q, want %q", got, "host/attendee/panelist")
	}
	if !merged.Join.Equal(at(9, 0, 0)) || !merged.Leave.Equal(at(10, 0, 0)) {
		t.Errorf("span = %v..%v, want 09:00..10:00", merged.Join, merged.Leave)
	}
	if merged.Minutes != 59 {
		t.Errorf("Minutes = %v, want 59", merged.Minutes)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	a := &Attendee{Timeline: []*TimelineEntry{
		entry(RoleHost, at(9, 0, 0), at(9, 20, 0), 20),
		entry(RoleAttendee, at(9, 20, 30), at(9, 40, 0), 19),
		entry(RoleAttendee, at(10, 0, 0), at(10, 30, 0), 30),
	}}

	Reconcile(a)
	after := make([]TimelineEntry, len(a.Timeline))
	for i, e := range a.Timeline {
		after[i] = *e
	}

	Reconcile(a)

	if len(a.Timeline) != len(after) {
		t.Fatalf("second pass changed length: %d -> %d", len(after), len(a.Timeline))
	}
	for i, e := range a.Timeline {
		if !reflect.DeepEqual(*e, after[i]) {
			t.Errorf("second pass changed entry %d: %+v -> %+v", i, after[i], *e)
		}
	}
}

func TestReconcile_ShortTimelines(t *testing.T) {
	empty := &Attendee{}
	Reconcile(empty)
	if len(empty.Timeline) != 0 {
		t.Errorf("empty timeline changed: %v", empty.Timeline)
	}

	single := &Attendee{Timeline: []*TimelineEntry{
		entry(RoleAttendee, at(9, 0, 0), at(10, 0, 0), 60),
	}}
	Reconcile(single)
	if len(single.Timeline) != 1 {
		t.Errorf("single-entry timeline changed: %v", single.Timeline)
	}
}
