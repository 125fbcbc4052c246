package report

import (
	"strings"
	"testing"
)

// ============================================================================
// ResolveWindow Tests
// ============================================================================

func TestResolveWindow(t *testing.T) {
	intp := func(n int) *int { return &n }

	tests := []struct {
		name              string
		opts              Options
		wantBusinessStart string
		wantScheduledEnd  string
		wantBusinessEnd   string
		wantErr           string
	}{
		{
			name: "defaults derive end and grace boundaries",
			opts: Options{
				MaxCredit:      2,
				GraceMinutes:   intp(10),
				ScheduledStart: "2024-03-12 09:00:00",
			},
			wantBusinessStart: "09:10:00",
			wantScheduledEnd:  "11:00:00",
			wantBusinessEnd:   "11:00:00",
		},
		{
			name: "nil grace applies the default",
			opts: Options{
				MaxCredit:      2,
				ScheduledStart: "2024-03-12 09:00:00",
			},
			wantBusinessStart: "09:10:00",
			wantScheduledEnd:  "11:00:00",
			wantBusinessEnd:   "11:00:00",
		},
		{
			// Zero is a deliberate setting, not an absence: the
			// business window opens at the scheduled start.
			name: "explicit zero grace is honored",
			opts: Options{
				MaxCredit:      2,
				GraceMinutes:   intp(0),
				ScheduledStart: "2024-03-12 09:00:00",
			},
			wantBusinessStart: "09:00:00",
			wantScheduledEnd:  "11:00:00",
			wantBusinessEnd:   "11:00:00",
		},
		{
			name: "explicit ends override the derived ones",
			opts: Options{
				MaxCredit:      2,
				GraceMinutes:   intp(10),
				ScheduledStart: "2024-03-12 09:00:00",
				ScheduledEnd:   "2024-03-12 10:30:00",
				BusinessEnd:    "2024-03-12 10:15:00",
			},
			wantBusinessStart: "09:10:00",
			wantScheduledEnd:  "10:30:00",
			wantBusinessEnd:   "10:15:00",
		},
		{
			name: "negative grace rejected",
			opts: Options{
				MaxCredit:      2,
				GraceMinutes:   intp(-5),
				ScheduledStart: "2024-03-12 09:00:00",
			},
			wantErr: "grace minutes",
		},
		{
			name:    "missing scheduled start rejected",
			opts:    Options{MaxCredit: 2},
			wantErr: "scheduled start",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := tt.opts.ResolveWindow()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ResolveWindow() error = %v, want mention of %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveWindow() error = %v", err)
			}

			if got := w.BusinessStart.Format("15:04:05"); got != tt.wantBusinessStart {
				t.Errorf("BusinessStart = %s, want %s", got, tt.wantBusinessStart)
			}
			if got := w.ScheduledEnd.Format("15:04:05"); got != tt.wantScheduledEnd {
				t.Errorf("ScheduledEnd = %s, want %s", got, tt.wantScheduledEnd)
			}
			if got := w.BusinessEnd.Format("15:04:05"); got != tt.wantBusinessEnd {
				t.Errorf("BusinessEnd = %s, want %s", got, tt.wantBusinessEnd)
			}
		})
	}
}
