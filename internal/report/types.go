package report

import (
	"fmt"
	"strings"
	"time"
)

// Role identifies which export table an attendance interval came from.
type Role string

const (
	RoleHost     Role = "host"
	RoleAttendee Role = "attendee"
	RolePanelist Role = "panelist"
)

// TimelineEntry is one raw attendance interval: a join/leave pair plus the
// minutes the platform itself declared for the interval. Reconciliation
// merges entries in place; merged entries carry every role they absorbed.
type TimelineEntry struct {
	Roles   []Role
	Join    time.Time
	Leave   time.Time
	Minutes float64
}

// RoleTag returns the serialized role list, e.g. "attendee/panelist" for
// an interval that merged a promotion.
func (e *TimelineEntry) RoleTag() string {
	parts := make([]string, len(e.Roles))
	for i, r := range e.Roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, "/")
}

// Attendee is one person, keyed by email. Records originate from two
// sources merged by key: externally supplied seed records (highest trust)
// and rows discovered in the role tables. Seed data always wins on
// conflict; table scans only fill fields that are still empty.
type Attendee struct {
	Email         string
	FirstName     string
	LastName      string
	CertificateID string

	// Timeline holds intervals in discovery order across the role
	// tables, not sorted by time. Reconcile depends on that order.
	Timeline []*TimelineEntry

	// Credit and QualifyingMinutes are derived by ComputeCredit.
	// CreditPreset marks a seed-supplied credit that bypasses
	// computation entirely.
	Credit            float64
	CreditPreset      bool
	QualifyingMinutes float64
}

// Window holds the six process-scoped session instants. BusinessStart is
// always ScheduledStart plus the grace period; ScheduledEnd and
// BusinessEnd fall back as documented on Options.
type Window struct {
	ObservedStart  time.Time
	ObservedEnd    time.Time
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	BusinessStart  time.Time
	BusinessEnd    time.Time
}

// DefaultMaxCredit is the credit cap applied when none is configured.
const DefaultMaxCredit = 2

// DefaultGraceMinutes is the late-join grace applied when none is configured.
const DefaultGraceMinutes = 10

// DefaultCertColumn is the export column holding the certification id.
const DefaultCertColumn = "certification id"

// Options carries the resolved configuration the pipeline needs. Zero
// values for MaxCredit and CertColumn are replaced by the defaults
// above; ScheduledStart is required.
type Options struct {
	MeetingTitle string

	// MaxCredit is the maximum credit units awardable (cap and
	// full-span value).
	MaxCredit float64

	// GraceMinutes is added to the scheduled start to form the
	// business-start boundary. Nil applies DefaultGraceMinutes; an
	// explicit zero disables the grace period.
	GraceMinutes *int

	// ScheduledStart, ScheduledEnd, and BusinessEnd are free-text
	// timestamps accepted by ParseTimestamp. ScheduledEnd defaults to
	// ScheduledStart + MaxCredit hours; BusinessEnd defaults to
	// ScheduledEnd.
	ScheduledStart string
	ScheduledEnd   string
	BusinessEnd    string

	// CertColumn is the case-folded name of the export column holding
	// the attendee's certification id.
	CertColumn string
}

// withDefaults returns a copy with unset fields replaced by defaults.
func (o Options) withDefaults() Options {
	if o.MaxCredit <= 0 {
		o.MaxCredit = DefaultMaxCredit
	}
	if o.CertColumn == "" {
		o.CertColumn = DefaultCertColumn
	}
	return o
}

// ResolveWindow derives the scheduled and business boundaries from the
// configured timestamps. Observed instants are filled in later by
// BuildTimelines.
func (o Options) ResolveWindow() (Window, error) {
	var w Window

	if strings.TrimSpace(o.ScheduledStart) == "" {
		return w, fmt.Errorf("scheduled start is required")
	}

	start, err := ParseTimestamp(o.ScheduledStart)
	if err != nil {
		return w, fmt.Errorf("scheduled start: %w", err)
	}
	w.ScheduledStart = start

	if strings.TrimSpace(o.ScheduledEnd) != "" {
		end, err := ParseTimestamp(o.ScheduledEnd)
		if err != nil {
			return w, fmt.Errorf("scheduled end: %w", err)
		}
		w.ScheduledEnd = end
	} else {
		w.ScheduledEnd = start.Add(time.Duration(o.MaxCredit * float64(time.Hour)))
	}

	grace := DefaultGraceMinutes
	if o.GraceMinutes != nil {
		grace = *o.GraceMinutes
	}
	if grace < 0 {
		return w, fmt.Errorf("grace minutes must not be negative, got %d", grace)
	}
	w.BusinessStart = start.Add(time.Duration(grace) * time.Minute)

	if strings.TrimSpace(o.BusinessEnd) != "" {
		end, err := ParseTimestamp(o.BusinessEnd)
		if err != nil {
			return w, fmt.Errorf("business end: %w", err)
		}
		w.BusinessEnd = end
	} else {
		w.BusinessEnd = w.ScheduledEnd
	}

	return w, nil
}
