package report

import (
	"strings"
	"testing"
)

// ============================================================================
// ParseSeed Tests
// ============================================================================

func TestParseSeed(t *testing.T) {
	doc := `
settings:
  meeting_title: Ethics in Engineering
  max_credit: 1.5
  grace_minutes: 5
  scheduled_start: "2024-03-12 09:00:00"
attendees:
  casey@example.com:
    first_name: Casey
    last_name: Bloom
    certificate_id: "7001"
    credit: 2
  pat@example.com:
    first_name: Pat
    last_name: Avery
`

	seed, err := ParseSeed([]byte(doc))
	if err != nil {
		t.Fatalf("ParseSeed() error = %v", err)
	}

	if seed.Settings.MeetingTitle == nil || *seed.Settings.MeetingTitle != "Ethics in Engineering" {
		t.Errorf("meeting_title = %v", seed.Settings.MeetingTitle)
	}
	if seed.Settings.MaxCredit == nil || *seed.Settings.MaxCredit != 1.5 {
		t.Errorf("max_credit = %v", seed.Settings.MaxCredit)
	}
	if seed.Settings.ScheduledEnd != nil {
		t.Errorf("scheduled_end should be nil when absent, got %v", *seed.Settings.ScheduledEnd)
	}

	casey, ok := seed.Attendees["casey@example.com"]
	if !ok {
		t.Fatal("casey@example.com missing from seed attendees")
	}
	if casey.Credit == nil || *casey.Credit != 2 {
		t.Errorf("casey credit = %v, want preset 2", casey.Credit)
	}
	if pat := seed.Attendees["pat@example.com"]; pat.Credit != nil {
		t.Errorf("pat credit = %v, want nil (computed)", *pat.Credit)
	}
}

func TestParseSeed_UnknownKeyRejected(t *testing.T) {
	doc := `
settings:
  meeting_titel: typo
`
	if _, err := ParseSeed([]byte(doc)); err == nil {
		t.Fatal("ParseSeed() expected error for unknown key")
	}
}

func TestParseSeed_EmptyDocument(t *testing.T) {
	seed, err := ParseSeed(nil)
	if err != nil {
		t.Fatalf("ParseSeed(nil) error = %v", err)
	}
	if seed == nil || len(seed.Attendees) != 0 {
		t.Errorf("empty document should yield an empty seed, got %+v", seed)
	}
}

// ============================================================================
// Apply / SeedAttendees Tests
// ============================================================================

func TestSeedApply(t *testing.T) {
	title := "Override Title"
	grace := 5
	seed := &Seed{Settings: SeedSettings{
		MeetingTitle: &title,
		GraceMinutes: &grace,
	}}

	opts := seed.Apply(Options{
		MeetingTitle:   "Base Title",
		MaxCredit:      2,
		ScheduledStart: "2024-03-12 09:00:00",
	})

	if opts.MeetingTitle != "Override Title" {
		t.Errorf("MeetingTitle = %q, want seed override", opts.MeetingTitle)
	}
	if opts.GraceMinutes == nil || *opts.GraceMinutes != 5 {
		t.Errorf("GraceMinutes = %v, want 5", opts.GraceMinutes)
	}
	// Untouched by the seed.
	if opts.MaxCredit != 2 || opts.ScheduledStart != "2024-03-12 09:00:00" {
		t.Errorf("unrelated options changed: %+v", opts)
	}
}

func TestSeedAttendees(t *testing.T) {
	credit := 1.75
	seed := &Seed{Attendees: map[string]SeedAttendee{
		"  Casey@Example.COM ": {
			FirstName:     "Casey",
			LastName:      "Bloom",
			CertificateID: "7001",
			Credit:        &credit,
		},
		"pat@example.com": {FirstName: "Pat"},
	}}

	out := seed.SeedAttendees()

	casey, ok := out["casey@example.com"]
	if !ok {
		t.Fatalf("keys = %v, want folded casey@example.com", keysOf(out))
	}
	if !casey.CreditPreset || casey.Credit != 1.75 {
		t.Errorf("casey = %+v, want preset credit 1.75", casey)
	}
	if pat := out["pat@example.com"]; pat == nil || pat.CreditPreset {
		t.Errorf("pat = %+v, want non-preset record", pat)
	}
}

func keysOf(m map[string]*Attendee) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestSeedRoundTripStrings(t *testing.T) {
	// Timestamps in the seed stay free text until ResolveWindow parses
	// them, so odd spacing survives the decode untouched.
	doc := "settings:\n  scheduled_start: \"March 12, 2024 9:00 AM\"\n"
	seed, err := ParseSeed([]byte(doc))
	if err != nil {
		t.Fatalf("ParseSeed() error = %v", err)
	}
	if seed.Settings.ScheduledStart == nil ||
		!strings.Contains(*seed.Settings.ScheduledStart, "March 12") {
		t.Errorf("scheduled_start = %v", seed.Settings.ScheduledStart)
	}
}
