package report

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Seed is the operator-supplied override document: a flat settings block
// mirroring the recognized configuration options, plus manually entered
// attendee records for people the export misses (hosts, speakers).
//
// Decoding is strict: an unrecognized key anywhere in the document is a
// configuration error, caught before any computation runs.
type Seed struct {
	Settings  SeedSettings            `yaml:"settings"`
	Attendees map[string]SeedAttendee `yaml:"attendees"`
}

// SeedSettings overrides session configuration. Pointer fields so that
// absent keys leave the underlying option untouched.
type SeedSettings struct {
	MeetingTitle   *string  `yaml:"meeting_title"`
	MaxCredit      *float64 `yaml:"max_credit"`
	GraceMinutes   *int     `yaml:"grace_minutes"`
	ScheduledStart *string  `yaml:"scheduled_start"`
	ScheduledEnd   *string  `yaml:"scheduled_end"`
	BusinessEnd    *string  `yaml:"business_end"`
	CertColumn     *string  `yaml:"certificate_column"`
	Output         *string  `yaml:"output"`
}

// SeedAttendee is a partial attendee record keyed by email in the seed
// document. A non-nil Credit presets the final value, bypassing
// computation.
type SeedAttendee struct {
	FirstName     string   `yaml:"first_name"`
	LastName      string   `yaml:"last_name"`
	CertificateID string   `yaml:"certificate_id"`
	Credit        *float64 `yaml:"credit"`
}

// ParseSeed decodes a seed document. Unknown keys are rejected.
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		if err == io.EOF {
			return &Seed{}, nil
		}
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	return &seed, nil
}

// Apply layers the seed's settings over opts and returns the result.
func (s *Seed) Apply(opts Options) Options {
	set := s.Settings
	if set.MeetingTitle != nil {
		opts.MeetingTitle = *set.MeetingTitle
	}
	if set.MaxCredit != nil {
		opts.MaxCredit = *set.MaxCredit
	}
	if set.GraceMinutes != nil {
		opts.GraceMinutes = set.GraceMinutes
	}
	if set.ScheduledStart != nil {
		opts.ScheduledStart = *set.ScheduledStart
	}
	if set.ScheduledEnd != nil {
		opts.ScheduledEnd = *set.ScheduledEnd
	}
	if set.BusinessEnd != nil {
		opts.BusinessEnd = *set.BusinessEnd
	}
	if set.CertColumn != nil {
		opts.CertColumn = *set.CertColumn
	}
	return opts
}

// SeedAttendees materializes the seed's attendee records into the map
// BuildTimelines expects, keyed by folded email.
func (s *Seed) SeedAttendees() map[string]*Attendee {
	out := make(map[string]*Attendee, len(s.Attendees))
	for email, sa := range s.Attendees {
		key := foldKey(email)
		if key == "" {
			continue
		}
		a := &Attendee{
			Email:         key,
			FirstName:     sa.FirstName,
			LastName:      sa.LastName,
			CertificateID: sa.CertificateID,
		}
		if sa.Credit != nil {
			a.Credit = *sa.Credit
			a.CreditPreset = true
		}
		out[key] = a
	}
	return out
}
