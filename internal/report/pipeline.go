package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Report is the complete result of one pipeline run.
type Report struct {
	MeetingTitle string      `json:"meetingTitle"`
	GeneratedAt  time.Time   `json:"generatedAt,omitzero"`
	Window       Window      `json:"window"`
	Rows         []ReportRow `json:"rows"`
	Skips        []Skip      `json:"skips,omitempty"`
}

// csvHeader is the fixed column order of the written report.
var csvHeader = []string{
	"Certificate ID", "First Name", "Last Name", "Meeting",
	"Credit", "Date", "Minutes",
}

// Generate runs the full pipeline over an export blob: split, parse,
// build timelines (seeded from the seed document, if any), reconcile,
// compute credit, assemble. A nil seed means no overrides and no manual
// attendees.
//
// The attendee collection is created here and threaded through every
// stage explicitly; nothing in the pipeline touches shared state, so
// concurrent Generate calls are independent.
func Generate(blob []byte, seed *Seed, opts Options) (*Report, error) {
	if seed == nil {
		seed = &Seed{}
	}
	opts = seed.Apply(opts).withDefaults()

	window, err := opts.ResolveWindow()
	if err != nil {
		return nil, fmt.Errorf("resolve session window: %w", err)
	}

	sections, err := SplitSections(blob)
	if err != nil {
		return nil, fmt.Errorf("split export: %w", err)
	}

	attendees := seed.SeedAttendees()
	window.ObservedStart, window.ObservedEnd, err = BuildTimelines(sections, attendees, opts.CertColumn)
	if err != nil {
		return nil, fmt.Errorf("build timelines: %w", err)
	}

	for _, a := range attendees {
		Reconcile(a)
		ComputeCredit(a, window, opts.MaxCredit)
	}

	rows, skips := Assemble(attendees, window, opts.MeetingTitle)

	return &Report{
		MeetingTitle: opts.MeetingTitle,
		GeneratedAt:  sections.GeneratedAt,
		Window:       window,
		Rows:         rows,
		Skips:        skips,
	}, nil
}

// WriteCSV writes the report rows, header first, to w.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	for _, row := range r.Rows {
		record := []string{
			row.CertificateID,
			row.FirstName,
			row.LastName,
			row.MeetingTitle,
			strconv.FormatFloat(row.Credit, 'f', -1, 64),
			row.ActivityDate,
			row.Minutes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
