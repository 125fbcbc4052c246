package report

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode"
)

// ReportRow is one line of the final report, field order fixed by the
// downstream certificate tooling.
type ReportRow struct {
	CertificateID string  `json:"certificateId"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	MeetingTitle  string  `json:"meetingTitle"`
	Credit        float64 `json:"credit"`
	ActivityDate  string  `json:"activityDate"` // MM/DD/YYYY, from the scheduled start
	Minutes       string  `json:"minutes"`      // qualifying minutes, three decimals
}

// Skip records an attendee excluded from the report and why. Skips are
// data-quality omissions, never fatal.
type Skip struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// Assemble orders the computed attendees and produces the final rows.
//
// Ordering is by last name ascending using ordinal (case-sensitive)
// comparison, with email as a tiebreaker so equal last names still order
// deterministically. Attendees whose certificate id contains no digit are
// excluded and logged; so are attendees that neither attended nor carry a
// preset credit.
func Assemble(attendees map[string]*Attendee, w Window, meetingTitle string) ([]ReportRow, []Skip) {
	ordered := make([]*Attendee, 0, len(attendees))
	for _, a := range attendees {
		ordered = append(ordered, a)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].LastName != ordered[j].LastName {
			return ordered[i].LastName < ordered[j].LastName
		}
		return ordered[i].Email < ordered[j].Email
	})

	activityDate := w.ScheduledStart.Format("01/02/2006")

	var rows []ReportRow
	var skips []Skip
	for _, a := range ordered {
		if len(a.Timeline) == 0 && !a.CreditPreset {
			skips = append(skips, Skip{Email: a.Email, Reason: "no attendance recorded"})
			slog.Warn("attendee skipped", "email", a.Email, "reason", "no attendance recorded")
			continue
		}

		certID, ok := NormalizeCertificateID(a.CertificateID)
		if !ok {
			skips = append(skips, Skip{Email: a.Email, Reason: "missing certificate id"})
			slog.Warn("attendee skipped", "email", a.Email, "reason", "missing certificate id")
			continue
		}

		rows = append(rows, ReportRow{
			CertificateID: certID,
			FirstName:     a.FirstName,
			LastName:      a.LastName,
			MeetingTitle:  meetingTitle,
			Credit:        a.Credit,
			ActivityDate:  activityDate,
			Minutes:       fmt.Sprintf("%.3f", a.QualifyingMinutes),
		})
	}

	return rows, skips
}

// NormalizeCertificateID validates and normalizes a raw certificate id.
//
// A usable id contains at least one digit. When the raw value carries a
// certification designation alongside the number ("CISSP #12345"), only
// the digits survive; a value that is already bare digits passes through
// unchanged.
func NormalizeCertificateID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)

	hasDigit := strings.ContainsFunc(raw, unicode.IsDigit)
	if !hasDigit {
		return "", false
	}

	if strings.ContainsFunc(raw, unicode.IsLetter) {
		var b strings.Builder
		for _, r := range raw {
			if unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
		return b.String(), true
	}

	return raw, true
}
