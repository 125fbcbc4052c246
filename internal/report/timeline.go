package report

import (
	"fmt"
	"time"
)

// Column names common to the three role tables, case-folded.
const (
	colEmail     = "email"
	colAttended  = "attended"
	colJoin      = "join time"
	colLeave     = "leave time"
	colMinutes   = "time in session (minutes)"
	colFirstName = "first name"
	colLastName  = "last name"
)

// roleSections lists the role tables in the order they are scanned.
// Discovery order across these tables defines timeline order, which
// Reconcile depends on. Only the attendee table is mandatory: small
// sessions have no panelists, and the host sometimes only appears via a
// seed record.
var roleSections = []struct {
	section  string
	role     Role
	required bool
}{
	{"host details", RoleHost, false},
	{"attendee details", RoleAttendee, true},
	{"panelist details", RolePanelist, false},
}

// BuildTimelines scans the role tables into the attendee map, appending
// one TimelineEntry per accepted row. The map is typically pre-seeded
// from external records; for keys already present only empty fields are
// filled in, so seed data always wins. Returns the observed stream
// bounds: the earliest join and latest leave across every accepted row.
//
// Rows are skipped when the "attended" column holds a non-affirmative
// value or the email cell is empty. A table without an "attended" column
// (the host table omits it) treats every row as attended.
func BuildTimelines(set *SectionSet, attendees map[string]*Attendee, certColumn string) (observedStart, observedEnd time.Time, err error) {
	for _, rs := range roleSections {
		sec, ok := set.Section(rs.section)
		if !ok {
			if rs.required {
				return observedStart, observedEnd, fmt.Errorf("missing required section %q", rs.section)
			}
			continue
		}

		table, err := ParseTable(sec)
		if err != nil {
			return observedStart, observedEnd, err
		}
		if err := table.RequireColumns(colEmail, colJoin, colLeave); err != nil {
			return observedStart, observedEnd, err
		}

		hasAttended := table.HasColumn(colAttended)

		for i, row := range table.Rows {
			if hasAttended && !IsAffirmative(table.Cell(row, colAttended)) {
				continue
			}

			email := foldKey(table.Cell(row, colEmail))
			if email == "" {
				continue
			}

			join, err := ParseTimestamp(table.Cell(row, colJoin))
			if err != nil {
				return observedStart, observedEnd, fmt.Errorf("section %q row %d: join time: %w", table.Name, i+1, err)
			}
			leave, err := ParseTimestamp(table.Cell(row, colLeave))
			if err != nil {
				return observedStart, observedEnd, fmt.Errorf("section %q row %d: leave time: %w", table.Name, i+1, err)
			}
			minutes, err := ParseMinutes(table.Cell(row, colMinutes))
			if err != nil {
				return observedStart, observedEnd, fmt.Errorf("section %q row %d: %w", table.Name, i+1, err)
			}

			a, ok := attendees[email]
			if !ok {
				a = &Attendee{Email: email}
				attendees[email] = a
			}
			if a.FirstName == "" {
				a.FirstName = table.Cell(row, colFirstName)
			}
			if a.LastName == "" {
				a.LastName = table.Cell(row, colLastName)
			}
			if a.CertificateID == "" && certColumn != "" {
				a.CertificateID = table.Cell(row, certColumn)
			}

			a.Timeline = append(a.Timeline, &TimelineEntry{
				Roles:   []Role{rs.role},
				Join:    join,
				Leave:   leave,
				Minutes: minutes,
			})

			if observedStart.IsZero() || join.Before(observedStart) {
				observedStart = join
			}
			if leave.After(observedEnd) {
				observedEnd = leave
			}
		}
	}

	return observedStart, observedEnd, nil
}
