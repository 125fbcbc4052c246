package report

import (
	"fmt"
	"strings"
	"time"
)

// reportGeneratedPrefix introduces the export-wide generation timestamp
// line, e.g. `Report Generated:,"April 3, 2024 10:15 AM"`.
const reportGeneratedPrefix = "report generated:"

// RawSection is one titled block of the export: the case-folded title and
// the raw lines that followed it, in order. Immutable once split.
type RawSection struct {
	Name  string
	Lines []string
}

// SectionSet is the result of splitting an export blob: sections by name
// plus the order in which their titles appeared.
type SectionSet struct {
	Order       []string
	Sections    map[string]*RawSection
	GeneratedAt time.Time
}

// SplitSections partitions a raw export blob into named sections.
//
// A line consisting of a single unquoted token followed by a trailing
// comma ("Attendee Details,") starts a new section; the token, case
// folded, names it. A "Report Generated:" line sets GeneratedAt and is
// discarded (a malformed timestamp there is a parse error). Every other
// non-blank line is appended to the active section. Lines appearing
// before any title are discarded: the export format always opens with a
// title, so a preamble carries no table data.
func SplitSections(blob []byte) (*SectionSet, error) {
	set := &SectionSet{Sections: make(map[string]*RawSection)}

	text := strings.TrimPrefix(string(blob), "\ufeff")

	var current *RawSection
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if trimmed := strings.TrimSpace(line); strings.HasPrefix(strings.ToLower(trimmed), reportGeneratedPrefix) {
			raw := trimmed[len(reportGeneratedPrefix):]
			raw = strings.Trim(strings.TrimPrefix(strings.TrimSpace(raw), ","), `", `)
			ts, err := ParseTimestamp(raw)
			if err != nil {
				return nil, fmt.Errorf("report generated line: %w", err)
			}
			set.GeneratedAt = ts
			continue
		}

		if name, ok := sectionTitle(line); ok {
			sec, exists := set.Sections[name]
			if !exists {
				sec = &RawSection{Name: name}
				set.Sections[name] = sec
				set.Order = append(set.Order, name)
			}
			current = sec
			continue
		}

		if current == nil {
			continue
		}
		current.Lines = append(current.Lines, line)
	}

	return set, nil
}

// Section returns the named section, folding the lookup key.
func (s *SectionSet) Section(name string) (*RawSection, bool) {
	sec, ok := s.Sections[foldKey(name)]
	return sec, ok
}

// sectionTitle reports whether a line is a section-title line and, if so,
// returns the folded section name. Titles are a single token with a
// trailing comma and nothing after it; the token may contain spaces but
// never a comma or a quote.
func sectionTitle(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasSuffix(trimmed, ",") {
		return "", false
	}
	token := trimmed[:len(trimmed)-1]
	if token == "" || strings.ContainsAny(token, `,"`) {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(token)), true
}
