package report

// convert.go handles the messy cell-level reality of platform exports:
// several textual timestamp dialects, yes/no flags, and common CSV
// artifacts (BOM, Excel formula prefixes, stray quotes).

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order. The first three are the forms the
// webinar platform is known to emit; the rest are lenient fallbacks for
// operator-supplied configuration values.
var timestampLayouts = []string{
	"January 2, 2006 3:04 PM",
	"January 2, 2006 15:04:05",
	"2006-01-02 15:04:05",
	"Jan 2, 2006 3:04:05 PM",
	"Jan 2, 2006 3:04 PM",
	"January 2, 2006 3:04:05 PM",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseTimestamp parses a free-text calendar timestamp at whole-second
// resolution. Returns an error when no known layout matches.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// IsAffirmative reports whether a cell value marks a row as attended.
// Accepts the usual spellings: yes/y, true/t, 1.
func IsAffirmative(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "t", "1":
		return true
	default:
		return false
	}
}

// ParseMinutes parses a declared session-minutes cell. Empty cells count
// as zero; anything else must be numeric.
func ParseMinutes(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid minutes value %q", s)
	}
	return v, nil
}

// CleanCell removes common export artifacts from a cell value:
//   - surrounding whitespace
//   - Excel formula prefix (="...")
//   - surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.Trim(s, `"'`)
}

// foldKey normalizes a column name or email for map lookups.
func foldKey(s string) string {
	return strings.ToLower(CleanCell(s))
}
