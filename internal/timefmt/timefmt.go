// Package timefmt converts instants to and from the two textual forms
// used by the log files: a local human-readable form and an ISO UTC form.
package timefmt

import "time"

const (
	// LocalLayout is the human-readable form written into log lines.
	LocalLayout = "2006-01-02 15:04:05"
	// ISOLayout is the UTC form used by the JSONL export projection.
	ISOLayout = "2006-01-02T15:04:05Z"
	// CompactLayout is used in snapshot filenames.
	CompactLayout = "20060102_150405"

	// NotAvailable is the sentinel rendered for a zero instant.
	NotAvailable = "(n/a)"
)

// FormatLocal renders t in the local timezone as "YYYY-MM-DD HH:MM:SS".
// A zero instant renders as the "(n/a)" sentinel.
func FormatLocal(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}
	return t.Local().Format(LocalLayout)
}

// FormatISOUTC renders t in UTC as "YYYY-MM-DDTHH:MM:SSZ".
// A zero instant renders as the empty string.
func FormatISOUTC(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(ISOLayout)
}

// FormatCompact renders t in the local timezone as "YYYYMMDD_HHMMSS".
func FormatCompact(t time.Time) string {
	return t.Local().Format(CompactLayout)
}

// ParseLocal parses a "YYYY-MM-DD HH:MM:SS" string using local calendar
// rules. Parsing never fails: on a malformed string or invalid calendar
// fields it returns the current time with ok=false, so callers can tell
// a faithful parse from a fabricated fallback.
func ParseLocal(s string) (t time.Time, ok bool) {
	parsed, err := time.ParseInLocation(LocalLayout, s, time.Local)
	if err != nil {
		return time.Now(), false
	}
	return parsed, true
}

// SameLocalDay reports whether a and b fall on the same calendar day
// in the local timezone.
func SameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
