package logbook

import (
	"strings"
	"time"

	"github.com/mvessman/tracklog/internal/timefmt"
)

// delimiter separates the timestamp, kind and text fields of a log line.
// Text is written verbatim, so a text containing this sequence will
// mis-split on re-parse. Known format limitation.
const delimiter = " - "

// HumanLine renders an entry in the on-disk line format:
// "<local timestamp> - <KIND> - <text>".
func HumanLine(e Entry) string {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return timefmt.FormatLocal(ts) + delimiter + e.Kind.String() + delimiter + e.Text
}

// ParseLine reconstructs an Entry from one log line. It never fails:
// malformed or historical lines degrade to lower-fidelity entries
// instead of being rejected.
//
//   - Empty lines are skipped (ok=false).
//   - No " - " at all: the whole line becomes Text, kind LOG, timestamp
//     now (marked inferred).
//   - One " - ": everything before it is parsed as the timestamp, kind
//     defaults to LOG, the remainder is Text.
//   - Two or more: timestamp, kind and text split on the first two
//     occurrences; any further occurrences stay inside Text.
//
// An unparseable timestamp falls back to now and sets TimestampInferred.
func ParseLine(line string) (e Entry, ok bool) {
	if line == "" {
		return Entry{}, false
	}

	first := strings.Index(line, delimiter)
	if first < 0 {
		return Entry{
			Timestamp:         time.Now(),
			Kind:              KindLog,
			Text:              line,
			TimestampInferred: true,
		}, true
	}

	ts, parsed := timefmt.ParseLocal(line[:first])
	e = Entry{Timestamp: ts, TimestampInferred: !parsed}

	rest := line[first+len(delimiter):]
	second := strings.Index(rest, delimiter)
	if second < 0 {
		e.Kind = KindLog
		e.Text = rest
		return e, true
	}

	e.Kind = Kind(rest[:second])
	e.Text = rest[second+len(delimiter):]
	return e, true
}
