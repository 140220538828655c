// Package export derives day- and week-scoped report files from the
// activity log and writes timestamped snapshot files.
package export

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mvessman/tracklog/internal/logbook"
	"github.com/mvessman/tracklog/internal/paths"
	"github.com/mvessman/tracklog/internal/timefmt"
)

const fileMode = 0o600

// weekWindow is the fixed export window; it is not calendar-aligned.
const weekWindow = 7 * 24 * time.Hour

// Section sentinels of the weekly export document.
const (
	JSONLSentinel = "=== HOURLY_ENTRIES_JSONL (one JSON object per line) ==="
	EndSentinel   = "=== END OF EXPORT ==="
)

// Snapshot prefixes used by the export commands.
const (
	PrefixHourlyToday  = "hourly_logs_today"
	PrefixWeeklyLogs   = "weekly_logs_export"
	PrefixDailySaved   = "daily_status_saved"
	PrefixWeeklySaved  = "weekly_status_saved"
	PrefixDailyExport  = "daily_status_export"
	PrefixWeeklyExport = "weekly_status_export"
)

// Engine reads the full in-memory log and produces export files in the
// data directory.
type Engine struct {
	res  *paths.Resolver
	book *logbook.Book
	now  func() time.Time
}

// New returns an Engine exporting the given book into the resolver's
// data directory.
func New(res *paths.Resolver, book *logbook.Book) *Engine {
	return &Engine{res: res, book: book, now: time.Now}
}

// SetClock overrides the engine's notion of now. Tests only.
func (e *Engine) SetClock(now func() time.Time) { e.now = now }

// Snapshot writes content to a new file named
// "<prefix>_<YYYYMMDD_HHMMSS>.txt" in the data directory and returns
// its path. Two snapshots within the same second collide and the last
// writer wins; calls spaced by a second always get distinct files.
func (e *Engine) Snapshot(prefix, content string) (string, error) {
	name := fmt.Sprintf("%s_%s.txt", prefix, timefmt.FormatCompact(e.now()))
	path := e.res.In(name)
	if err := os.WriteFile(path, []byte(content+"\n"), fileMode); err != nil {
		return "", fmt.Errorf("writing snapshot %s: %w", name, err)
	}
	return path, nil
}

// HourlyToday exports every HOURLY entry whose timestamp falls on the
// current local calendar day, one human log line each. When nothing
// matches (or the log is empty) it returns ("", nil) and writes no
// file; a non-nil error means the write itself failed.
func (e *Engine) HourlyToday() (string, error) {
	if e.book.Len() == 0 {
		return "", nil
	}

	now := e.now()
	var content strings.Builder
	for _, d := range e.book.Entries() {
		if d.Kind == logbook.KindHourly && timefmt.SameLocalDay(now, d.Timestamp) {
			content.WriteString(logbook.HumanLine(d))
			content.WriteByte('\n')
		}
	}
	if content.Len() == 0 {
		return "", nil
	}
	return e.Snapshot(PrefixHourlyToday, content.String())
}

// Weekly exports every entry from the last 7*24h as a three-section
// document: a human-readable section in original list order, a JSONL
// projection of the in-window HOURLY entries, and an end sentinel.
// Entries older than exactly the window are dropped. Returns ("", nil)
// when the log is empty.
func (e *Engine) Weekly() (string, error) {
	if e.book.Len() == 0 {
		return "", nil
	}

	now := e.now()
	cutoff := now.Add(-weekWindow)

	var human, jsonl strings.Builder
	human.WriteString("WEEKLY LOG EXPORT\n")
	human.WriteString("Generated: " + timefmt.FormatLocal(now) + "\n")
	human.WriteString("Range: last 7 days\n\n")

	for _, d := range e.book.Entries() {
		if d.Timestamp.Before(cutoff) {
			continue
		}
		human.WriteString(logbook.HumanLine(d))
		human.WriteByte('\n')
		if d.Kind == logbook.KindHourly {
			jsonl.WriteString(hourlyJSON(d))
			jsonl.WriteByte('\n')
		}
	}

	var content strings.Builder
	content.WriteString(human.String())
	content.WriteString("\n" + JSONLSentinel + "\n")
	content.WriteString(jsonl.String())
	content.WriteString("\n" + EndSentinel + "\n")

	return e.Snapshot(PrefixWeeklyLogs, content.String())
}

// hourlyJSON renders one HOURLY entry as a single-line JSON object with
// a fixed key order: {"type":"HOURLY","timestamp":"...","text":"..."}.
func hourlyJSON(d logbook.Entry) string {
	return `{"type":"HOURLY","timestamp":"` + escapeJSON(timefmt.FormatISOUTC(d.Timestamp)) +
		`","text":"` + escapeJSON(d.Text) + `"}`
}
