// Package status appends daily/weekly status notes to their dedicated
// files and mirrors them into the activity log and a snapshot export.
package status

import (
	"fmt"
	"os"

	"github.com/mvessman/tracklog/internal/export"
	"github.com/mvessman/tracklog/internal/logbook"
	"github.com/mvessman/tracklog/internal/paths"
)

const fileMode = 0o600

// Status file names inside the data directory.
const (
	DailyFileName  = "daily_status.txt"
	WeeklyFileName = "weekly_status.txt"
)

// Recorder persists status notes. Every effect is best-effort: a failed
// file write never prevents the in-memory log entry from being recorded.
type Recorder struct {
	res    *paths.Resolver
	book   *logbook.Book
	engine *export.Engine
}

// New returns a Recorder writing into the resolver's data directory.
func New(res *paths.Resolver, book *logbook.Book, engine *export.Engine) *Recorder {
	return &Recorder{res: res, book: book, engine: engine}
}

// Daily records a daily status note: appends a human log line to the
// daily status file, adds a DAILY_STATUS log entry, writes a snapshot
// export, and on snapshot success adds an EXPORT entry naming the
// snapshot path. Returns the snapshot path, empty if that write failed.
func (r *Recorder) Daily(text string) string {
	return r.record(text, DailyFileName, logbook.KindDailyStatus, export.PrefixDailySaved, "daily")
}

// Weekly records a weekly status note, symmetric to Daily.
func (r *Recorder) Weekly(text string) string {
	return r.record(text, WeeklyFileName, logbook.KindWeeklyStatus, export.PrefixWeeklySaved, "weekly")
}

func (r *Recorder) record(text, fileName string, kind logbook.Kind, prefix, label string) string {
	e := r.book.Append(kind, text)
	if err := appendLine(r.res.In(fileName), logbook.HumanLine(e)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not write %s: %v\n", fileName, err)
	}

	path, err := r.engine.Snapshot(prefix, text)
	if err != nil {
		return ""
	}
	r.book.Appendf(logbook.KindExport, "Exported %s status to %s", label, path)
	return path
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode) //nolint:gosec // status path from trusted data dir
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(line + "\n")
	return err
}
