package output

import (
	"fmt"
	"io"
	"os"

	"github.com/mvessman/tracklog/internal/breaks"
	"github.com/mvessman/tracklog/internal/logbook"
	"github.com/mvessman/tracklog/internal/taskstore"
	"github.com/mvessman/tracklog/internal/timefmt"
)

// LogCompact renders log entries one line per record, in the on-disk
// line format.
func LogCompact(w io.Writer, entries []logbook.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No log entries found.")
		return
	}
	for _, e := range entries {
		fmt.Fprintln(w, logbook.HumanLine(e))
	}
}

// TaskCompact renders tasks one line per record in arena order.
func TaskCompact(w io.Writer, tasks []taskstore.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}
	for i, t := range tasks {
		mark := " "
		if t.Done {
			mark = "x"
		}
		line := fmt.Sprintf("#%d [%s] %s", i, mark, t.Name)
		if t.HasParent() {
			line += fmt.Sprintf(" parent:#%d", t.Parent)
		}
		fmt.Fprintln(w, line)
	}
}

// BreakCompact renders breaks one line per record.
func BreakCompact(w io.Writer, entries []breaks.Break) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No breaks found.")
		return
	}
	for _, b := range entries {
		if b.Active() {
			fmt.Fprintf(w, "%s %s (active)\n", b.Type, timefmt.FormatLocal(b.Start))
			continue
		}
		fmt.Fprintf(w, "%s %s -> %s (%s)\n",
			b.Type, timefmt.FormatLocal(b.Start), timefmt.FormatLocal(b.End),
			durationOrEmpty(b))
	}
}
