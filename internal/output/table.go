package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mvessman/tracklog/internal/breaks"
	"github.com/mvessman/tracklog/internal/logbook"
	"github.com/mvessman/tracklog/internal/taskstore"
	"github.com/mvessman/tracklog/internal/timefmt"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)

	// Kind colors follow the roles of the original log panel palette:
	// hourly blue, daily status yellow, weekly status green, breaks red,
	// exports purple, tasks light gray.
	kindStyles = map[logbook.Kind]lipgloss.Style{
		logbook.KindHourly:       lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		logbook.KindDailyStatus:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		logbook.KindWeeklyStatus: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		logbook.KindBreakStart:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		logbook.KindBreakEnd:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		logbook.KindBreakRandom:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		logbook.KindBreakWarn:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		logbook.KindExport:       lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
		logbook.KindTask:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
	activeStyle = lipgloss.NewStyle()
	kindStyles = map[logbook.Kind]lipgloss.Style{}
}

// LogTable renders log entries as a formatted table, newest last.
func LogTable(w io.Writer, entries []logbook.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No log entries found.")
		return
	}

	const pad = 2
	kindW := len("KIND") + pad
	for _, e := range entries {
		if l := len(e.Kind.String()) + pad; l > kindW {
			kindW = l
		}
	}

	tsW := len(timefmt.LocalLayout) + pad
	header := fmt.Sprintf("%-*s %-*s %s", tsW, "TIMESTAMP", kindW, "KIND", "TEXT")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, e := range entries {
		ts := timefmt.FormatLocal(e.Timestamp)
		if e.TimestampInferred {
			ts = dimStyle.Render(ts + "?")
		}
		row := fmt.Sprintf("%s %s %s",
			padRight(ts, tsW),
			padRight(styledKind(e.Kind), kindW),
			e.Text)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskTree renders the task forest as an indented checklist. Parent
// links may be cyclic, so traversal goes through the store's guarded
// walk; tasks unreachable from any root (cycle members) are appended
// flat at the end so nothing is silently hidden.
func TaskTree(w io.Writer, store *taskstore.Store) {
	tasks := store.Tasks()
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	printed := make(map[int]bool, len(tasks))
	for _, root := range store.Roots() {
		store.Walk(root, func(idx, depth int) {
			printed[idx] = true
			fmt.Fprintln(w, taskLine(idx, tasks[idx], depth))
		})
	}
	for i, t := range tasks {
		if !printed[i] {
			fmt.Fprintln(w, taskLine(i, t, 0)+" "+dimStyle.Render("(unreachable: parent cycle)"))
		}
	}
}

func taskLine(idx int, t taskstore.Task, depth int) string {
	mark := "[ ]"
	if t.Done {
		mark = doneStyle.Render("[x]")
	}
	return fmt.Sprintf("%s%s %s %s", strings.Repeat("  ", depth), dimStyle.Render(fmt.Sprintf("#%d", idx)), mark, t.Name)
}

// BreakTable renders the break ledger as a formatted table, newest last.
func BreakTable(w io.Writer, entries []breaks.Break) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No breaks found.")
		return
	}

	const pad = 2
	typeW := len("TYPE") + pad
	for _, b := range entries {
		if l := len(b.Type) + pad; l > typeW {
			typeW = l
		}
	}

	tsW := len(timefmt.LocalLayout) + pad
	header := fmt.Sprintf("%-*s %-*s %-*s %s", typeW, "TYPE", tsW, "START", tsW, "END", "STATE")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, b := range entries {
		state := dimStyle.Render("ended")
		end := timefmt.FormatLocal(b.End)
		if b.Active() {
			state = activeStyle.Render("active")
			end = dimStyle.Render(end)
		}
		row := fmt.Sprintf("%-*s %-*s %s %s",
			typeW, b.Type,
			tsW, timefmt.FormatLocal(b.Start),
			padRight(end, tsW),
			state)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

// padRight pads s with spaces to the given visible width, accounting for
// ANSI escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// styledKind renders a kind with its palette color, or unstyled for
// unknown tags.
func styledKind(k logbook.Kind) string {
	if st, ok := kindStyles[k]; ok {
		return st.Render(k.String())
	}
	return k.String()
}
