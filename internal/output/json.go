package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mvessman/tracklog/internal/breaks"
	"github.com/mvessman/tracklog/internal/logbook"
	"github.com/mvessman/tracklog/internal/taskstore"
	"github.com/mvessman/tracklog/internal/timefmt"
)

// JSON writes data as indented JSON to the given writer.
func JSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorResponse is the JSON envelope for structured error output.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// JSONError writes a structured error to the given writer as JSON.
func JSONError(w io.Writer, code, msg string, details map[string]any) {
	resp := ErrorResponse{Error: msg, Code: code, Details: details}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp) // best-effort; if writer fails, nothing we can do
}

// LogEntryJSON is the JSON projection of a log entry.
type LogEntryJSON struct {
	Timestamp         string `json:"timestamp"`
	Kind              string `json:"kind"`
	Text              string `json:"text"`
	TimestampInferred bool   `json:"timestamp_inferred,omitempty"`
}

// LogEntriesJSON converts entries to their JSON projection
// (ISO-UTC timestamps).
func LogEntriesJSON(entries []logbook.Entry) []LogEntryJSON {
	out := make([]LogEntryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, LogEntryJSON{
			Timestamp:         timefmt.FormatISOUTC(e.Timestamp),
			Kind:              e.Kind.String(),
			Text:              e.Text,
			TimestampInferred: e.TimestampInferred,
		})
	}
	return out
}

// TaskJSON is the JSON projection of a task.
type TaskJSON struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Done   bool   `json:"done"`
	Parent *int   `json:"parent,omitempty"`
}

// TasksJSON converts the task arena to its JSON projection.
func TasksJSON(tasks []taskstore.Task) []TaskJSON {
	out := make([]TaskJSON, 0, len(tasks))
	for i, t := range tasks {
		tj := TaskJSON{Index: i, Name: t.Name, Done: t.Done}
		if t.HasParent() {
			p := t.Parent
			tj.Parent = &p
		}
		out = append(out, tj)
	}
	return out
}

// BreakJSON is the JSON projection of a break interval.
type BreakJSON struct {
	Type   string `json:"type"`
	Start  string `json:"start"`
	End    string `json:"end,omitempty"`
	Active bool   `json:"active"`
}

// BreaksJSON converts the ledger to its JSON projection.
func BreaksJSON(entries []breaks.Break) []BreakJSON {
	out := make([]BreakJSON, 0, len(entries))
	for _, b := range entries {
		out = append(out, BreakJSON{
			Type:   b.Type,
			Start:  timefmt.FormatISOUTC(b.Start),
			End:    timefmt.FormatISOUTC(b.End),
			Active: b.Active(),
		})
	}
	return out
}

// durationOrEmpty is a helper for break durations in compact output.
func durationOrEmpty(b breaks.Break) time.Duration {
	if b.Active() {
		return 0
	}
	return b.End.Sub(b.Start)
}
