// Package logbook holds the ordered, append-only activity log and its
// flat-text persistence. A corrupted or partially written log file must
// never prevent the application from starting or from logging new data,
// so loading degrades per line instead of failing.
package logbook

import (
	"bufio"
	"fmt"
	"os"
	"time"
)

const fileMode = 0o600

// FileName is the logical name of the log file inside the data directory.
const FileName = "daily_logs.txt"

// Entry is one timestamped record in the activity log.
type Entry struct {
	Timestamp time.Time
	Kind      Kind
	Text      string

	// TimestampInferred is set when the stored timestamp could not be
	// parsed and was substituted with the load time. Not persisted.
	TimestampInferred bool
}

// Book is the in-memory log store backed by a single append-only file.
// It assumes a single cooperative caller; it has no internal locking.
type Book struct {
	path    string
	entries []Entry
}

// New returns a Book persisting to the given file path.
func New(path string) *Book {
	return &Book{path: path}
}

// Append records a new entry stamped with the current time and appends
// its serialized line to the log file. The file write is best-effort:
// a failed write never fails the caller, the in-memory entry stands
// regardless.
func (b *Book) Append(kind Kind, text string) Entry {
	e := Entry{Timestamp: time.Now(), Kind: kind, Text: text}
	b.entries = append(b.entries, e)
	_ = appendLine(b.path, HumanLine(e))
	return e
}

// Appendf is Append with fmt.Sprintf formatting of the text.
func (b *Book) Appendf(kind Kind, format string, args ...any) Entry {
	return b.Append(kind, fmt.Sprintf(format, args...))
}

// Load replaces the in-memory entries with the contents of the log
// file, parsed line by line. A missing file loads as empty. Individual
// lines never abort the load; they degrade per ParseLine.
func (b *Book) Load() error {
	b.entries = nil

	f, err := os.Open(b.path) //nolint:gosec // log path from trusted data dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if e, ok := ParseLine(scanner.Text()); ok {
			b.entries = append(b.entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading log file: %w", err)
	}
	return nil
}

// Entries returns the in-memory entries in file/append order.
func (b *Book) Entries() []Entry { return b.entries }

// Len returns the number of in-memory entries.
func (b *Book) Len() int { return len(b.entries) }

// Reset empties the in-memory log. The on-disk file is left untouched;
// deleting files is a separate, deliberate operation.
func (b *Book) Reset() { b.entries = nil }

// Path returns the log file path.
func (b *Book) Path() string { return b.path }

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode) //nolint:gosec // log path from trusted data dir
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(line + "\n")
	return err
}
