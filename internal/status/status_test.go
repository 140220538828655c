package status

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mvessman/tracklog/internal/export"
	"github.com/mvessman/tracklog/internal/logbook"
	"github.com/mvessman/tracklog/internal/paths"
)

func newRecorder(t *testing.T) (*Recorder, *logbook.Book, string) {
	t.Helper()
	dir := t.TempDir()
	res := paths.New(dir)
	book := logbook.New(res.In(logbook.FileName))
	return New(res, book, export.New(res, book)), book, dir
}

func TestDaily(t *testing.T) {
	r, book, dir := newRecorder(t)

	path := r.Daily("shipped the exporter")
	if path == "" {
		t.Fatal("no snapshot path returned")
	}
	if !strings.HasPrefix(filepath.Base(path), export.PrefixDailySaved+"_") {
		t.Errorf("snapshot name = %s", filepath.Base(path))
	}

	// Status file gets the full human log line, not just the text.
	data, err := os.ReadFile(filepath.Join(dir, DailyFileName))
	if err != nil {
		t.Fatalf("reading status file: %v", err)
	}
	line := strings.TrimSuffix(string(data), "\n")
	if !strings.Contains(line, " - DAILY_STATUS - shipped the exporter") {
		t.Errorf("status line = %q", line)
	}
	if strings.HasPrefix(line, "(n/a)") {
		t.Errorf("status line lacks timestamp: %q", line)
	}

	// Snapshot carries the bare text.
	snap, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if string(snap) != "shipped the exporter\n" {
		t.Errorf("snapshot content = %q", snap)
	}

	// One status entry plus one export entry in the log.
	entries := book.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Kind != logbook.KindDailyStatus || entries[0].Text != "shipped the exporter" {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].Kind != logbook.KindExport || !strings.Contains(entries[1].Text, path) {
		t.Errorf("entry 1 = %+v", entries[1])
	}
}

func TestWeekly(t *testing.T) {
	r, book, dir := newRecorder(t)

	path := r.Weekly("good week overall")
	if path == "" {
		t.Fatal("no snapshot path returned")
	}
	if !strings.HasPrefix(filepath.Base(path), export.PrefixWeeklySaved+"_") {
		t.Errorf("snapshot name = %s", filepath.Base(path))
	}

	data, err := os.ReadFile(filepath.Join(dir, WeeklyFileName))
	if err != nil {
		t.Fatalf("reading status file: %v", err)
	}
	if !strings.Contains(string(data), " - WEEKLY_STATUS - good week overall") {
		t.Errorf("status file = %q", data)
	}

	if book.Len() != 2 {
		t.Fatalf("len(entries) = %d, want 2", book.Len())
	}
	if book.Entries()[0].Kind != logbook.KindWeeklyStatus {
		t.Errorf("entry 0 kind = %s", book.Entries()[0].Kind)
	}
}

func TestDailyAppendsAcrossCalls(t *testing.T) {
	r, _, dir := newRecorder(t)

	r.Daily("first")
	r.Daily("second")

	data, err := os.ReadFile(filepath.Join(dir, DailyFileName))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("status file lines = %d, want 2:\n%s", len(lines), data)
	}
	if !strings.HasSuffix(lines[0], "first") || !strings.HasSuffix(lines[1], "second") {
		t.Errorf("lines = %q", lines)
	}
}

func TestStatusFileWriteFailureStillLogs(t *testing.T) {
	r, book, dir := newRecorder(t)

	// Occupy the status file name with a directory so the append fails.
	if err := os.Mkdir(filepath.Join(dir, DailyFileName), 0o700); err != nil {
		t.Fatal(err)
	}

	path := r.Daily("survives")
	if path == "" {
		t.Error("snapshot should still be written")
	}
	if book.Len() != 2 {
		t.Errorf("len(entries) = %d, want 2", book.Len())
	}
}
