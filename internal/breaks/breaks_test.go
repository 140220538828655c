package breaks

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mvessman/tracklog/internal/logbook"
)

func newTestLedger(t *testing.T) (*Ledger, *logbook.Book) {
	t.Helper()
	book := logbook.New(filepath.Join(t.TempDir(), logbook.FileName))
	return New(book, nil), book
}

func TestStartAndEnd(t *testing.T) {
	l, book := newTestLedger(t)

	l.Start("Coffee")
	if l.Len() != 1 || !l.Entries()[0].Active() {
		t.Fatalf("expected one active break, got %+v", l.Entries())
	}

	b, ended := l.EndLatest("Coffee")
	if !ended {
		t.Fatal("EndLatest did not find the active break")
	}
	if b.Type != "Coffee" || b.Active() {
		t.Errorf("returned break = %+v", b)
	}
	if l.Entries()[0].Active() {
		t.Error("break still active after EndLatest")
	}

	kinds := loggedKinds(book)
	if len(kinds) != 2 || kinds[0] != logbook.KindBreakStart || kinds[1] != logbook.KindBreakEnd {
		t.Errorf("logged kinds = %v", kinds)
	}
}

func TestEndLatestPicksMostRecent(t *testing.T) {
	l, _ := newTestLedger(t)
	l.Start("Coffee")
	l.Start("Coffee")

	if _, ended := l.EndLatest("Coffee"); !ended {
		t.Fatal("no break ended")
	}
	if l.Entries()[0].Active() != true || l.Entries()[1].Active() != false {
		t.Errorf("wrong break ended: %+v", l.Entries())
	}
}

func TestEndLatestWithoutActiveBreak(t *testing.T) {
	l, book := newTestLedger(t)
	l.Start("Lunch")
	before := l.Len()

	if _, ended := l.EndLatest("Coffee"); ended {
		t.Error("EndLatest reported success with no active Coffee break")
	}
	if l.Len() != before {
		t.Errorf("ledger length changed: %d -> %d", before, l.Len())
	}

	var warns int
	for _, e := range book.Entries() {
		if e.Kind == logbook.KindBreakWarn {
			warns++
			if !strings.Contains(e.Text, "Coffee") {
				t.Errorf("warn text = %q", e.Text)
			}
		}
	}
	if warns != 1 {
		t.Errorf("BREAK_WARN entries = %d, want exactly 1", warns)
	}
}

func TestAddRandomSeeded(t *testing.T) {
	l1, _ := newTestLedger(t)
	l2, _ := newTestLedger(t)
	l1.Seed(42)
	l2.Seed(42)

	b1 := l1.AddRandom()
	b2 := l2.AddRandom()

	if b1.Type != b2.Type {
		t.Errorf("seeded types differ: %q vs %q", b1.Type, b2.Type)
	}
	if b1.End.Sub(b1.Start) != b2.End.Sub(b2.Start) {
		t.Errorf("seeded durations differ: %v vs %v", b1.End.Sub(b1.Start), b2.End.Sub(b2.Start))
	}
}

func TestAddRandomShape(t *testing.T) {
	l, book := newTestLedger(t)
	l.Seed(7)

	for i := 0; i < 50; i++ {
		b := l.AddRandom()
		if b.Active() {
			t.Fatal("synthetic break is active")
		}
		d := b.End.Sub(b.Start)
		if d < time.Minute || d > 20*time.Minute {
			t.Fatalf("duration %v outside 1-20 minutes", d)
		}
		if !l.HasType(b.Type) {
			t.Fatalf("type %q not from catalog", b.Type)
		}
	}

	for _, e := range book.Entries() {
		if e.Kind != logbook.KindBreakRandom {
			t.Fatalf("unexpected log kind %q", e.Kind)
		}
	}
}

func TestRehydrateAcrossProcesses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, logbook.FileName)

	first := New(logbook.New(path), nil)
	first.Start("Coffee")

	// A later invocation loads the log fresh and rebuilds the ledger.
	book := logbook.New(path)
	if err := book.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	second := New(book, nil)
	second.Rehydrate(book.Entries())

	if second.Len() != 1 || !second.Entries()[0].Active() {
		t.Fatalf("rehydrated ledger = %+v, want one active break", second.Entries())
	}
	b, ended := second.EndLatest("Coffee")
	if !ended {
		t.Fatal("break started by an earlier invocation could not be ended")
	}
	if b.Type != "Coffee" || b.Active() {
		t.Errorf("ended break = %+v", b)
	}
	for _, e := range book.Entries() {
		if e.Kind == logbook.KindBreakWarn {
			t.Errorf("spurious warn entry: %q", e.Text)
		}
	}
}

func TestRehydrateClosedAndRandomBreaks(t *testing.T) {
	l, book := newTestLedger(t)
	l.Start("Coffee")
	if _, ended := l.EndLatest("Coffee"); !ended {
		t.Fatal("no break ended")
	}
	l.Seed(3)
	want := l.AddRandom()
	// A failed end attempt must not come back as an interval.
	l.EndLatest("Lunch")

	reloaded := New(book, nil)
	reloaded.Rehydrate(book.Entries())

	entries := reloaded.Entries()
	if len(entries) != 2 {
		t.Fatalf("rehydrated %d breaks, want 2: %+v", len(entries), entries)
	}
	if entries[0].Type != "Coffee" || entries[0].Active() {
		t.Errorf("closed break came back as %+v", entries[0])
	}
	got := entries[1]
	if got.Type != want.Type {
		t.Errorf("random type = %q, want %q", got.Type, want.Type)
	}
	// Interval times survive to one-second precision through the text.
	if got.Start.Unix() != want.Start.Unix() || got.End.Unix() != want.End.Unix() {
		t.Errorf("random interval = %v-%v, want %v-%v", got.Start, got.End, want.Start, want.End)
	}
}

func TestRehydrateSkipsUnrelatedEntries(t *testing.T) {
	l, book := newTestLedger(t)
	book.Append(logbook.KindHourly, "not a break")
	book.Append(logbook.KindBreakStart, "hand-edited line with no prefix")

	l.Rehydrate(book.Entries())
	if l.Len() != 0 {
		t.Errorf("rehydrated %d breaks from unrelated entries: %+v", l.Len(), l.Entries())
	}
}

func loggedKinds(book *logbook.Book) []logbook.Kind {
	var kinds []logbook.Kind
	for _, e := range book.Entries() {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
