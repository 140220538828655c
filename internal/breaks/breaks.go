// Package breaks holds the in-memory ledger of break intervals.
// Breaks have no dedicated file format; their lifecycle is recorded
// through the activity log.
package breaks

import (
	"math/rand"
	"strings"
	"time"

	"github.com/mvessman/tracklog/internal/logbook"
	"github.com/mvessman/tracklog/internal/timefmt"
)

// Lifecycle message prefixes. Rehydrate parses them back out of loaded
// log entries, so the write and read sides must stay in sync.
const (
	msgStarted = "Started break: "
	msgEnded   = "Ended break: "
	msgRandom  = "Random break: "
)

// DefaultTypes is the built-in break type catalog. The ledger itself
// accepts any type string; the catalog is a UI convention.
var DefaultTypes = []string{"Coffee", "Bathroom", "Water", "Lunch", "Stretch"}

// Break is one break interval. A zero End means the break is active.
type Break struct {
	Type  string
	Start time.Time
	End   time.Time
}

// Active reports whether the break has not been ended yet.
func (b Break) Active() bool { return b.End.IsZero() }

// Ledger is the in-memory break collection. It assumes a single
// cooperative caller; it has no internal locking.
type Ledger struct {
	log     *logbook.Book
	rng     *rand.Rand
	types   []string
	entries []Break
}

// New returns a Ledger with the given break type catalog (nil for the
// default) that records its lifecycle into log. The random source is
// seeded from the clock; use Seed for reproducible synthetic breaks.
func New(log *logbook.Book, types []string) *Ledger {
	if len(types) == 0 {
		types = DefaultTypes
	}
	return &Ledger{
		log:   log,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // non-cryptographic by design
		types: types,
	}
}

// Seed reseeds the synthetic-break random source.
func (l *Ledger) Seed(seed int64) {
	l.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // non-cryptographic by design
}

// Start opens a new break of the given type. Uniqueness of active
// breaks per type is not enforced.
func (l *Ledger) Start(breakType string) Break {
	b := Break{Type: breakType, Start: time.Now()}
	l.entries = append(l.entries, b)
	l.log.Append(logbook.KindBreakStart, msgStarted+breakType)
	return b
}

// EndLatest closes the most recently started active break of the given
// type, returning the closed break. Ending a type with no active break
// is not an error: it leaves the ledger unchanged and records a
// BREAK_WARN entry instead.
func (l *Ledger) EndLatest(breakType string) (Break, bool) {
	if b := l.close(breakType, time.Now()); b != nil {
		l.log.Appendf(logbook.KindBreakEnd, msgEnded+"%s (start %s, end %s)",
			b.Type, timefmt.FormatLocal(b.Start), timefmt.FormatLocal(b.End))
		return *b, true
	}
	l.log.Append(logbook.KindBreakWarn, "Tried to end break but none active: "+breakType)
	return Break{}, false
}

// close ends the most recently started active break of the given type,
// or returns nil when none is active.
func (l *Ledger) close(breakType string, end time.Time) *Break {
	for i := len(l.entries) - 1; i >= 0; i-- {
		b := &l.entries[i]
		if b.Type == breakType && b.Active() {
			b.End = end
			return b
		}
	}
	return nil
}

// Rehydrate rebuilds the ledger from the lifecycle entries of a loaded
// log, so a new process sees breaks recorded by earlier invocations.
// Entries whose text does not carry a recognizable lifecycle message
// are skipped; BREAK_WARN entries never held interval data and are
// ignored.
func (l *Ledger) Rehydrate(entries []logbook.Entry) {
	l.entries = nil
	for _, e := range entries {
		switch e.Kind {
		case logbook.KindBreakStart:
			t, ok := strings.CutPrefix(e.Text, msgStarted)
			if !ok {
				continue
			}
			l.entries = append(l.entries, Break{Type: t, Start: e.Timestamp})
		case logbook.KindBreakEnd:
			rest, ok := strings.CutPrefix(e.Text, msgEnded)
			if !ok {
				continue
			}
			t := rest
			if i := strings.Index(rest, " (start "); i >= 0 {
				t = rest[:i]
			}
			l.close(t, e.Timestamp)
		case logbook.KindBreakRandom:
			rest, ok := strings.CutPrefix(e.Text, msgRandom)
			if !ok {
				continue
			}
			l.entries = append(l.entries, parseRandom(rest, e.Timestamp))
		}
	}
}

// parseRandom recovers a synthetic break from its log text
// "<type> (<start> - <end>)". Unparseable times degrade to the entry
// timestamp, so the break still comes back ended.
func parseRandom(rest string, fallback time.Time) Break {
	b := Break{Type: rest, Start: fallback, End: fallback}
	open := strings.LastIndex(rest, " (")
	if open < 0 || !strings.HasSuffix(rest, ")") {
		return b
	}
	b.Type = rest[:open]
	span := rest[open+2 : len(rest)-1]
	startText, endText, ok := strings.Cut(span, " - ")
	if !ok {
		return b
	}
	if t, ok := timefmt.ParseLocal(startText); ok {
		b.Start = t
	}
	if t, ok := timefmt.ParseLocal(endText); ok {
		b.End = t
	}
	return b
}

// AddRandom appends an already-ended synthetic break: a uniformly
// random type from the catalog with a 1-20 minute duration ending now.
// Used for demos and tests.
func (l *Ledger) AddRandom() Break {
	t := l.types[l.rng.Intn(len(l.types))]
	minutes := 1 + l.rng.Intn(20)
	now := time.Now()
	b := Break{Type: t, Start: now.Add(-time.Duration(minutes) * time.Minute), End: now}
	l.entries = append(l.entries, b)
	l.log.Appendf(logbook.KindBreakRandom, msgRandom+"%s (%s - %s)",
		b.Type, timefmt.FormatLocal(b.Start), timefmt.FormatLocal(b.End))
	return b
}

// Entries returns the ledger in append order.
func (l *Ledger) Entries() []Break { return l.entries }

// Len returns the number of ledger entries.
func (l *Ledger) Len() int { return len(l.entries) }

// Types returns the break type catalog.
func (l *Ledger) Types() []string { return l.types }

// HasType reports whether breakType is in the catalog.
func (l *Ledger) HasType(breakType string) bool {
	for _, t := range l.types {
		if t == breakType {
			return true
		}
	}
	return false
}

// Reset empties the in-memory ledger.
func (l *Ledger) Reset() { l.entries = nil }
