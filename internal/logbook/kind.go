package logbook

// Kind categorizes a log entry. It is an open string tag: files written
// by older versions may carry tags this build does not know, and those
// must survive a load/save cycle untouched.
type Kind string

// Known kinds.
const (
	KindHourly       Kind = "HOURLY"
	KindDailyStatus  Kind = "DAILY_STATUS"
	KindWeeklyStatus Kind = "WEEKLY_STATUS"
	KindBreakStart   Kind = "BREAK_START"
	KindBreakEnd     Kind = "BREAK_END"
	KindBreakRandom  Kind = "BREAK_RANDOM"
	KindBreakWarn    Kind = "BREAK_WARN"
	KindTask         Kind = "TASK"
	KindExport       Kind = "EXPORT"
	// KindLog is the fallback for lines whose kind field could not be
	// recovered during parsing.
	KindLog Kind = "LOG"
)

var knownKinds = map[Kind]bool{
	KindHourly:       true,
	KindDailyStatus:  true,
	KindWeeklyStatus: true,
	KindBreakStart:   true,
	KindBreakEnd:     true,
	KindBreakRandom:  true,
	KindBreakWarn:    true,
	KindTask:         true,
	KindExport:       true,
	KindLog:          true,
}

// Known reports whether k is one of the kinds this build recognizes.
// Unknown kinds are still valid entries; callers that switch on kind
// should treat them like KindLog.
func (k Kind) Known() bool { return knownKinds[k] }

// String returns the tag as written to disk.
func (k Kind) String() string { return string(k) }
