package cmd

import (
	"fmt"
	"os"

	"github.com/mvessman/tracklog/internal/breaks"
	"github.com/mvessman/tracklog/internal/config"
	"github.com/mvessman/tracklog/internal/export"
	"github.com/mvessman/tracklog/internal/filelock"
	"github.com/mvessman/tracklog/internal/logbook"
	"github.com/mvessman/tracklog/internal/paths"
	"github.com/mvessman/tracklog/internal/status"
	"github.com/mvessman/tracklog/internal/taskstore"
)

// lockFileName guards the single-writer assumption on the data directory.
const lockFileName = "tracklog.lock"

// app wires the stores together for one command invocation. All state
// is explicitly owned here and passed into the components that need it;
// nothing is ambient.
type app struct {
	cfg      *config.Config
	res      *paths.Resolver
	book     *logbook.Book
	tasks    *taskstore.Store
	ledger   *breaks.Ledger
	engine   *export.Engine
	recorder *status.Recorder
}

// openApp resolves the data directory, loads config and pre-populates
// every store from disk. Corrupted files degrade per line and never
// prevent opening; only real I/O errors surface as warnings.
func openApp() (*app, error) {
	dir := flagDir
	if dir == "" {
		dir = os.Getenv("TRACKLOG_DIR")
	}
	res := paths.New(dir)

	cfg, err := config.Load(res.Dir())
	if err != nil {
		return nil, err
	}

	book := logbook.New(res.In(logbook.FileName))
	if err := book.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	tasks := taskstore.New(res.In(taskstore.FileName), book)
	if err := tasks.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	engine := export.New(res, book)

	// The ledger has no file of its own; its intervals come back from
	// the lifecycle entries of the loaded log.
	ledger := breaks.New(book, cfg.BreakTypes)
	ledger.Rehydrate(book.Entries())

	return &app{
		cfg:      cfg,
		res:      res,
		book:     book,
		tasks:    tasks,
		ledger:   ledger,
		engine:   engine,
		recorder: status.New(res, book, engine),
	}, nil
}

// lock takes the advisory lock on the data directory for the duration
// of a mutating command. The returned unlock must be deferred.
func (a *app) lock() (func(), error) {
	unlock, err := filelock.Lock(a.res.In(lockFileName))
	if err != nil {
		return nil, fmt.Errorf("locking data directory: %w", err)
	}
	return func() {
		if err := unlock(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: releasing lock: %v\n", err)
		}
	}, nil
}
