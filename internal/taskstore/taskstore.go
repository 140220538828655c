// Package taskstore holds the task forest and its flat-text persistence.
// Tasks live in a contiguous arena; parent links are indices into that
// arena, so list order is part of a task's identity. The data model does
// not guarantee acyclicity — every traversal must carry a guard.
package taskstore

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mvessman/tracklog/internal/logbook"
)

const fileMode = 0o600

// FileName is the logical name of the task file inside the data directory.
const FileName = "tasks.txt"

// NoParent marks a task without a parent.
const NoParent = -1

// Task is one node of the task forest.
type Task struct {
	Name   string
	Parent int // index into the same store, or NoParent
	Done   bool
}

// HasParent reports whether the task references a parent index.
func (t Task) HasParent() bool { return t.Parent != NoParent }

// Store is the in-memory task collection backed by a single file that
// is rewritten in full on every mutation.
type Store struct {
	path  string
	log   *logbook.Book
	tasks []Task
}

// New returns a Store persisting to path. Mutations are echoed into the
// given log book; log may be nil for loads that only read.
func New(path string, log *logbook.Book) *Store {
	return &Store{path: path, log: log}
}

// Add appends a task and persists the full collection. The parent index
// is stored as given; validation against the arena is the caller's
// concern. Returns the new task's index.
func (s *Store) Add(name string, parent int) (int, error) {
	s.tasks = append(s.tasks, Task{Name: name, Parent: parent})
	if err := s.Save(); err != nil {
		return len(s.tasks) - 1, err
	}
	if s.log != nil {
		s.log.Append(logbook.KindTask, "Added task: "+name)
	}
	return len(s.tasks) - 1, nil
}

// Toggle flips the done flag of the task at index i and persists.
func (s *Store) Toggle(i int) error {
	if i < 0 || i >= len(s.tasks) {
		return fmt.Errorf("task index %d out of range", i)
	}
	s.tasks[i].Done = !s.tasks[i].Done
	return s.Save()
}

// Save rewrites the task file from the in-memory collection.
// Line format per task at index i: "<i>: [<x| >] <name>[ (parent=<p>)]".
func (s *Store) Save() error {
	var buf strings.Builder
	for i, t := range s.tasks {
		mark := " "
		if t.Done {
			mark = "x"
		}
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString(": [")
		buf.WriteString(mark)
		buf.WriteString("] ")
		buf.WriteString(t.Name)
		if t.HasParent() {
			buf.WriteString(" (parent=")
			buf.WriteString(strconv.Itoa(t.Parent))
			buf.WriteString(")")
		}
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(buf.String()), fileMode); err != nil {
		return fmt.Errorf("writing task file: %w", err)
	}
	return nil
}

// Load replaces the in-memory collection with the contents of the task
// file. A missing file loads as empty. Per-field markers that fail to
// parse degrade to their defaults; a malformed line never aborts the
// load of subsequent lines.
func (s *Store) Load() error {
	s.tasks = nil

	f, err := os.Open(s.path) //nolint:gosec // task path from trusted data dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("opening task file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		s.tasks = append(s.tasks, parseLine(line))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading task file: %w", err)
	}
	return nil
}

// parseLine recovers a Task from one serialized line. Each marker is
// stripped independently; whatever cannot be recognized stays in the
// name rather than failing the line.
func parseLine(line string) Task {
	rest := line

	// Leading "<i>:" label. The index itself is positional and ignored.
	if colon := strings.Index(rest, ":"); colon >= 0 {
		rest = rest[colon+1:]
	}
	rest = strings.TrimLeft(rest, " \t")

	// "[x]" / "[ ]" done marker.
	t := Task{Parent: NoParent}
	if len(rest) >= 3 && rest[0] == '[' && rest[2] == ']' {
		t.Done = rest[1] == 'x' || rest[1] == 'X'
		rest = strings.TrimLeft(rest[3:], " \t")
	}

	// Trailing "(parent=<p>)" marker. A non-numeric value degrades to
	// no parent, keeping the marker out of the name.
	if ppos := strings.LastIndex(rest, "(parent="); ppos >= 0 {
		if endp := strings.Index(rest[ppos:], ")"); endp >= 0 {
			num := rest[ppos+len("(parent=") : ppos+endp]
			if p, err := strconv.Atoi(strings.TrimSpace(num)); err == nil {
				t.Parent = p
			}
			rest = strings.TrimRight(rest[:ppos], " \t")
		}
	}

	t.Name = rest
	return t
}

// Tasks returns the in-memory collection in arena order.
func (s *Store) Tasks() []Task { return s.tasks }

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

// Reset empties the in-memory collection. The on-disk file is left
// untouched.
func (s *Store) Reset() { s.tasks = nil }

// Children returns the indices whose parent is i, in arena order.
func (s *Store) Children(i int) []int {
	var out []int
	for j, t := range s.tasks {
		if t.Parent == i {
			out = append(out, j)
		}
	}
	return out
}

// Roots returns the indices of tasks without a valid parent reference.
// A parent index outside the arena is treated as absent.
func (s *Store) Roots() []int {
	var out []int
	for i, t := range s.tasks {
		if !t.HasParent() || t.Parent < 0 || t.Parent >= len(s.tasks) {
			out = append(out, i)
		}
	}
	return out
}

// Walk visits the subtree rooted at index i depth-first, calling fn
// with each index and its depth. Parent links may form cycles or
// self-references, so visited indices are skipped.
func (s *Store) Walk(i int, fn func(idx, depth int)) {
	visited := make(map[int]bool, len(s.tasks))
	s.walk(i, 0, visited, fn)
}

func (s *Store) walk(i, depth int, visited map[int]bool, fn func(idx, depth int)) {
	if i < 0 || i >= len(s.tasks) || visited[i] {
		return
	}
	visited[i] = true
	fn(i, depth)
	for _, c := range s.Children(i) {
		s.walk(c, depth+1, visited, fn)
	}
}
