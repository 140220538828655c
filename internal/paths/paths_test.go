package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewExplicitDir(t *testing.T) {
	r := New("/tmp/somewhere")
	if r.Dir() != "/tmp/somewhere" {
		t.Errorf("Dir() = %s", r.Dir())
	}
}

func TestNewEmptyDirUsesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	r := New("")
	if r.Dir() != filepath.Join(home, DefaultDirName) {
		t.Errorf("Dir() = %s", r.Dir())
	}
}

func TestInCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	r := New(dir)

	path := r.In("daily_logs.txt")
	if path != filepath.Join(dir, "daily_logs.txt") {
		t.Errorf("In() = %s", path)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("data dir not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("data dir is not a directory")
	}
}

func TestInFallsBackWhenDirBlocked(t *testing.T) {
	// A regular file where the directory should go makes MkdirAll fail.
	parent := t.TempDir()
	blocked := filepath.Join(parent, "data")
	if err := os.WriteFile(blocked, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	r := New(blocked)
	if path := r.In("daily_logs.txt"); path != "daily_logs.txt" {
		t.Errorf("In() = %s, want bare name", path)
	}
}

func TestEnsureIdempotent(t *testing.T) {
	r := New(t.TempDir())
	if err := r.Ensure(); err != nil {
		t.Fatalf("Ensure on existing dir: %v", err)
	}
	if err := r.Ensure(); err != nil {
		t.Fatalf("second Ensure: %v", err)
	}
}
