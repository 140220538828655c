package notify

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNotifyCommandFires(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "fired")

	// Notify must return before the command finishes, yet the command
	// still has to run to completion on its own.
	Notify("touch '" + marker + "'")

	deadline := time.Now().Add(3 * time.Second)
	for {
		if _, err := os.Stat(marker); err == nil {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("alert command never ran")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestNotifyEmptyCommand(t *testing.T) {
	// Bell path: must not block or panic.
	Notify("")
}

func TestNotifyBadCommandIsSilent(t *testing.T) {
	Notify("definitely-not-a-command-tracklog-test")
}
