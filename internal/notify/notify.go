// Package notify fires a one-shot, best-effort attention signal.
// The signal runs detached: it has no result, no cancellation, and no
// access back into tracker state.
package notify

import (
	"os"
	"os/exec"
)

// Notify triggers the attention signal and returns immediately. If
// command is non-empty it is started through the shell and released,
// so it keeps running after this process exits; otherwise a terminal
// bell is written to stderr. The outcome is never observed.
func Notify(command string) {
	if command == "" {
		_, _ = os.Stderr.WriteString("\a")
		return
	}
	cmd := exec.Command("sh", "-c", command) //nolint:gosec // alert command comes from the user's own config
	if err := cmd.Start(); err != nil {
		return
	}
	// The CLI exits right after firing; release the child instead of
	// waiting so the alert outlives it.
	_ = cmd.Process.Release()
}
