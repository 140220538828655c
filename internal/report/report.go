// Package report builds the weekly AI productivity summary: it gathers
// the tracker's recent files, assembles an analysis prompt, and runs it
// through a local ollama model. When ollama is unavailable the prompt
// itself is the output, for manual pasting into another assistant.
package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const fileMode = 0o600

// SummaryFileName is where a successful summary is written in the data
// directory.
const SummaryFileName = "ai_weekly_summary.txt"

// filePatterns matches the tracker files worth analyzing: status and
// log exports plus the raw task and log files.
var filePatterns = []string{
	"weekly_status_export_*",
	"tasks*",
	"hourly_logs_today_*",
	"daily_status_*",
	"daily_logs.txt",
}

// recentWindow bounds how old a file's mtime may be to be included.
const recentWindow = 7 * 24 * time.Hour

// RecentFiles returns the data-dir files matching the tracker patterns
// whose modification time falls within the last 7 days, sorted by path.
// Unreadable files are skipped.
func RecentFiles(dir string) []string {
	cutoff := time.Now().Add(-recentWindow)
	seen := make(map[string]bool)
	for _, pat := range filePatterns {
		matches, err := filepath.Glob(filepath.Join(dir, pat))
		if err != nil {
			continue
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() || info.ModTime().Before(cutoff) {
				continue
			}
			seen[m] = true
		}
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// BuildPrompt concatenates the given files, each under a basename
// header, and wraps them in the analysis instruction.
func BuildPrompt(files []string) string {
	var logs strings.Builder
	for _, f := range files {
		data, err := os.ReadFile(f) //nolint:gosec // paths come from globbing the trusted data dir
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not read %s: %v\n", f, err)
			continue
		}
		if logs.Len() > 0 {
			logs.WriteString("\n\n")
		}
		logs.WriteString("--- " + filepath.Base(f) + " ---\n")
		logs.Write(data)
	}

	return "Here are my productivity logs for this week. Please analyze and suggest ways I can " +
		"improve my workflow, manage energy, and reduce distractions. " +
		"Summarize patterns, recommend changes, and highlight both strengths and weaknesses.\n\n" +
		"LOGS:\n" + logs.String()
}

// RunOllama pipes the prompt into "ollama run <model>" with a deadline
// and returns the model's output.
func RunOllama(ctx context.Context, model, prompt string, timeout time.Duration) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "ollama", "run", model)
	cmd.Stdin = strings.NewReader(prompt)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("ollama: %s: %w", msg, err)
		}
		return "", fmt.Errorf("ollama: %w", err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// WriteSummary writes the summary into the data directory and returns
// its path.
func WriteSummary(dir, summary string) (string, error) {
	path := filepath.Join(dir, SummaryFileName)
	if err := os.WriteFile(path, []byte(summary+"\n"), fileMode); err != nil {
		return "", fmt.Errorf("writing summary: %w", err)
	}
	return path, nil
}
