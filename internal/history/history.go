// Package history implements Chronicler's persistent store of shell command
// and directory history: an append-only on-disk log of timestamped records,
// read back in full to feed Sweep's haystack (§1, §6 "Chronicler interface
// to the core").
//
// This package is outside the core picker contract described by spec.md;
// it exists only to give Chronicler something concrete to rank with C2-C4.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dshills/sweep/internal/app"
)

// Kind distinguishes the two record shapes Chronicler tracks.
type Kind string

const (
	// KindCommand is a recorded shell command invocation.
	KindCommand Kind = "command"
	// KindDirectory is a recorded `cd` (directory visit).
	KindDirectory Kind = "directory"
)

// Record is one entry in the history log.
type Record struct {
	Kind      Kind      `json:"kind"`
	Timestamp time.Time `json:"ts"`
	Directory string    `json:"dir"`
	Command   string    `json:"cmd,omitempty"`
	ExitCode  int       `json:"exit,omitempty"`
	Session   string    `json:"session,omitempty"`
}

// Store is an append-only, newline-delimited JSON log file. Appends and
// reads both take mu, so a read never overlaps an append made through the
// same Store (mirrors the haystack's own append-only discipline in
// internal/haystack/haystack.go, adapted from an in-memory slice to a file
// because Chronicler's history must outlive the process).
type Store struct {
	mu   sync.Mutex
	path string
	log  *app.Logger
}

// Open opens (creating if necessary) the history log at path.
func Open(path string, log *app.Logger) (*Store, error) {
	if log == nil {
		log = app.GetLogger()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("history: create dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	f.Close()
	return &Store{path: path, log: log.WithComponent("history")}, nil
}

// Append writes rec as one JSON line to the log. Concurrent Appends from
// multiple shell sessions are serialized by mu and by the OS's O_APPEND
// write semantics, preserving submission order (mirrors §5's "two
// concurrent items_extend from the same peer preserve submission order").
func (s *Store) Append(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("history: open for append: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("history: marshal: %w", err)
	}
	data = append(data, '\n')
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("history: write: %w", err)
	}
	return nil
}

// All reads every record currently in the log, oldest first. A line that
// fails to parse is logged and skipped rather than aborting the read (the
// log is append-only and trusted, but a crash mid-write can leave a torn
// final line).
func (s *Store) All() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("history: open for read: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			s.log.Warn("skipping malformed history line: %v", err)
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return records, fmt.Errorf("history: scan: %w", err)
	}
	return records, nil
}

// Recent returns up to n records, most recent first.
func (s *Store) Recent(n int) ([]Record, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	if n <= 0 || n > len(all) {
		n = len(all)
	}
	out := make([]Record, n)
	for i := 0; i < n; i++ {
		out[i] = all[len(all)-1-i]
	}
	return out, nil
}

// DefaultPath returns the default history log location, honoring
// $CHRONICLER_HISTORY_FILE and falling back to ~/.chronicler/history.jsonl.
func DefaultPath() string {
	if p := os.Getenv("CHRONICLER_HISTORY_FILE"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".chronicler", "history.jsonl")
}
