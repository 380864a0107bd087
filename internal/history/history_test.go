package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStoreAppendAndAll(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "history.jsonl"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	recs := []Record{
		{Kind: KindCommand, Directory: "/tmp", Command: "ls -la", Timestamp: time.Unix(1, 0)},
		{Kind: KindDirectory, Directory: "/home", Timestamp: time.Unix(2, 0)},
		{Kind: KindCommand, Directory: "/tmp", Command: "go test ./...", Timestamp: time.Unix(3, 0)},
	}
	for _, r := range recs {
		if err := s.Append(r); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := s.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != len(recs) {
		t.Fatalf("got %d records, want %d", len(got), len(recs))
	}
	for i, r := range got {
		if r.Command != recs[i].Command || r.Directory != recs[i].Directory {
			t.Errorf("record %d = %+v, want %+v", i, r, recs[i])
		}
	}
}

func TestStoreRecentOrdering(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "history.jsonl"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := s.Append(Record{Kind: KindCommand, Command: string(rune('a' + i))}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	recent, err := s.Recent(3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("len = %d, want 3", len(recent))
	}
	want := []string{"e", "d", "c"}
	for i, r := range recent {
		if r.Command != want[i] {
			t.Errorf("recent[%d] = %q, want %q", i, r.Command, want[i])
		}
	}
}

func TestStoreAllOnMissingFile(t *testing.T) {
	s := &Store{path: filepath.Join(t.TempDir(), "nope.jsonl")}
	got, err := s.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestStoreSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.jsonl")
	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Append(Record{Kind: KindCommand, Command: "ok"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString("not json\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	f.Close()

	if err := s.Append(Record{Kind: KindCommand, Command: "ok2"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := s.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2 (malformed line skipped)", len(got))
	}
}
