package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)

	entries := []Entry{
		{Service: "youtube", MediaID: "abc", Width: 425, Height: 239},
		{Service: "vimeo", MediaID: "123", Width: 640, Height: 360},
		{Service: "acme", MediaID: "42", Width: 300, Height: 225},
	}
	for _, e := range entries {
		if err := s.Record(e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Recent() returned %d entries, want 3", len(got))
	}

	// Newest first.
	if got[0].Service != "acme" || got[2].Service != "youtube" {
		t.Errorf("unexpected order: %q then %q", got[0].Service, got[2].Service)
	}
	if got[0].Width != 300 || got[0].Height != 225 {
		t.Errorf("entry = %+v, want 300x225", got[0])
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be filled in on record")
	}
}

func TestRecentLimit(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 5; i++ {
		if err := s.Record(Entry{Service: "youtube", MediaID: "x", Width: 425, Height: 319}); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Recent(2) returned %d entries", len(got))
	}
}

func TestRecentEmpty(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Recent() on empty store returned %d entries", len(got))
	}
}

func TestClear(t *testing.T) {
	s := openTestStore(t)

	if err := s.Record(Entry{Service: "vimeo", MediaID: "1", Width: 640, Height: 480, CreatedAt: time.Now()}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	got, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("store should be empty after Clear, got %d entries", len(got))
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	s.Close()
}
