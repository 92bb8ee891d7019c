package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestRelevant(t *testing.T) {
	w := &Watcher{path: "/doc/a.md"}
	for _, tc := range []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "/doc/a.md", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/doc/./a.md", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/doc/a.md", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/doc/a.md", Op: fsnotify.Chmod | fsnotify.Write}, true},
		{fsnotify.Event{Name: "/doc/b.md", Op: fsnotify.Write}, false},
	} {
		if got := w.relevant(tc.ev); got != tc.want {
			t.Errorf("relevant(%v) = %v, want %v", tc.ev, got, tc.want)
		}
	}
}

func TestChangeRemoved(t *testing.T) {
	if (Change{Op: fsnotify.Write}).Removed() {
		t.Error("write reported as removal")
	}
	if !(Change{Op: fsnotify.Write | fsnotify.Rename}).Removed() {
		t.Error("rename not reported as removal")
	}
}

func TestRunDebounces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stats.md")
	if err := os.WriteFile(path, []byte("start\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	changes := make(chan Change, 8)
	w, err := New(path, func(c Change) { changes <- c }, WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Run: %v", err)
		}
	}()

	// Give Run time to add the directory.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte("edit\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case c := <-changes:
		if c.Path != w.Path() {
			t.Errorf("Path = %q, want %q", c.Path, w.Path())
		}
		if !c.Op.Has(fsnotify.Write) {
			t.Errorf("Op = %v, want a write", c.Op)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}
