package watch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	if err := os.WriteFile(path, []byte("<p>one</p>"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(20 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("<p>two</p>"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events():
		abs, _ := filepath.Abs(path)
		if ev.Path != abs {
			t.Errorf("event path = %q, want %q", ev.Path, abs)
		}
	case err := <-w.Errors():
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatchDebounce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(100 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}

	// Several rapid writes should coalesce into one event.
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte{byte('a' + i)}, 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-w.Events():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change event")
	}

	select {
	case ev := <-w.Events():
		t.Errorf("unexpected second event: %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "watched.html")
	other := filepath.Join(dir, "other.html")
	for _, p := range []string{watched, other} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	w, err := New(20 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch(watched); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(other, []byte("y"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-w.Events():
		t.Errorf("unexpected event for unwatched file: %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchMissingPath(t *testing.T) {
	w, err := New(20 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	err = w.Watch(filepath.Join(t.TempDir(), "nope.html"))
	if !errors.Is(err, ErrPathNotExist) {
		t.Errorf("Watch() error = %v, want ErrPathNotExist", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	w, err := New(20 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	if err := w.Watch(t.TempDir()); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("Watch() after Close error = %v, want ErrWatcherClosed", err)
	}
}
