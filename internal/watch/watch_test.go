package watch

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunRequiresCallback(t *testing.T) {
	w := New(Options{Path: "whatever.log"}, testLogger())

	if err := w.Run(context.Background()); err == nil {
		t.Error("Run() without OnChange returned nil error")
	}
}

func TestRunMissingFile(t *testing.T) {
	w := New(Options{
		Path:     filepath.Join(t.TempDir(), "missing.log"),
		OnChange: func() error { return nil },
	}, testLogger())

	err := w.Run(context.Background())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Run() error = %v, want fs.ErrNotExist", err)
	}
}

func TestRunInitialAnalysisThenCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("line one\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	calls := make(chan struct{}, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := New(Options{
		Path: path,
		OnChange: func() error {
			calls <- struct{}{}
			return nil
		},
	}, testLogger())

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("initial OnChange did not fire")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() after cancel returned %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after context cancel")
	}
}

func TestRunTriggersOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("line one\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	calls := make(chan struct{}, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := New(Options{
		Path: path,
		OnChange: func() error {
			calls <- struct{}{}
			return nil
		},
	}, testLogger())

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Initial analysis.
	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("initial OnChange did not fire")
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("line two\n"); err != nil {
		t.Fatal(err)
	}
	f.Close()

	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("OnChange did not fire after append")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after context cancel")
	}
}

func TestRunStopsOnCallbackError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("line one\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	sentinel := errors.New("refresh failed")
	w := New(Options{
		Path:     path,
		OnChange: func() error { return sentinel },
	}, testLogger())

	if err := w.Run(context.Background()); !errors.Is(err, sentinel) {
		t.Errorf("Run() error = %v, want callback error", err)
	}
}
