// Package watch re-runs log analysis whenever the watched file changes.
//
// Unlike a tail -f implementation, each change triggers a complete
// re-extraction of the file; there is no incremental read state to maintain,
// which keeps the extraction path identical to the one-shot commands.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Options configures the watcher behavior.
type Options struct {
	// Path is the log file to watch.
	Path string

	// OnChange is called once at startup and again after every write to
	// the file. Returning an error stops the watcher.
	OnChange func() error
}

// Watcher monitors a log file and triggers re-analysis on changes.
type Watcher struct {
	opts    Options
	watcher *fsnotify.Watcher
	logger  *slog.Logger
}

// New creates a new Watcher with the given options.
func New(opts Options, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{opts: opts, logger: logger}
}

// Run starts watching. It blocks until the context is cancelled or an error
// occurs. The initial analysis runs before the first event.
func (w *Watcher) Run(ctx context.Context) error {
	if w.opts.OnChange == nil {
		return fmt.Errorf("watch: OnChange callback is required")
	}

	if _, err := os.Stat(w.opts.Path); err != nil {
		return err
	}

	if err := w.opts.OnChange(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	w.watcher = watcher
	defer watcher.Close()

	if err := watcher.Add(w.opts.Path); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.opts.Path, err)
	}

	w.logger.Info("watching log file", "path", w.opts.Path)
	return w.loop(ctx)
}

func (w *Watcher) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed unexpectedly")
			}
			if err := w.handleEvent(ctx, event); err != nil {
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) error {
	switch {
	case event.Op&fsnotify.Write == fsnotify.Write:
		w.logger.Debug("file changed, re-running analysis", "path", w.opts.Path)
		return w.opts.OnChange()

	case event.Op&fsnotify.Remove == fsnotify.Remove || event.Op&fsnotify.Rename == fsnotify.Rename:
		// Log rotation: wait for the file to reappear, then re-analyze.
		return w.awaitRotation(ctx)
	}

	return nil
}

// awaitRotation waits for a rotated file to reappear and resumes watching it.
func (w *Watcher) awaitRotation(ctx context.Context) error {
	w.logger.Info("file rotated, waiting for it to reappear", "path", w.opts.Path)

	timeout := time.After(10 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timeout:
			return fmt.Errorf("timeout waiting for rotated file to reappear")
		case <-ticker.C:
			if _, err := os.Stat(w.opts.Path); err != nil {
				continue
			}
			if err := w.watcher.Add(w.opts.Path); err != nil {
				return fmt.Errorf("failed to watch rotated file: %w", err)
			}
			w.logger.Info("following rotated file", "path", w.opts.Path)
			return w.opts.OnChange()
		}
	}
}
