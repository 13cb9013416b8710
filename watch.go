package main

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"braces.dev/errtrace"
	"github.com/fsnotify/fsnotify"
)

// _defaultDebounce is how long after the last filesystem event
// the watcher waits before regenerating.
const _defaultDebounce = 250 * time.Millisecond

// watcher regenerates the site when page sources change.
type watcher struct {
	Log *log.Logger

	// Patterns are the path patterns being watched.
	Patterns []string

	// Debounce overrides the delay
	// between the last filesystem event and regeneration.
	Debounce time.Duration
}

// Watch blocks, re-running fn every time files under the watched paths
// change, until the context is canceled.
//
// Failures of fn are logged and not fatal.
// The next change re-runs it again.
func (w *watcher) Watch(ctx context.Context, fn func() error) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer func() { _ = fsw.Close() }()

	for _, pat := range w.Patterns {
		if err := w.add(fsw, pat); err != nil {
			return err
		}
	}

	debounce := w.Debounce
	if debounce == 0 {
		debounce = _defaultDebounce
	}

	w.Log.Printf("Watching for changes. Press Ctrl-C to stop.")

	// The timer stays disarmed until the first event.
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}

			w.Log.Printf("Changed: %v", ev.Name)
			timer.Reset(debounce)

			// New directories need watches of their own.
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = fsw.Add(ev.Name)
				}
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.Log.Printf("Watch error: %v", err)

		case <-timer.C:
			if err := fn(); err != nil {
				w.Log.Printf("play2html: %v", err)
			}
		}
	}
}

// add registers the path and, if it's a directory,
// everything under it.
func (w *watcher) add(fsw *fsnotify.Watcher, root string) error {
	fi, err := os.Stat(root)
	if err != nil {
		return errtrace.Wrap(err)
	}
	if !fi.IsDir() {
		// Watching the parent catches edits
		// that replace the file wholesale.
		return errtrace.Wrap(fsw.Add(filepath.Dir(root)))
	}

	return errtrace.Wrap(filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		return fsw.Add(path)
	}))
}
