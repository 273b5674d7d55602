// Package watch re-runs generation when files in the definitions root change.
package watch

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/schemagen/errors"
	"github.com/teranos/schemagen/logger"
)

// DefaultDebounce collapses bursts of editor writes into one trigger.
const DefaultDebounce = 500 * time.Millisecond

// TriggerFunc is called once per debounced burst with the changed paths,
// sorted and de-duplicated. Calls never overlap.
type TriggerFunc func(changed []string)

// Options configures a Watcher.
type Options struct {
	Dir      string
	Debounce time.Duration

	// Ignore lists files whose events never trigger, typically the version
	// files the generator itself rewrites.
	Ignore []string

	Logger *zap.SugaredLogger
}

// Watcher watches a single directory, non-recursively.
type Watcher struct {
	dir      string
	debounce time.Duration
	ignore   map[string]bool
	trigger  TriggerFunc
	logger   *zap.SugaredLogger

	watcher *fsnotify.Watcher

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]bool
	closed  bool

	// serialises trigger calls
	runMu sync.Mutex
}

// New creates a Watcher for opts.Dir. Call Run to start delivering triggers.
func New(opts Options, trigger TriggerFunc) (*Watcher, error) {
	if opts.Dir == "" {
		return nil, errors.New("watch directory is required")
	}
	if trigger == nil {
		return nil, errors.New("trigger is required")
	}
	if opts.Debounce < 0 {
		return nil, errors.Newf("debounce must be >= 0, got %s", opts.Debounce)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fw.Add(opts.Dir); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", opts.Dir)
	}

	ignore := make(map[string]bool, len(opts.Ignore))
	for _, p := range opts.Ignore {
		ignore[normalize(p)] = true
	}

	return &Watcher{
		dir:      opts.Dir,
		debounce: opts.Debounce,
		ignore:   ignore,
		trigger:  trigger,
		logger:   logger.OrNop(opts.Logger),
		watcher:  fw,
		pending:  make(map[string]bool),
	}, nil
}

// Run delivers triggers until ctx is cancelled, then waits for a running
// trigger to finish and closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.close()

	w.logger.Infow("Watching definitions", logger.FieldPath, w.dir)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debugw("Definitions changed",
				logger.FieldPath, event.Name,
				"op", event.Op.String(),
			)
			w.schedule(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if w.ignore[normalize(event.Name)] {
		return false
	}
	return !isScratchFile(event.Name)
}

// schedule restarts the debounce window and remembers path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	changed := make([]string, 0, len(w.pending))
	for p := range w.pending {
		changed = append(changed, p)
	}
	w.pending = make(map[string]bool)
	w.mu.Unlock()

	if len(changed) == 0 {
		return
	}
	sort.Strings(changed)

	w.runMu.Lock()
	defer w.runMu.Unlock()

	// close may have won the race for runMu
	if w.isClosed() {
		return
	}
	w.trigger(changed)
}

func (w *Watcher) isClosed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

func (w *Watcher) close() {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	// Wait for an in-flight trigger
	w.runMu.Lock()
	defer w.runMu.Unlock()

	if err := w.watcher.Close(); err != nil {
		w.logger.Warnw("Failed to close watcher", logger.FieldError, err)
	}
}

func normalize(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// isScratchFile matches editor swap files and config backups.
func isScratchFile(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, ".#"),
		strings.HasSuffix(base, "~"),
		strings.HasSuffix(base, ".swp"),
		strings.HasSuffix(base, ".swx"),
		strings.HasPrefix(filepath.Ext(base), ".back"):
		return true
	}
	return false
}
