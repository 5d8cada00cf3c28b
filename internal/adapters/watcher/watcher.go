package watcher

import (
	"context"
	"iter"
	"path/filepath"
	"sync"
	"time"
	"unique"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/lockb/internal/core/domain"
	"go.trai.ch/lockb/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 16

// Watcher reports changes to a single file. It watches the parent
// directory so that atomic replacements by rename are seen as well.
type Watcher struct {
	logger    ports.Logger
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	target    unique.Handle[string]
	events    chan ports.WatchEvent

	mu     sync.Mutex
	closed bool
}

// NewWatcher creates a watcher. File system errors are reported to logger.
func NewWatcher(logger ports.Logger) *Watcher {
	return &Watcher{
		logger: logger,
		events: make(chan ports.WatchEvent, eventChannelBuffer),
	}
}

// Start begins watching the file at path.
func (w *Watcher) Start(ctx context.Context, path string, debounce time.Duration) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", path)
	}
	w.target = unique.Make(abs)

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", path)
	}
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		_ = fsWatcher.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", path)
	}
	w.fsWatcher = fsWatcher
	w.debouncer = NewDebouncer(debounce, w.emit)

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	if w.fsWatcher == nil {
		return nil
	}
	return w.fsWatcher.Close()
}

// Events returns an iterator of coalesced events. It ends when the watcher
// stops or the context passed to Start is done.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// processEvents filters raw fsnotify events down to the target file and
// feeds them to the debouncer.
func (w *Watcher) processEvents(ctx context.Context) {
	defer w.close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if unique.Make(filepath.Clean(event.Name)) != w.target {
				continue
			}
			if watchEvent, ok := convertEvent(event); ok {
				w.debouncer.Add(watchEvent)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("watcher: file system error: " + err.Error())
			}
		}
	}
}

// emit delivers debounced events. Events are dropped once the watcher is
// closed or when the consumer lags a full buffer behind, since any
// queued event already signals a pending change.
func (w *Watcher) emit(events []ports.WatchEvent) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	for _, event := range events {
		select {
		case w.events <- event:
		default:
		}
	}
}

// close delivers any events still inside the debounce window, then ends
// the event stream.
func (w *Watcher) close() {
	w.debouncer.Flush()
	w.debouncer.Stop()

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.closed = true
		close(w.events)
	}
}

// convertEvent converts an fsnotify event to a ports.WatchEvent.
func convertEvent(event fsnotify.Event) (ports.WatchEvent, bool) {
	switch {
	case event.Op.Has(fsnotify.Write):
		return ports.WatchEvent{Path: event.Name, Operation: ports.OpWrite}, true
	case event.Op.Has(fsnotify.Create):
		return ports.WatchEvent{Path: event.Name, Operation: ports.OpCreate}, true
	case event.Op.Has(fsnotify.Remove):
		return ports.WatchEvent{Path: event.Name, Operation: ports.OpRemove}, true
	case event.Op.Has(fsnotify.Rename):
		return ports.WatchEvent{Path: event.Name, Operation: ports.OpRename}, true
	default:
		return ports.WatchEvent{}, false
	}
}
