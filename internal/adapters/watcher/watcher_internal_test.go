package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/lockb/internal/core/ports"
)

func TestWatcher_CloseDeliversPendingEvents(t *testing.T) {
	w := NewWatcher(nil)
	w.debouncer = NewDebouncer(time.Hour, w.emit)
	w.debouncer.Add(ports.WatchEvent{Path: "/project/bun.lockb", Operation: ports.OpWrite})

	w.close()

	var got []ports.WatchEvent
	for event := range w.Events() {
		got = append(got, event)
	}
	assert.Equal(t, []ports.WatchEvent{{Path: "/project/bun.lockb", Operation: ports.OpWrite}}, got)
}

func TestWatcher_CloseWithoutPendingEvents(t *testing.T) {
	w := NewWatcher(nil)
	w.debouncer = NewDebouncer(time.Hour, w.emit)

	w.close()

	_, ok := <-w.events
	assert.False(t, ok)
}
