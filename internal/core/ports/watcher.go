package ports

import (
	"context"
	"iter"
	"time"
)

// WatchOp represents the type of file system operation.
type WatchOp uint8

const (
	// OpCreate indicates a file was created.
	OpCreate WatchOp = iota
	// OpWrite indicates a file was modified.
	OpWrite
	// OpRemove indicates a file was removed.
	OpRemove
	// OpRename indicates a file was renamed.
	OpRename
)

// WatchEvent represents a change to the watched file.
type WatchEvent struct {
	// Path is the absolute path of the file that changed.
	Path string
	// Operation is the type of change that occurred.
	Operation WatchOp
}

// Watcher defines the interface for watching a single file for changes.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the file at path. Bursts of changes closer
	// together than debounce are reported as one event.
	// It returns an error if the watcher fails to start.
	Start(ctx context.Context, path string, debounce time.Duration) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Events returns an iterator of coalesced change events.
	Events() iter.Seq[WatchEvent]
}
