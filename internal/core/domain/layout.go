package domain

import "time"

const (
	// DefaultLockfileName is the binary lockfile read when no path is given.
	DefaultLockfileName = "bun.lockb"

	// DefaultTextLockfileName is the text lockfile compared by the check command.
	DefaultTextLockfileName = "yarn.lock"

	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = ".lockb.yaml"

	// DefaultDebounce is the window used to coalesce lockfile change events.
	DefaultDebounce = 100 * time.Millisecond

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
