// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/lockb/internal/adapters/config"
	_ "go.trai.ch/lockb/internal/adapters/fs"
	_ "go.trai.ch/lockb/internal/adapters/logger"
	_ "go.trai.ch/lockb/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/lockb/internal/app"
)
