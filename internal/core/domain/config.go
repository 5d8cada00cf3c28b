package domain

import "time"

// Config holds the resolved settings for a lockb invocation.
type Config struct {
	// Input is the path of the binary lockfile.
	Input string

	// Output is the path the text lockfile is written to.
	// An empty value means standard output.
	Output string

	// CheckAgainst is the text lockfile compared by the check command.
	CheckAgainst string

	// Debounce is the window used to coalesce change events in watch mode.
	Debounce time.Duration

	// LogJSON switches the logger to JSON output.
	LogJSON bool
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{
		Input:        DefaultLockfileName,
		CheckAgainst: DefaultTextLockfileName,
		Debounce:     DefaultDebounce,
	}
}
