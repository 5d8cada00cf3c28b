package config

// Lockbfile represents the structure of the .lockb.yaml configuration file.
type Lockbfile struct {
	Version string   `yaml:"version"`
	Input   string   `yaml:"input"`
	Output  string   `yaml:"output"`
	Check   CheckDTO `yaml:"check"`
	Watch   WatchDTO `yaml:"watch"`
	Log     LogDTO   `yaml:"log"`
}

// CheckDTO configures the check command.
type CheckDTO struct {
	Against string `yaml:"against"`
}

// WatchDTO configures the watch command.
type WatchDTO struct {
	Debounce string `yaml:"debounce"`
}

// LogDTO configures logging.
type LogDTO struct {
	JSON bool `yaml:"json"`
}
