// Package config provides the configuration loader for lockb.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/lockb/internal/core/domain"
	"go.trai.ch/lockb/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the config schema version understood by the loader.
const SupportedVersion = "1"

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
	logger   ports.Logger
}

// NewLoader creates a loader reading domain.ConfigFileName.
func NewLoader(logger ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{
		Filename: domain.ConfigFileName,
		logger:   logger,
	}
}

// Load reads the configuration from the given working directory.
// A missing file yields domain.DefaultConfig.
func (l *FileConfigLoader) Load(cwd string) (*domain.Config, error) {
	path := filepath.Join(cwd, l.Filename)
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the working directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := domain.DefaultConfig()
			return &cfg, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	file, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	if file.Version != "" && file.Version != SupportedVersion && l.logger != nil {
		l.logger.Warn("unsupported config version " + file.Version + " in " + path)
	}

	return file.toDomain()
}

// Parse decodes a config document. Unknown keys are rejected.
func Parse(data []byte) (*Lockbfile, error) {
	var file Lockbfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return &file, nil
}

func (f *Lockbfile) toDomain() (*domain.Config, error) {
	cfg := domain.DefaultConfig()
	if f.Input != "" {
		cfg.Input = f.Input
	}
	cfg.Output = f.Output
	if f.Check.Against != "" {
		cfg.CheckAgainst = f.Check.Against
	}
	if f.Watch.Debounce != "" {
		d, err := time.ParseDuration(f.Watch.Debounce)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "debounce", f.Watch.Debounce)
		}
		if d < 0 {
			return nil, zerr.With(zerr.New(domain.ErrConfigParseFailed.Error()), "debounce", f.Watch.Debounce)
		}
		cfg.Debounce = d
	}
	cfg.LogJSON = f.Log.JSON
	return &cfg, nil
}
