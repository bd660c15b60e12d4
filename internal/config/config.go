package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the config file looked up inside the state directory
const FileName = "config.toml"

// Config holds all timeline configuration.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Sources SourcesConfig `toml:"sources"`
	Archive ArchiveConfig `toml:"archive"`
	Cache   CacheConfig   `toml:"cache"`

	stateDir string
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type SourcesConfig struct {
	HooksFile      string `toml:"hooks_file"`
	TranscriptsDir string `toml:"transcripts_dir"`
	Git            bool   `toml:"git"`
	RepoDir        string `toml:"repo_dir"`
	Concurrency    int    `toml:"concurrency"`
}

type ArchiveConfig struct {
	Dir string `toml:"dir"`
}

// CacheConfig controls the parsed transcript cache
type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join("logs", "timeline.log"),
		},
		Sources: SourcesConfig{
			HooksFile:   "hooks.jsonl",
			Git:         true,
			Concurrency: 4,
		},
		Archive: ArchiveConfig{
			Dir: "archive",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "cache",
		},
	}
}

// Load reads <stateDir>/config.toml, falling back to defaults when the
// file does not exist.
func Load(stateDir string) (Config, error) {
	path := filepath.Join(stateDir, FileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return finish(DefaultConfig(), stateDir), nil
		}
		return Config{}, fmt.Errorf("stat config %s: %w", path, err)
	}
	return LoadFile(stateDir, path)
}

// LoadFile reads an explicit config file. Relative paths inside it are still
// resolved against stateDir.
func LoadFile(stateDir, path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(ExpandHome(path), &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return finish(cfg, stateDir), nil
}

func finish(cfg Config, stateDir string) Config {
	cfg.stateDir = stateDir
	if cfg.Sources.Concurrency < 1 {
		cfg.Sources.Concurrency = 1
	}
	return cfg
}

// ExpandHome replaces a leading ~/ with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// resolve expands ~ and anchors relative paths at the state directory
func (c Config) resolve(path string) string {
	if path == "" {
		return ""
	}
	path = ExpandHome(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.stateDir, path)
}

// StateDir returns the directory the config was loaded from
func (c Config) StateDir() string {
	return c.stateDir
}

// LogFile returns the log file path
func (c Config) LogFile() string {
	return c.resolve(c.Log.File)
}

// HooksFile returns the hook log path
func (c Config) HooksFile() string {
	return c.resolve(c.Sources.HooksFile)
}

// TranscriptsDir returns the transcript directory, empty when unset
func (c Config) TranscriptsDir() string {
	return c.resolve(c.Sources.TranscriptsDir)
}

// RepoDir returns the repository directory, defaulting to the parent of the
// state directory
func (c Config) RepoDir() string {
	if c.Sources.RepoDir == "" {
		return filepath.Dir(filepath.Clean(c.stateDir))
	}
	return c.resolve(c.Sources.RepoDir)
}

// ArchiveDir returns the archive directory
func (c Config) ArchiveDir() string {
	return c.resolve(c.Archive.Dir)
}

// CacheDir returns the transcript cache directory
func (c Config) CacheDir() string {
	return c.resolve(c.Cache.Dir)
}
