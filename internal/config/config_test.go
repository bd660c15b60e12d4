package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "hooks.jsonl", cfg.Sources.HooksFile)
	assert.True(t, cfg.Sources.Git)
	assert.Equal(t, "archive", cfg.Archive.Dir)
	assert.Empty(t, cfg.Sources.TranscriptsDir)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	stateDir := filepath.Join(t.TempDir(), ".timeline")

	cfg, err := Load(stateDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(stateDir, "archive"), cfg.ArchiveDir())
	assert.Equal(t, filepath.Join(stateDir, "hooks.jsonl"), cfg.HooksFile())
	assert.Equal(t, filepath.Join(stateDir, "logs", "timeline.log"), cfg.LogFile())
	assert.Equal(t, filepath.Dir(stateDir), cfg.RepoDir())
	assert.Equal(t, filepath.Join(stateDir, "cache"), cfg.CacheDir())
	assert.Empty(t, cfg.TranscriptsDir())
}

func TestLoadFromFile(t *testing.T) {
	stateDir := t.TempDir()
	content := `
[log]
level = "debug"

[sources]
hooks_file = "/var/log/hooks.jsonl"
transcripts_dir = "~/transcripts"
git = false
concurrency = 0

[archive]
dir = "workflows"
`
	require.NoError(t, os.WriteFile(filepath.Join(stateDir, FileName), []byte(content), 0644))

	cfg, err := Load(stateDir)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Sources.Git)
	assert.Equal(t, 1, cfg.Sources.Concurrency)
	assert.Equal(t, "/var/log/hooks.jsonl", cfg.HooksFile())
	assert.Equal(t, filepath.Join(home, "transcripts"), cfg.TranscriptsDir())
	assert.Equal(t, filepath.Join(stateDir, "workflows"), cfg.ArchiveDir())
	// Keys absent from the file keep their defaults
	assert.Equal(t, filepath.Join(stateDir, "logs", "timeline.log"), cfg.LogFile())
}

func TestLoadInvalidFile(t *testing.T) {
	stateDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(stateDir, FileName), []byte("[log\nlevel ="), 0644))

	_, err := Load(stateDir)
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x"), ExpandHome("~/x"))
	assert.Equal(t, "/abs", ExpandHome("/abs"))
	assert.Equal(t, "rel/~", ExpandHome("rel/~"))
}

func TestLoadFileExplicitPath(t *testing.T) {
	stateDir := t.TempDir()
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[archive]\ndir = \"elsewhere\"\n[sources]\nconcurrency = 0\n"), 0644))

	cfg, err := LoadFile(stateDir, path)
	require.NoError(t, err)
	assert.Equal(t, stateDir, cfg.StateDir())
	assert.Equal(t, filepath.Join(stateDir, "elsewhere"), cfg.ArchiveDir())
	assert.Equal(t, 1, cfg.Sources.Concurrency)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(t.TempDir(), filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
