package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/penwyp/go-claude-timeline/internal/core/model"
	"github.com/penwyp/go-claude-timeline/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTranscript(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func snapshot(t *testing.T, path string) util.FileState {
	t.Helper()
	state, err := util.SnapshotFile(path)
	require.NoError(t, err)
	return state
}

func sampleTurns() []model.TranscriptTurn {
	ts := "2025-01-04T10:00:00Z"
	return []model.TranscriptTurn{
		{EventType: model.EntryAssistant, Timestamp: &ts, Usage: &model.TokenUsage{InputTokens: 10, OutputTokens: 5}},
	}
}

func TestFileCache_SetAndGet(t *testing.T) {
	dir := t.TempDir()
	transcript := filepath.Join(dir, "projects", "abc.jsonl")
	writeTranscript(t, transcript, `{"type":"assistant"}`+"\n")

	c := NewFileCache(filepath.Join(dir, "cache"))
	_, ok := c.Get(transcript)
	assert.False(t, ok)

	require.NoError(t, c.Set(transcript, snapshot(t, transcript), sampleTurns()))

	turns, ok := c.Get(transcript)
	require.True(t, ok)
	assert.Equal(t, sampleTurns(), turns)

	// A fresh cache reads the entry back from disk
	reloaded := NewFileCache(filepath.Join(dir, "cache"))
	turns, ok = reloaded.Get(transcript)
	require.True(t, ok)
	require.Len(t, turns, 1)
	assert.Equal(t, int64(10), turns[0].Usage.InputTokens)
}

func TestFileCache_InvalidatedByChange(t *testing.T) {
	dir := t.TempDir()
	transcript := filepath.Join(dir, "abc.jsonl")
	writeTranscript(t, transcript, `{"type":"assistant"}`+"\n")

	c := NewFileCache(filepath.Join(dir, "cache"))
	require.NoError(t, c.Set(transcript, snapshot(t, transcript), sampleTurns()))

	writeTranscript(t, transcript, `{"type":"assistant"}`+"\n"+`{"type":"assistant"}`+"\n")
	_, ok := c.Get(transcript)
	assert.False(t, ok, "appended file must be re-parsed")

	_, ok = NewFileCache(filepath.Join(dir, "cache")).Get(transcript)
	assert.False(t, ok)
}

func TestFileCache_SameSizeRewrite(t *testing.T) {
	dir := t.TempDir()
	transcript := filepath.Join(dir, "abc.jsonl")
	writeTranscript(t, transcript, "aaaa\n")

	c := NewFileCache(filepath.Join(dir, "cache"))
	require.NoError(t, c.Set(transcript, snapshot(t, transcript), sampleTurns()))

	writeTranscript(t, transcript, "bbbb\n")
	// Force an identical mtime so only the fingerprint can tell
	info, err := os.Stat(transcript)
	require.NoError(t, err)
	cached := c.memoryCache[transcript]
	require.NoError(t, os.Chtimes(transcript, info.ModTime(), time.Unix(0, cached.LastModified)))

	_, ok := c.Get(transcript)
	assert.False(t, ok)
}

func TestFileCache_MissingTranscript(t *testing.T) {
	dir := t.TempDir()
	transcript := filepath.Join(dir, "gone.jsonl")
	writeTranscript(t, transcript, "x\n")

	c := NewFileCache(filepath.Join(dir, "cache"))
	require.NoError(t, c.Set(transcript, snapshot(t, transcript), sampleTurns()))
	require.NoError(t, os.Remove(transcript))

	_, ok := c.Get(transcript)
	assert.False(t, ok)

	_, err := util.SnapshotFile(transcript)
	assert.Error(t, err)
}

func TestFileCache_GrowthDuringParse(t *testing.T) {
	dir := t.TempDir()
	transcript := filepath.Join(dir, "abc.jsonl")
	writeTranscript(t, transcript, `{"type":"assistant"}`+"\n")

	before := snapshot(t, transcript)

	// The session appends a turn after the file was read
	f, err := os.OpenFile(transcript, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString(`{"type":"assistant"}` + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	c := NewFileCache(filepath.Join(dir, "cache"))
	require.NoError(t, c.Set(transcript, before, sampleTurns()))

	_, ok := c.Get(transcript)
	assert.False(t, ok, "entry recorded before the append must not be served")
	_, ok = NewFileCache(filepath.Join(dir, "cache")).Get(transcript)
	assert.False(t, ok)
}

func TestFileCache_CorruptEntry(t *testing.T) {
	dir := t.TempDir()
	transcript := filepath.Join(dir, "abc.jsonl")
	writeTranscript(t, transcript, "x\n")

	cacheDir := filepath.Join(dir, "cache")
	require.NoError(t, os.MkdirAll(cacheDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, cacheName(transcript)), []byte("{not json"), 0644))

	_, ok := NewFileCache(cacheDir).Get(transcript)
	assert.False(t, ok)
}

func TestFileCache_Clear(t *testing.T) {
	dir := t.TempDir()
	transcript := filepath.Join(dir, "abc.jsonl")
	writeTranscript(t, transcript, "x\n")

	c := NewFileCache(filepath.Join(dir, "cache"))
	require.NoError(t, c.Set(transcript, snapshot(t, transcript), sampleTurns()))
	require.NoError(t, c.Clear())

	_, ok := c.Get(transcript)
	assert.False(t, ok)

	assert.NoError(t, NewFileCache(filepath.Join(dir, "never-created")).Clear())
}

func TestCacheName(t *testing.T) {
	a := cacheName("/p1/session.jsonl")
	b := cacheName("/p2/session.jsonl")
	c := cacheName("/p1/session.jsonl.zst")

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^session-[0-9a-f]{8}\.json$`, a)
	assert.Regexp(t, `^session-[0-9a-f]{8}\.json$`, c)
}
