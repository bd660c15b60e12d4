package archive

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-claude-timeline/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArchive(id, completed string) model.WorkflowArchive {
	end := completed
	return model.WorkflowArchive{
		WorkflowID:  id,
		Mode:        model.ModeCowboy,
		CompletedAt: completed,
		Phases: []model.PhaseArchive{{
			PhaseName:         model.PhaseRide,
			StartTime:         id,
			EndTime:           &end,
			DurationSeconds:   5400,
			Tokens:            model.TokenTotals{Input: 100, Output: 50, AssistantTurns: 2},
			BashCommands:      []model.BashCommandSummary{{Command: "go test ./...", Count: 1, Timestamps: []string{"2025-01-04T10:00:00Z"}}},
			FileModifications: []model.FileModificationSummary{},
			GitCommits:        []model.GitCommit{{Hash: "abc1234", Timestamp: "2025-01-04T10:15:00Z", Message: "fix <parser>", Author: "dev"}},
		}},
		Transitions: []model.TransitionArchive{
			{FromNode: model.NodeStart, ToNode: model.PhaseRide, Timestamp: id},
			{FromNode: model.PhaseRide, ToNode: model.NodeDone, Timestamp: completed},
		},
		Totals:      model.WorkflowTotals{Tokens: model.TokenTotals{Input: 100, Output: 50, AssistantTurns: 2}, BashCommands: 1, UniqueCommands: 1, GitCommits: 1},
		IsSynthetic: true,
	}
}

func TestValidateWorkflowID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{name: "rfc3339", id: "2025-10-24T10:00:00Z"},
		{name: "fractional", id: "2025-10-24T10:00:00.5Z"},
		{name: "slash", id: "2025-10-24/foo", wantErr: true},
		{name: "backslash", id: `2025-10-24\foo`, wantErr: true},
		{name: "traversal", id: "..2025-10-24T10:00:00Z", wantErr: true},
		{name: "not a timestamp", id: "not-a-timestamp", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWorkflowID(tt.id)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWorkflowID)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWriteAndReadAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "archive")
	store := NewStore(dir, nil)

	require.NoError(t, store.Write(testArchive("2025-01-04T11:30:00Z", "2025-01-04T15:00:00Z")))
	require.NoError(t, store.Write(testArchive("2025-01-04T09:30:00Z", "2025-01-04T11:00:00Z")))

	exists, err := store.Exists("2025-01-04T09:30:00Z")
	require.NoError(t, err)
	assert.True(t, exists)

	archives, err := store.ReadAll()
	require.NoError(t, err)
	require.Len(t, archives, 2)
	assert.Equal(t, "2025-01-04T09:30:00Z", archives[0].WorkflowID)
	assert.Equal(t, testArchive("2025-01-04T09:30:00Z", "2025-01-04T11:00:00Z"), archives[0])

	// Only the two archives remain; temp files are cleaned up
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestWriteRefusesExisting(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	a := testArchive("2025-01-04T09:30:00Z", "2025-01-04T11:00:00Z")

	require.NoError(t, store.Write(a))

	modified := a
	modified.Mode = "discovery"
	err := store.Write(modified)
	assert.True(t, errors.Is(err, ErrArchiveExists), "got %v", err)

	data, err := os.ReadFile(store.Path(a.WorkflowID))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"mode": "cowboy"`)
}

func TestConcurrentWritesCreateOnce(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	a := testArchive("2025-01-04T09:30:00Z", "2025-01-04T11:00:00Z")

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.Write(a)
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, ErrArchiveExists)
	}
	assert.Equal(t, 1, created)
}

func TestWriteRejectsInvalidID(t *testing.T) {
	store := NewStore(t.TempDir(), nil)
	err := store.Write(testArchive("../escape", "2025-01-04T11:00:00Z"))
	assert.ErrorIs(t, err, ErrInvalidWorkflowID)
}

func TestReadAllSkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, nil)
	require.NoError(t, store.Write(testArchive("2025-01-04T09:30:00Z", "2025-01-04T11:00:00Z")))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0755))

	archives, err := store.ReadAll()
	require.NoError(t, err)
	require.Len(t, archives, 1)
}

func TestReadAllMissingDirectory(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing"), nil)
	archives, err := store.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, archives)
}

func TestEncodeRoundTrip(t *testing.T) {
	a := testArchive("2025-01-04T09:30:00.123Z", "2025-01-04T11:00:00Z")

	first, err := Encode(a)
	require.NoError(t, err)

	var decoded model.WorkflowArchive
	require.NoError(t, sonic.Unmarshal(first, &decoded))
	assert.Equal(t, a, decoded)

	second, err := Encode(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
	assert.NotContains(t, string(first), "session_id")
}

func TestCumulativeTotals(t *testing.T) {
	a := testArchive("2025-01-04T09:30:00Z", "2025-01-04T11:00:00Z")
	b := testArchive("2025-01-04T11:30:00Z", "2025-01-04T15:00:00Z")

	totals := CumulativeTotals([]model.WorkflowArchive{a, b})
	assert.Equal(t, int64(200), totals.Tokens.Input)
	assert.Equal(t, 4, totals.Tokens.AssistantTurns)
	assert.Equal(t, 2, totals.GitCommits)
	assert.Equal(t, 2, totals.BashCommands)

	assert.Equal(t, model.WorkflowTotals{}, CumulativeTotals(nil))
}
