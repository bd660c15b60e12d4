package cowboy

import (
	"testing"
	"time"

	"github.com/penwyp/go-claude-timeline/internal/core/model"
	"github.com/penwyp/go-claude-timeline/internal/util"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 1, 4, 18, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func ts(t *testing.T, clock string) time.Time {
	t.Helper()
	parsed, err := util.ParseTimestamp("2025-01-04T" + clock + "Z")
	require.NoError(t, err)
	return parsed
}

func iso(clock string) string {
	return "2025-01-04T" + clock + "Z"
}

func strPtr(s string) *string { return &s }

func knownArchive(start, end string) model.WorkflowArchive {
	return model.WorkflowArchive{
		WorkflowID:  iso(start),
		Mode:        "discovery",
		CompletedAt: iso(end),
		Phases:      []model.PhaseArchive{},
		Transitions: []model.TransitionArchive{},
	}
}

func commitAt(clock string) model.GitCommit {
	return model.GitCommit{
		Hash:         "abc1234",
		Timestamp:    iso(clock),
		Message:      "commit at " + clock,
		Author:       "dev",
		FilesChanged: 1,
		Insertions:   10,
		Deletions:    5,
	}
}

func shellAt(clock, command string) model.ShellCommand {
	return model.ShellCommand{Command: command, Timestamp: strPtr(iso(clock))}
}

func editAt(clock, path string) model.FileEdit {
	return model.FileEdit{FilePath: path, Tool: model.ToolEdit, Timestamp: strPtr(iso(clock))}
}

func turnAt(clock string, usage *model.TokenUsage) model.TranscriptTurn {
	return model.TranscriptTurn{EventType: model.EntryAssistant, Timestamp: strPtr(iso(clock)), Usage: usage}
}
