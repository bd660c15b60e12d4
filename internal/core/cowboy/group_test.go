package cowboy

import (
	"testing"

	"github.com/penwyp/go-claude-timeline/internal/core/model"
	"github.com/penwyp/go-claude-timeline/internal/core/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupEventsRoutesByKind(t *testing.T) {
	archives := []model.WorkflowArchive{
		knownArchive("09:00:00", "09:30:00"),
		knownArchive("11:00:00", "11:30:00"),
	}
	src := timeline.Sources{
		ShellCommands: []model.ShellCommand{shellAt("10:00:00", "make")},
		FileEdits:     []model.FileEdit{editAt("10:01:00", "main.go")},
		GitCommits:    []model.GitCommit{commitAt("10:02:00")},
		Transcript:    []model.TranscriptTurn{turnAt("10:03:00", nil), turnAt("12:00:00", nil)},
	}
	events := timeline.NewTimelineBuilder(nil).Build(src)

	groups := GroupEvents(events, newTestClassifier(t, archives, events))
	require.Len(t, groups, 2)

	between := groups[0]
	assert.True(t, between.Start.Equal(ts(t, "09:30:00")))
	assert.Len(t, between.ShellCommands, 1)
	assert.Len(t, between.FileEdits, 1)
	assert.Len(t, between.GitCommits, 1)
	assert.Len(t, between.Transcript, 1)
	assert.Equal(t, 4, between.Len())

	trailing := groups[1]
	assert.True(t, trailing.Start.Equal(ts(t, "11:30:00")))
	assert.True(t, trailing.End.Equal(fixedNow))
	assert.Equal(t, 1, trailing.Len())
}

func TestGroupEventsPartition(t *testing.T) {
	archives := []model.WorkflowArchive{
		knownArchive("09:00:00", "09:30:00"),
		knownArchive("11:00:00", "11:30:00"),
		knownArchive("15:00:00", "15:30:00"),
	}
	clocks := []string{
		"07:00:00", "08:59:59", "09:00:00", "09:15:00", "09:30:00", "09:30:01",
		"10:59:59", "11:00:00", "11:45:00", "14:59:00", "15:30:00", "16:00:00",
		"17:59:59", "18:00:00", "20:00:00",
	}
	events := commitEvents(t, clocks...)
	intervals, err := BuildIndex(archives)
	require.NoError(t, err)

	groups := GroupEvents(events, NewClassifier(intervals, events, fixedNow))

	grouped := 0
	for i, g := range groups {
		require.True(t, g.Start.Before(g.End), "group %d not bounded", i)
		require.NotZero(t, g.Len())
		if i > 0 {
			assert.False(t, g.Start.Before(groups[i-1].Start), "groups out of order")
		}
		for _, c := range g.GitCommits {
			at := ts(t, c.Timestamp[len("2025-01-04T"):len(c.Timestamp)-1])
			assert.False(t, Covered(intervals, at), "covered event %s grouped", c.Timestamp)
			assert.False(t, at.Before(g.Start))
			assert.True(t, at.Before(g.End))
			grouped++
		}
	}

	// 07:00, 08:59:59 leading; 09:30:01, 10:59:59 between A and B;
	// 11:45, 14:59 between B and C; 16:00, 17:59:59 trailing
	assert.Equal(t, 8, grouped)
	require.Len(t, groups, 4)
	assert.True(t, groups[0].Start.Equal(ts(t, "07:00:00")))
	assert.True(t, groups[3].End.Equal(fixedNow))
}

func TestGroupEventsProducesNoEmptyGroups(t *testing.T) {
	archives := []model.WorkflowArchive{
		knownArchive("09:00:00", "09:30:00"),
		knownArchive("11:00:00", "11:30:00"),
	}
	events := commitEvents(t, "09:10:00", "11:10:00")

	groups := GroupEvents(events, newTestClassifier(t, archives, events))
	assert.Empty(t, groups)
}
