package cowboy

import (
	"sort"
	"time"

	"github.com/penwyp/go-claude-timeline/internal/core/model"
	"github.com/penwyp/go-claude-timeline/internal/core/timeline"
)

// ActivityGroup collects the uncovered events of one gap
type ActivityGroup struct {
	Start time.Time
	End   time.Time

	ShellCommands []model.ShellCommand
	FileEdits     []model.FileEdit
	GitCommits    []model.GitCommit
	Transcript    []model.TranscriptTurn
}

// Len returns the number of events in the group
func (g *ActivityGroup) Len() int {
	return len(g.ShellCommands) + len(g.FileEdits) + len(g.GitCommits) + len(g.Transcript)
}

func (g *ActivityGroup) add(e timeline.Event) {
	switch e.Kind {
	case timeline.KindShellCommand:
		g.ShellCommands = append(g.ShellCommands, *e.Shell)
	case timeline.KindFileEdit:
		g.FileEdits = append(g.FileEdits, *e.Edit)
	case timeline.KindGitCommit:
		g.GitCommits = append(g.GitCommits, *e.Commit)
	case timeline.KindTranscriptTurn:
		g.Transcript = append(g.Transcript, *e.Turn)
	}
}

// GroupEvents routes every classifiable event into the group of its gap and
// returns the groups ordered by start. Covered events are discarded and a
// group exists only once an event lands in it.
func GroupEvents(events []timeline.Event, c *Classifier) []ActivityGroup {
	groups := make(map[gapKey]*ActivityGroup)

	for _, e := range events {
		gap, ok := c.Classify(e.At)
		if !ok {
			continue
		}
		key := gap.key()
		group, exists := groups[key]
		if !exists {
			group = &ActivityGroup{Start: gap.Start, End: gap.End}
			groups[key] = group
		}
		group.add(e)
	}

	result := make([]ActivityGroup, 0, len(groups))
	for _, g := range groups {
		result = append(result, *g)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Start.Equal(result[j].Start) {
			return result[i].End.Before(result[j].End)
		}
		return result[i].Start.Before(result[j].Start)
	})
	return result
}
