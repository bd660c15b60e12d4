package timeline

import (
	"sort"

	"github.com/penwyp/go-claude-timeline/internal/util"
)

// TimelineBuilder builds a unified timeline from the activity sources
type TimelineBuilder struct {
	logger util.LoggerInterface
}

// NewTimelineBuilder creates a new timeline builder. A nil logger discards output.
func NewTimelineBuilder(logger util.LoggerInterface) *TimelineBuilder {
	if logger == nil {
		logger = util.NewNopLogger()
	}
	return &TimelineBuilder{logger: logger}
}

// Normalize converts every source record with a parseable timestamp into an
// Event. Records without one are dropped. The result is unordered.
func (tb *TimelineBuilder) Normalize(src Sources) []Event {
	events := make([]Event, 0, src.Len())
	dropped := 0

	for _, cmd := range src.ShellCommands {
		at, ok := util.ParseOptionalTimestamp(cmd.Timestamp)
		if !ok {
			dropped++
			continue
		}
		events = append(events, NewShellEvent(at, cmd))
	}

	for _, edit := range src.FileEdits {
		at, ok := util.ParseOptionalTimestamp(edit.Timestamp)
		if !ok {
			dropped++
			continue
		}
		events = append(events, NewEditEvent(at, edit))
	}

	for _, commit := range src.GitCommits {
		at, err := util.ParseTimestamp(commit.Timestamp)
		if err != nil {
			dropped++
			continue
		}
		events = append(events, NewCommitEvent(at, commit))
	}

	for _, turn := range src.Transcript {
		at, ok := util.ParseOptionalTimestamp(turn.Timestamp)
		if !ok {
			dropped++
			continue
		}
		events = append(events, NewTurnEvent(at, turn))
	}

	if dropped > 0 {
		tb.logger.Debug("dropped records without usable timestamp",
			util.F("dropped", dropped), util.F("kept", len(events)))
	}
	return events
}

// Build normalizes the sources and returns them in chronological order
func (tb *TimelineBuilder) Build(src Sources) []Event {
	events := tb.Normalize(src)
	SortChronologically(events)
	return events
}

// SortChronologically orders events by instant ascending. Ties keep their
// input order.
func SortChronologically(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].At.Before(events[j].At)
	})
}
