package cowboy

import (
	"fmt"
	"sort"
	"time"

	"github.com/penwyp/go-claude-timeline/internal/core/model"
	"github.com/penwyp/go-claude-timeline/internal/util"
)

// KnownInterval is the closed time span of one archived workflow
type KnownInterval struct {
	WorkflowID string
	Start      time.Time
	End        time.Time
}

// Contains reports whether t falls inside the interval, bounds included
func (iv KnownInterval) Contains(t time.Time) bool {
	return util.WithinClosed(t, iv.Start, iv.End)
}

// BuildIndex derives one interval per archive, real and synthetic alike, and
// returns them sorted by start. Any unparseable workflow id or completion
// time fails the whole index.
func BuildIndex(archives []model.WorkflowArchive) ([]KnownInterval, error) {
	intervals := make([]KnownInterval, 0, len(archives))

	for _, a := range archives {
		start, err := util.ParseTimestamp(a.WorkflowID)
		if err != nil {
			return nil, fmt.Errorf("archive %q: parse workflow id: %w", a.WorkflowID, err)
		}
		end, err := util.ParseTimestamp(a.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("archive %q: parse completed_at: %w", a.WorkflowID, err)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("archive %q: completed_at %s precedes start", a.WorkflowID, a.CompletedAt)
		}
		intervals = append(intervals, KnownInterval{WorkflowID: a.WorkflowID, Start: start, End: end})
	}

	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})
	return intervals, nil
}

// Covered reports whether t lies within any interval. Intervals may overlap,
// so every one is checked.
func Covered(intervals []KnownInterval, t time.Time) bool {
	for _, iv := range intervals {
		if iv.Contains(t) {
			return true
		}
	}
	return false
}
