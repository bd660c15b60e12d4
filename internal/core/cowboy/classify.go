package cowboy

import (
	"time"

	"github.com/penwyp/go-claude-timeline/internal/core/timeline"
	"github.com/penwyp/go-claude-timeline/internal/util"
)

// Gap is the span between two known intervals, or before the first or after
// the last one. It doubles as the grouping key.
type Gap struct {
	Start time.Time
	End   time.Time
}

// gapKey compares instants rather than time.Time representations
type gapKey struct {
	start int64
	end   int64
}

func (g Gap) key() gapKey {
	return gapKey{start: g.Start.UnixNano(), end: g.End.UnixNano()}
}

// Classifier assigns uncovered instants to gaps. Both open-ended anchors are
// fixed at construction so that every event of the leading or trailing gap
// lands under the same key.
type Classifier struct {
	intervals []KnownInterval

	now time.Time

	leadingStart time.Time
	hasLeading   bool
}

// NewClassifier prepares a classifier over start-sorted intervals. events
// must be the full timeline of the pass; the earliest uncovered event that
// precedes the first interval becomes the leading gap start.
func NewClassifier(intervals []KnownInterval, events []timeline.Event, now time.Time) *Classifier {
	c := &Classifier{intervals: intervals, now: now.Round(0).UTC()}
	if len(intervals) == 0 {
		return c
	}

	first := intervals[0].Start
	for _, e := range events {
		if !e.At.Before(first) || Covered(intervals, e.At) {
			continue
		}
		if !c.hasLeading || e.At.Before(c.leadingStart) {
			c.leadingStart = e.At
			c.hasLeading = true
		}
	}
	return c
}

// Now returns the wall-clock anchor of the trailing gap
func (c *Classifier) Now() time.Time {
	return c.now
}

// Classify returns the gap t belongs to. ok is false when t is covered by a
// known interval or cannot be bounded by any gap.
func (c *Classifier) Classify(t time.Time) (gap Gap, ok bool) {
	if len(c.intervals) == 0 || Covered(c.intervals, t) {
		return Gap{}, false
	}
	return c.resolve(t)
}

func (c *Classifier) resolve(t time.Time) (Gap, bool) {
	n := len(c.intervals)
	for i := 0; i < n; i++ {
		currentEnd := c.intervals[i].End
		if i+1 < n {
			nextStart := c.intervals[i+1].Start
			if util.WithinOpen(t, currentEnd, nextStart) {
				return Gap{Start: currentEnd, End: nextStart}, true
			}
			continue
		}
		if t.After(currentEnd) {
			// Events stamped at or after the captured now would produce a
			// gap whose end precedes its own contents.
			if !t.Before(c.now) {
				return Gap{}, false
			}
			return Gap{Start: currentEnd, End: c.now}, true
		}
	}

	if c.hasLeading && t.Before(c.intervals[0].Start) {
		return Gap{Start: c.leadingStart, End: c.intervals[0].Start}, true
	}
	return Gap{}, false
}
