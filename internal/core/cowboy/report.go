package cowboy

import (
	"time"

	"github.com/penwyp/go-claude-timeline/internal/core/model"
)

// Status is the result of processing one activity group
type Status string

const (
	StatusCreated     Status = "created"
	StatusSkipped     Status = "skipped"
	StatusWouldCreate Status = "would_create"
	StatusFailed      Status = "failed"
)

// Outcome describes what happened to one group
type Outcome struct {
	WorkflowID string
	Start      time.Time
	End        time.Time
	Events     int
	Totals     model.WorkflowTotals
	Status     Status
	Err        error
}

func (o Outcome) fail(err error) Outcome {
	o.Status = StatusFailed
	o.Err = err
	return o
}

// Report summarizes a detection pass
type Report struct {
	GapsFound   int
	Created     int
	Skipped     int
	WouldCreate int
	Failed      int
	DryRun      bool
	Outcomes    []Outcome
}

func (r *Report) add(o Outcome) {
	switch o.Status {
	case StatusCreated:
		r.Created++
	case StatusSkipped:
		r.Skipped++
	case StatusWouldCreate:
		r.WouldCreate++
	case StatusFailed:
		r.Failed++
	}
	r.Outcomes = append(r.Outcomes, o)
}

// HasFailures reports whether any group could not be written
func (r *Report) HasFailures() bool {
	return r.Failed > 0
}
