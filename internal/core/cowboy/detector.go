package cowboy

import (
	"errors"
	"fmt"
	"time"

	"github.com/penwyp/go-claude-timeline/internal/core/model"
	"github.com/penwyp/go-claude-timeline/internal/core/timeline"
	"github.com/penwyp/go-claude-timeline/internal/data/archive"
	"github.com/penwyp/go-claude-timeline/internal/util"
)

// ArchiveWriter persists synthetic archives. Write must fail with
// archive.ErrArchiveExists when the id is already taken.
type ArchiveWriter interface {
	Exists(workflowID string) (bool, error)
	Write(a model.WorkflowArchive) error
}

// Options configures a Detector
type Options struct {
	Logger util.LoggerInterface
	// Clock supplies the trailing gap anchor. Defaults to time.Now.
	Clock  func() time.Time
	DryRun bool
}

// Detector finds activity outside known workflows and records it as
// synthetic cowboy archives
type Detector struct {
	logger   util.LoggerInterface
	clock    func() time.Time
	dryRun   bool
	timeline *timeline.TimelineBuilder
}

// NewDetector creates a detector from options
func NewDetector(opts Options) *Detector {
	logger := opts.Logger
	if logger == nil {
		logger = util.NewNopLogger()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Detector{
		logger:   logger,
		clock:    clock,
		dryRun:   opts.DryRun,
		timeline: timeline.NewTimelineBuilder(logger),
	}
}

// Detect groups the uncovered activity of src by gap. It fails only when an
// existing archive cannot be turned into a known interval.
func (d *Detector) Detect(src timeline.Sources, archives []model.WorkflowArchive) ([]ActivityGroup, error) {
	intervals, err := BuildIndex(archives)
	if err != nil {
		return nil, fmt.Errorf("build known interval index: %w", err)
	}

	events := d.timeline.Build(src)
	if len(intervals) == 0 {
		d.logger.Debug("no known workflows, nothing bounds a gap", util.F("events", len(events)))
		return []ActivityGroup{}, nil
	}

	classifier := NewClassifier(intervals, events, d.clock())
	groups := GroupEvents(events, classifier)

	d.logger.Debug("gap detection finished",
		util.F("events", len(events)),
		util.F("intervals", len(intervals)),
		util.F("groups", len(groups)),
		util.F("now", util.FormatTimestamp(classifier.Now())))
	return groups, nil
}

// Run detects gaps and writes one synthetic archive per group. A group that
// fails to build or write is recorded in the report and the remaining
// groups are still processed.
func (d *Detector) Run(src timeline.Sources, archives []model.WorkflowArchive, store ArchiveWriter) (*Report, error) {
	groups, err := d.Detect(src, archives)
	if err != nil {
		return nil, err
	}

	report := &Report{
		GapsFound: len(groups),
		DryRun:    d.dryRun,
		Outcomes:  make([]Outcome, 0, len(groups)),
	}
	for _, group := range groups {
		report.add(d.process(group, store))
	}

	d.logger.Info("cowboy detection complete",
		util.F("gaps", report.GapsFound),
		util.F("created", report.Created),
		util.F("skipped", report.Skipped),
		util.F("would_create", report.WouldCreate),
		util.F("failed", report.Failed),
		util.F("dry_run", d.dryRun))
	return report, nil
}

func (d *Detector) process(group ActivityGroup, store ArchiveWriter) Outcome {
	outcome := Outcome{
		WorkflowID: util.FormatTimestamp(group.Start),
		Start:      group.Start,
		End:        group.End,
		Events:     group.Len(),
	}
	log := d.logger.With(util.F("workflow_id", outcome.WorkflowID))

	a, err := BuildSyntheticArchive(group)
	if err != nil {
		log.Error("build synthetic archive failed", util.F("error", err))
		return outcome.fail(err)
	}
	outcome.Totals = a.Totals

	exists, err := store.Exists(a.WorkflowID)
	if err != nil {
		log.Error("check archive failed", util.F("error", err))
		return outcome.fail(err)
	}
	if exists {
		log.Debug("archive already exists")
		outcome.Status = StatusSkipped
		return outcome
	}

	if d.dryRun {
		log.Info("would create synthetic archive", util.F("events", outcome.Events))
		outcome.Status = StatusWouldCreate
		return outcome
	}

	if err := store.Write(a); err != nil {
		if errors.Is(err, archive.ErrArchiveExists) {
			log.Debug("archive created concurrently")
			outcome.Status = StatusSkipped
			return outcome
		}
		log.Error("write synthetic archive failed", util.F("error", err))
		return outcome.fail(err)
	}

	log.Info("created synthetic archive", util.F("events", outcome.Events))
	outcome.Status = StatusCreated
	return outcome
}
