package detect

import (
	"fmt"
	"time"

	"github.com/penwyp/go-claude-timeline/internal/config"
	"github.com/penwyp/go-claude-timeline/internal/core/cowboy"
	"github.com/penwyp/go-claude-timeline/internal/data/archive"
	"github.com/penwyp/go-claude-timeline/internal/util"
)

// Options configures an Orchestrator
type Options struct {
	DryRun bool
	// RefreshCache discards the transcript cache before reading sources
	RefreshCache bool
	Logger       util.LoggerInterface
	Clock        func() time.Time
}

// Orchestrator runs one detection pass over the configured state directory
type Orchestrator struct {
	dryRun       bool
	refreshCache bool
	cacheDir     string
	logger       util.LoggerInterface
	dataLoader   *DataLoader
	store        *archive.Store
	detector     *cowboy.Detector
}

// NewOrchestrator creates a new Orchestrator instance
func NewOrchestrator(cfg config.Config, opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = util.NewNopLogger()
	}
	return &Orchestrator{
		dryRun:       opts.DryRun,
		refreshCache: opts.RefreshCache,
		cacheDir:     cfg.CacheDir(),
		logger:       logger,
		dataLoader:   NewDataLoader(cfg),
		store:        archive.NewStore(cfg.ArchiveDir(), logger),
		detector: cowboy.NewDetector(cowboy.Options{
			Logger: logger,
			Clock:  opts.Clock,
			DryRun: opts.DryRun,
		}),
	}
}

// Run holds the archive directory lock for the whole pass so concurrent
// runs serialize. Dry runs take no lock and write nothing.
func (o *Orchestrator) Run() (*cowboy.Report, error) {
	if !o.dryRun {
		lock, err := archive.AcquireLock(o.store.Dir())
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				o.logger.Warn("Failed to release archive lock", util.F("error", err.Error()))
			}
		}()
	}

	archives, err := o.store.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read archives: %w", err)
	}

	if o.refreshCache {
		if err := o.dataLoader.ClearCache(); err != nil {
			util.LogErrorf("failed to clear transcript cache %s: %v", o.cacheDir, err)
			return nil, fmt.Errorf("failed to clear transcript cache: %w", err)
		}
		util.LogInfof("Cleared transcript cache %s", o.cacheDir)
	}

	src, err := o.dataLoader.Load()
	if err != nil {
		return nil, err
	}

	o.logger.Info("Starting cowboy detection",
		util.F("archives", len(archives)),
		util.F("events", src.Len()),
		util.F("dry_run", o.dryRun))

	report, err := o.detector.Run(src, archives, o.store)
	if err != nil {
		return nil, err
	}

	o.logger.Info("Cowboy detection finished",
		util.F("gaps", report.GapsFound),
		util.F("created", report.Created),
		util.F("skipped", report.Skipped),
		util.F("failed", report.Failed))
	return report, nil
}
