package detect

import (
	"fmt"
	"os"

	"github.com/penwyp/go-claude-timeline/internal/config"
	"github.com/penwyp/go-claude-timeline/internal/core/model"
	"github.com/penwyp/go-claude-timeline/internal/core/timeline"
	"github.com/penwyp/go-claude-timeline/internal/data/cache"
	"github.com/penwyp/go-claude-timeline/internal/data/gitlog"
	"github.com/penwyp/go-claude-timeline/internal/data/parser"
	"github.com/penwyp/go-claude-timeline/internal/data/scanner"
	"github.com/penwyp/go-claude-timeline/internal/util"
)

// DataLoader reads every activity source configured for a pass
type DataLoader struct {
	hooksFile string
	scanner   FileLister
	parser    TurnCollector
	commits   CommitSource
	cache     *cache.FileCache
}

// NewDataLoader wires the readers selected by cfg. Transcripts named by hook
// events are always read; a transcript directory adds every file under it.
// Git is read only when enabled.
func NewDataLoader(cfg config.Config) *DataLoader {
	p := parser.NewParser(cfg.Sources.Concurrency)
	dl := &DataLoader{
		hooksFile: cfg.HooksFile(),
		parser:    p,
	}
	if cfg.Cache.Enabled && cfg.CacheDir() != "" {
		dl.cache = cache.NewFileCache(cfg.CacheDir())
		p.WithCache(dl.cache)
	}
	if dir := cfg.TranscriptsDir(); dir != "" {
		dl.scanner = scanner.NewFileScanner(dir)
	}
	if cfg.Sources.Git {
		dl.commits = gitlog.NewReader(cfg.RepoDir())
	}
	return dl
}

// Load returns the activity of all sources
func (dl *DataLoader) Load() (timeline.Sources, error) {
	var src timeline.Sources

	hooks, err := parser.ParseHooks(dl.hooksFile)
	if err != nil {
		return src, fmt.Errorf("failed to read hooks: %w", err)
	}
	src.ShellCommands = hooks.ShellCommands
	src.FileEdits = hooks.FileEdits

	if src.Transcript, err = dl.loadTranscripts(hooks.TranscriptPaths); err != nil {
		return src, err
	}

	if src.GitCommits, err = dl.loadCommits(); err != nil {
		return src, err
	}

	util.LogInfo("Sources loaded",
		util.F("shell_commands", len(src.ShellCommands)),
		util.F("file_edits", len(src.FileEdits)),
		util.F("transcript_turns", len(src.Transcript)),
		util.F("git_commits", len(src.GitCommits)))
	return src, nil
}

func (dl *DataLoader) loadTranscripts(hookPaths []string) ([]model.TranscriptTurn, error) {
	var files []string
	if dl.scanner != nil {
		scanned, err := dl.scanner.Scan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan transcripts: %w", err)
		}
		files = scanned
	}
	files = mergeTranscriptPaths(files, hookPaths)
	util.LogDebug(fmt.Sprintf("Found %d transcript files", len(files)))
	if len(files) == 0 {
		return []model.TranscriptTurn{}, nil
	}

	turns, err := dl.parser.CollectTurns(files)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcripts: %w", err)
	}
	return turns, nil
}

// ClearCache drops every cached transcript so the next Load re-parses them
func (dl *DataLoader) ClearCache() error {
	if dl.cache == nil {
		return nil
	}
	return dl.cache.Clear()
}

// mergeTranscriptPaths appends the hook-named transcripts that exist and are
// not already scanned. Sessions whose transcript was deleted are skipped.
func mergeTranscriptPaths(scanned, fromHooks []string) []string {
	seen := make(map[string]bool, len(scanned))
	for _, f := range scanned {
		seen[f] = true
	}
	for _, f := range fromHooks {
		if seen[f] {
			continue
		}
		seen[f] = true
		if _, err := os.Stat(f); err != nil {
			util.LogDebugf("skipping transcript from hooks %s: %v", f, err)
			continue
		}
		scanned = append(scanned, f)
	}
	return scanned
}

func (dl *DataLoader) loadCommits() ([]model.GitCommit, error) {
	if dl.commits == nil {
		return []model.GitCommit{}, nil
	}
	commits, err := dl.commits.Commits(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read git history: %w", err)
	}
	return commits, nil
}
