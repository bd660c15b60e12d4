package parser

import (
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-claude-timeline/internal/core/model"
	"github.com/penwyp/go-claude-timeline/internal/util"
)

// TurnCache persists parsed turns across runs
type TurnCache interface {
	Get(path string) ([]model.TranscriptTurn, bool)
	Set(path string, state util.FileState, turns []model.TranscriptTurn) error
}

// Parser reads transcript files, plain or zstd-compressed, and keeps the
// assistant turns of each file cached by path.
type Parser struct {
	concurrency int
	mu          sync.Mutex
	cache       map[string][]model.TranscriptTurn
	persistent  TurnCache
}

// ParseResult represents the result of parsing a single file.
type ParseResult struct {
	File  string
	Turns []model.TranscriptTurn
	Error error
}

// NewParser creates a new Parser instance.
func NewParser(concurrency int) *Parser {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Parser{
		concurrency: concurrency,
		cache:       make(map[string][]model.TranscriptTurn),
	}
}

// WithCache makes the parser consult and fill a persistent cache
func (p *Parser) WithCache(c TurnCache) *Parser {
	p.persistent = c
	return p
}

// ParseFile returns the assistant turns of one transcript. Lines of other
// types and invalid JSON are skipped.
func (p *Parser) ParseFile(path string) ([]model.TranscriptTurn, error) {
	p.mu.Lock()
	if cached, ok := p.cache[path]; ok {
		p.mu.Unlock()
		return cached, nil
	}
	p.mu.Unlock()

	var (
		snapshot  util.FileState
		cacheable bool
	)
	if p.persistent != nil {
		if cached, ok := p.persistent.Get(path); ok {
			p.remember(path, cached)
			return cached, nil
		}
		var err error
		snapshot, err = util.SnapshotFile(path)
		cacheable = err == nil
	}

	turns := make([]model.TranscriptTurn, 0)
	err := scanLines(path, func(line string, lineNo int) {
		var entry model.TranscriptEntry
		if err := sonic.UnmarshalString(line, &entry); err != nil {
			util.LogDebug("skip invalid transcript line", util.F("path", path), util.F("line", lineNo), util.F("error", err))
			return
		}
		if entry.Type != model.EntryAssistant {
			return
		}
		turns = append(turns, entry.Turn())
	})
	if err != nil {
		return nil, err
	}

	p.remember(path, turns)
	if cacheable {
		if err := p.persistent.Set(path, snapshot, turns); err != nil {
			util.LogWarnf("failed to cache transcript %s: %v", path, err)
		}
	}
	return turns, nil
}

func (p *Parser) remember(path string, turns []model.TranscriptTurn) {
	p.mu.Lock()
	p.cache[path] = turns
	p.mu.Unlock()
}

// ParseFiles parses multiple files concurrently and returns a channel of ParseResult.
func (p *Parser) ParseFiles(files []string) <-chan ParseResult {
	start := time.Now()
	results := make(chan ParseResult, len(files))
	var wg sync.WaitGroup

	util.LogDebugf("start concurrent parsing of %d files, concurrency: %d", len(files), p.concurrency)

	semaphore := make(chan struct{}, p.concurrency)

	for _, file := range files {
		wg.Add(1)
		go func(f string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			turns, err := p.ParseFile(f)
			results <- ParseResult{File: f, Turns: turns, Error: err}
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
		util.LogDebugf("concurrent parsing finished, total duration: %v", time.Since(start))
	}()

	return results
}

// CollectTurns parses files concurrently and concatenates their turns in
// the order of files. Unreadable files are skipped with a warning; an error
// is returned only when every file failed.
func (p *Parser) CollectTurns(files []string) ([]model.TranscriptTurn, error) {
	byFile := make(map[string][]model.TranscriptTurn, len(files))
	failed := 0
	var lastErr error

	for result := range p.ParseFiles(files) {
		if result.Error != nil {
			failed++
			lastErr = result.Error
			util.LogWarn("skipping unreadable transcript", util.F("path", result.File), util.F("error", result.Error))
			continue
		}
		byFile[result.File] = result.Turns
	}

	if len(files) > 0 && failed == len(files) {
		util.LogError("no transcript could be read", util.F("files", len(files)), util.F("error", lastErr))
		return nil, fmt.Errorf("no transcript could be read: %w", lastErr)
	}

	turns := make([]model.TranscriptTurn, 0)
	for _, f := range files {
		turns = append(turns, byFile[f]...)
	}
	return turns, nil
}
