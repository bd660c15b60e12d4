package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/go-claude-timeline/internal/util"
)

// transcriptSuffixes are matched case-insensitively
var transcriptSuffixes = []string{".jsonl", ".jsonl.zst"}

// FileScanner finds transcript files below a directory
type FileScanner struct {
	baseDir  string
	suffixes []string
}

// NewFileScanner creates a new FileScanner instance
func NewFileScanner(baseDir string) *FileScanner {
	return &FileScanner{
		baseDir:  baseDir,
		suffixes: transcriptSuffixes,
	}
}

func (s *FileScanner) matches(path string) bool {
	lower := strings.ToLower(path)
	for _, suffix := range s.suffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// Scan walks the directory and returns every transcript path in lexical
// order. Unreadable entries and a missing directory are skipped.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	files := make([]string, 0)
	dirCount := 0
	totalCount := 0

	if s.baseDir == "" {
		return files, nil
	}

	util.LogDebug("start scanning directory", util.F("dir", s.baseDir))

	err := filepath.Walk(s.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			util.LogDebug("skip file (error)", util.F("path", path), util.F("error", err))
			return nil
		}

		if info.IsDir() {
			dirCount++
			return nil
		}

		totalCount++
		if s.matches(path) {
			files = append(files, path)
		}
		return nil
	})

	sort.Strings(files)
	util.LogDebug("file scan completed",
		util.F("duration", time.Since(start)),
		util.F("dirs", dirCount),
		util.F("files", totalCount),
		util.F("transcripts", len(files)))

	return files, err
}
