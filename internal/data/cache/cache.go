package cache

import (
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-claude-timeline/internal/core/model"
	"github.com/penwyp/go-claude-timeline/internal/util"
)

type CacheMissReason int

const (
	MissReasonNone CacheMissReason = iota
	MissReasonError
	MissReasonInode
	MissReasonSize
	MissReasonModTime
	MissReasonFingerprint
	MissReasonNoFingerprint
	MissReasonNotFound
)

// fingerprintWindow is how recently a file must have changed for the content
// fingerprint to be checked on top of inode, size and mtime
const fingerprintWindow = 48 * time.Hour

// entry is the on-disk form of one cached transcript
type entry struct {
	FilePath           string                 `json:"file_path"`
	LastModified       int64                  `json:"last_modified"`
	FileSize           int64                  `json:"file_size"`
	Inode              uint64                 `json:"inode"`
	ContentFingerprint string                 `json:"content_fingerprint"`
	Turns              []model.TranscriptTurn `json:"turns"`
}

// FileCache persists the parsed turns of transcript files between runs. An
// entry is served only while the transcript is unchanged.
type FileCache struct {
	baseDir     string
	mu          sync.RWMutex
	memoryCache map[string]*entry
}

func NewFileCache(baseDir string) *FileCache {
	return &FileCache{
		baseDir:     baseDir,
		memoryCache: make(map[string]*entry),
	}
}

// cacheName derives the cache file name from the transcript path. The
// session id keeps names readable, the path checksum keeps them unique.
func cacheName(filePath string) string {
	base := filepath.Base(filePath)
	base = strings.TrimSuffix(base, ".zst")
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s-%08x.json", base, crc32.ChecksumIEEE([]byte(filePath)))
}

// Get returns the cached turns of filePath if the file has not changed
func (c *FileCache) Get(filePath string) ([]model.TranscriptTurn, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mem, ok := c.memoryCache[filePath]; ok {
		if reason := validate(mem); reason == MissReasonNone {
			return mem.Turns, true
		}
		delete(c.memoryCache, filePath)
	}

	e, reason := c.getFromFile(filePath)
	if reason != MissReasonNone {
		return nil, false
	}
	c.memoryCache[filePath] = e
	return e.Turns, true
}

func (c *FileCache) getFromFile(filePath string) (*entry, CacheMissReason) {
	data, err := os.ReadFile(filepath.Join(c.baseDir, cacheName(filePath)))
	if err != nil {
		return nil, MissReasonNotFound
	}

	var e entry
	if err := sonic.Unmarshal(data, &e); err != nil {
		return nil, MissReasonError
	}
	if e.FilePath != filePath {
		return nil, MissReasonNotFound
	}
	if reason := validate(&e); reason != MissReasonNone {
		return nil, reason
	}
	return &e, MissReasonNone
}

func validate(e *entry) CacheMissReason {
	current, err := util.GetFileInfo(e.FilePath)
	if err != nil {
		util.LogDebug(fmt.Sprintf("Cache validation failed for %s: %v", e.FilePath, err))
		return MissReasonError
	}

	if current.Inode != e.Inode {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: inode changed", e.FilePath))
		return MissReasonInode
	}
	if current.Size != e.FileSize {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: size changed (cached: %d, current: %d)",
			e.FilePath, e.FileSize, current.Size))
		return MissReasonSize
	}
	if current.ModTime != e.LastModified {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: modtime changed", e.FilePath))
		return MissReasonModTime
	}

	if time.Since(time.Unix(0, current.ModTime)) > fingerprintWindow {
		return MissReasonNone
	}

	if e.ContentFingerprint == "" {
		return MissReasonNoFingerprint
	}
	fingerprint, err := util.CalculateFileFingerprint(e.FilePath)
	if err != nil {
		return MissReasonNoFingerprint
	}
	if fingerprint != e.ContentFingerprint {
		util.LogDebug(fmt.Sprintf("Cache invalidated for %s: fingerprint mismatch", e.FilePath))
		return MissReasonFingerprint
	}
	return MissReasonNone
}

// Set stores the turns parsed from filePath. state must be taken before the
// file was read; if the file has grown since, the entry is already stale and
// the next Get re-parses.
func (c *FileCache) Set(filePath string, state util.FileState, turns []model.TranscriptTurn) error {
	e := &entry{
		FilePath:           filePath,
		LastModified:       state.ModTime,
		FileSize:           state.Size,
		Inode:              state.Inode,
		ContentFingerprint: state.Fingerprint,
		Turns:              turns,
	}

	data, err := sonic.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode cache entry for %s: %w", filePath, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.baseDir, 0755); err != nil {
		return err
	}
	target := filepath.Join(c.baseDir, cacheName(filePath))
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return err
	}

	c.memoryCache[filePath] = e
	return nil
}

// Clear drops every cached entry
func (c *FileCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.memoryCache = make(map[string]*entry)

	entries, err := os.ReadDir(c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, de := range entries {
		if !de.IsDir() && filepath.Ext(de.Name()) == ".json" {
			if err := os.Remove(filepath.Join(c.baseDir, de.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}
