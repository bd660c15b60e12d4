package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-claude-timeline/internal/core/model"
	"github.com/penwyp/go-claude-timeline/internal/util"
)

var (
	// ErrArchiveExists is returned by Write when the target file is already present
	ErrArchiveExists = errors.New("archive already exists")
	// ErrInvalidWorkflowID is returned for ids that are not safe RFC3339 file names
	ErrInvalidWorkflowID = errors.New("invalid workflow id")
)

const fileExt = ".json"

// Store reads and writes workflow archives as one JSON file per workflow
type Store struct {
	dir    string
	logger util.LoggerInterface
}

// NewStore creates a store rooted at dir. The directory is created lazily on
// the first write.
func NewStore(dir string, logger util.LoggerInterface) *Store {
	if logger == nil {
		logger = util.NewNopLogger()
	}
	return &Store{dir: dir, logger: logger}
}

// Dir returns the archive directory
func (s *Store) Dir() string {
	return s.dir
}

// ValidateWorkflowID rejects ids that could escape the archive directory or
// that do not parse as an RFC3339 instant
func ValidateWorkflowID(id string) error {
	if strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w %q: contains path separator", ErrInvalidWorkflowID, id)
	}
	if strings.Contains(id, "..") {
		return fmt.Errorf("%w %q: contains path traversal", ErrInvalidWorkflowID, id)
	}
	if _, err := util.ParseTimestamp(id); err != nil {
		return fmt.Errorf("%w %q: not an ISO 8601 timestamp", ErrInvalidWorkflowID, id)
	}
	return nil
}

// Path returns the file path of the archive with the given id
func (s *Store) Path(id string) string {
	return filepath.Join(s.dir, id+fileExt)
}

// Exists reports whether an archive file with the given id is present
func (s *Store) Exists(id string) (bool, error) {
	if err := ValidateWorkflowID(id); err != nil {
		return false, err
	}
	_, err := os.Stat(s.Path(id))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat archive %s: %w", s.Path(id), err)
}

// ReadAll loads every archive in the directory ordered by workflow id.
// Unreadable or corrupt files are skipped with a warning; a missing
// directory yields no archives.
func (s *Store) ReadAll() ([]model.WorkflowArchive, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.WorkflowArchive{}, nil
		}
		return nil, fmt.Errorf("read archive directory %s: %w", s.dir, err)
	}

	archives := make([]model.WorkflowArchive, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != fileExt {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("skipping unreadable archive", util.F("path", path), util.F("error", err))
			continue
		}
		var a model.WorkflowArchive
		if err := sonic.Unmarshal(data, &a); err != nil {
			s.logger.Warn("skipping corrupted archive", util.F("path", path), util.F("error", err))
			continue
		}
		archives = append(archives, a)
	}

	sort.Slice(archives, func(i, j int) bool {
		return archives[i].WorkflowID < archives[j].WorkflowID
	})
	return archives, nil
}

// Encode renders an archive in its on-disk form
func Encode(a model.WorkflowArchive) ([]byte, error) {
	return sonic.ConfigStd.MarshalIndent(a, "", "  ")
}

// Write persists a new archive. The content is written to a temporary file in
// the same directory, synced, and then linked to the final name, which fails
// if that name already exists. Readers never observe a partial file and two
// writers can never both create the same archive.
func (s *Store) Write(a model.WorkflowArchive) error {
	if err := ValidateWorkflowID(a.WorkflowID); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create archive directory %s: %w", s.dir, err)
	}

	data, err := Encode(a)
	if err != nil {
		return fmt.Errorf("encode archive %s: %w", a.WorkflowID, err)
	}

	target := s.Path(a.WorkflowID)
	tmp, err := os.CreateTemp(s.dir, "."+a.WorkflowID+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp archive in %s: %w", s.dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp archive %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp archive %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp archive %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("chmod temp archive %s: %w", tmpPath, err)
	}

	if err := os.Link(tmpPath, target); err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s", ErrArchiveExists, target)
		}
		return fmt.Errorf("link archive %s -> %s: %w", tmpPath, target, err)
	}

	s.logger.Debug("archive written", util.F("path", target), util.F("bytes", len(data)))
	return nil
}

// CumulativeTotals sums the totals of every archive
func CumulativeTotals(archives []model.WorkflowArchive) model.WorkflowTotals {
	var totals model.WorkflowTotals
	for _, a := range archives {
		totals.Add(a.Totals)
	}
	return totals
}
