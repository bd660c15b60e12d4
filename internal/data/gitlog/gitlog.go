package gitlog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/penwyp/go-claude-timeline/internal/core/model"
	"github.com/penwyp/go-claude-timeline/internal/util"
)

const shortHashLen = 7

// Reader lists commits of the repository containing a directory
type Reader struct {
	repoDir string
}

// NewReader creates a reader for the repository at or above repoDir
func NewReader(repoDir string) *Reader {
	return &Reader{repoDir: repoDir}
}

// Commits walks history from HEAD, newest first. A directory outside any
// repository, or a repository without commits, yields no commits. since,
// when set, drops commits authored before it.
func (r *Reader) Commits(since *time.Time) ([]model.GitCommit, error) {
	commits := make([]model.GitCommit, 0)

	repo, err := git.PlainOpenWithOptions(r.repoDir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			util.LogDebug("no git repository", util.F("dir", r.repoDir))
			return commits, nil
		}
		return nil, fmt.Errorf("open repo %s: %w", r.repoDir, err)
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return commits, nil
		}
		return nil, fmt.Errorf("get HEAD: %w", err)
	}

	// Pre-order yields a commit before its parents are loaded, so the
	// boundary commit of a shallow clone is still emitted.
	iter, err := repo.Log(&git.LogOptions{
		From:  head.Hash(),
		Order: git.LogOrderDFS,
		Since: since,
	})
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, convert(c))
		return nil
	})
	if err != nil {
		if !errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, fmt.Errorf("walk log: %w", err)
		}
		util.LogDebug("history truncated, stopping at missing object",
			util.F("dir", r.repoDir), util.F("commits", len(commits)))
	}

	util.LogDebug("read git history", util.F("dir", r.repoDir), util.F("commits", len(commits)))
	return commits, nil
}

// convert keeps a commit whose diff stats cannot be computed, with zero
// stats; its timestamp still places activity on the timeline.
func convert(c *object.Commit) model.GitCommit {
	commit := model.GitCommit{
		Hash:      c.Hash.String()[:shortHashLen],
		Timestamp: c.Author.When.UTC().Format(time.RFC3339),
		Message:   firstLine(c.Message),
		Author:    c.Author.Name,
	}

	stats, err := c.Stats()
	if err != nil {
		util.LogWarn("skipping diff stats for commit", util.F("hash", c.Hash.String()), util.F("error", err.Error()))
		return commit
	}
	commit.FilesChanged = len(stats)
	for _, s := range stats {
		commit.Insertions += s.Addition
		commit.Deletions += s.Deletion
	}
	return commit
}

func firstLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(line)
}
