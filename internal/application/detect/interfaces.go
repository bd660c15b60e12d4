package detect

import (
	"time"

	"github.com/penwyp/go-claude-timeline/internal/core/model"
)

// FileLister finds transcript files
type FileLister interface {
	Scan() ([]string, error)
}

// TurnCollector reads assistant turns from transcript files
type TurnCollector interface {
	CollectTurns(files []string) ([]model.TranscriptTurn, error)
}

// CommitSource lists repository commits
type CommitSource interface {
	Commits(since *time.Time) ([]model.GitCommit, error)
}
