package timeline

import (
	"time"

	"github.com/penwyp/go-claude-timeline/internal/core/model"
)

// Kind identifies which source record an Event carries
type Kind int

const (
	KindShellCommand Kind = iota
	KindFileEdit
	KindGitCommit
	KindTranscriptTurn
)

func (k Kind) String() string {
	switch k {
	case KindShellCommand:
		return "shell_command"
	case KindFileEdit:
		return "file_edit"
	case KindGitCommit:
		return "git_commit"
	case KindTranscriptTurn:
		return "transcript_turn"
	default:
		return "unknown"
	}
}

// Event is a single point in the unified timeline. Exactly one payload
// pointer is set, matching Kind.
type Event struct {
	At   time.Time
	Kind Kind

	Shell  *model.ShellCommand
	Edit   *model.FileEdit
	Commit *model.GitCommit
	Turn   *model.TranscriptTurn
}

func NewShellEvent(at time.Time, cmd model.ShellCommand) Event {
	return Event{At: at, Kind: KindShellCommand, Shell: &cmd}
}

func NewEditEvent(at time.Time, edit model.FileEdit) Event {
	return Event{At: at, Kind: KindFileEdit, Edit: &edit}
}

func NewCommitEvent(at time.Time, commit model.GitCommit) Event {
	return Event{At: at, Kind: KindGitCommit, Commit: &commit}
}

func NewTurnEvent(at time.Time, turn model.TranscriptTurn) Event {
	return Event{At: at, Kind: KindTranscriptTurn, Turn: &turn}
}

// Sources bundles the parsed activity streams of one detection pass
type Sources struct {
	ShellCommands []model.ShellCommand
	FileEdits     []model.FileEdit
	GitCommits    []model.GitCommit
	Transcript    []model.TranscriptTurn
}

// Len returns the number of source records across all streams
func (s Sources) Len() int {
	return len(s.ShellCommands) + len(s.FileEdits) + len(s.GitCommits) + len(s.Transcript)
}
