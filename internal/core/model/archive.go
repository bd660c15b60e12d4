package model

// Synthetic workflow vocabulary
const (
	ModeCowboy = "cowboy"
	PhaseRide  = "ride"
	NodeStart  = "START"
	NodeDone   = "done"
)

// WorkflowArchive is the persisted summary of one completed workflow.
// WorkflowID is the RFC3339 start instant and names the archive file.
type WorkflowArchive struct {
	WorkflowID  string              `json:"workflow_id"`
	Mode        string              `json:"mode"`
	CompletedAt string              `json:"completed_at"`
	Phases      []PhaseArchive      `json:"phases"`
	Transitions []TransitionArchive `json:"transitions"`
	Totals      WorkflowTotals      `json:"totals"`
	SessionID   *string             `json:"session_id,omitempty"`
	IsSynthetic bool                `json:"is_synthetic"`
}

// PhaseArchive holds the per-phase aggregates of an archive
type PhaseArchive struct {
	PhaseName         string                    `json:"phase_name"`
	StartTime         string                    `json:"start_time"`
	EndTime           *string                   `json:"end_time"`
	DurationSeconds   int64                     `json:"duration_seconds"`
	Tokens            TokenTotals               `json:"tokens"`
	BashCommands      []BashCommandSummary      `json:"bash_commands"`
	FileModifications []FileModificationSummary `json:"file_modifications"`
	GitCommits        []GitCommit               `json:"git_commits"`
}

// TransitionArchive is one state transition of a workflow
type TransitionArchive struct {
	FromNode  string `json:"from_node"`
	ToNode    string `json:"to_node"`
	Timestamp string `json:"timestamp"`
}

// TokenTotals sums token usage over assistant turns
type TokenTotals struct {
	Input          int64 `json:"input"`
	Output         int64 `json:"output"`
	CacheCreation  int64 `json:"cache_creation"`
	CacheRead      int64 `json:"cache_read"`
	AssistantTurns int   `json:"assistant_turns"`
}

// Add accumulates other into t
func (t *TokenTotals) Add(other TokenTotals) {
	t.Input += other.Input
	t.Output += other.Output
	t.CacheCreation += other.CacheCreation
	t.CacheRead += other.CacheRead
	t.AssistantTurns += other.AssistantTurns
}

// AddUsage accumulates one assistant turn. A nil usage still counts as a turn.
func (t *TokenTotals) AddUsage(usage *TokenUsage) {
	t.AssistantTurns++
	if usage == nil {
		return
	}
	t.Input += usage.InputTokens
	t.Output += usage.OutputTokens
	t.CacheCreation += usage.CacheCreation()
	t.CacheRead += usage.CacheRead()
}

// Total returns the sum of all token counters
func (t TokenTotals) Total() int64 {
	return t.Input + t.Output + t.CacheCreation + t.CacheRead
}

// BashCommandSummary groups identical commands of a phase
type BashCommandSummary struct {
	Command    string   `json:"command"`
	Count      int      `json:"count"`
	Timestamps []string `json:"timestamps"`
}

// FileModificationSummary groups edits of one file by one tool
type FileModificationSummary struct {
	FilePath   string   `json:"file_path"`
	Tool       string   `json:"tool"`
	Count      int      `json:"count"`
	Timestamps []string `json:"timestamps"`
}

// WorkflowTotals holds workflow level counters
type WorkflowTotals struct {
	Tokens            TokenTotals `json:"tokens"`
	BashCommands      int         `json:"bash_commands"`
	FileModifications int         `json:"file_modifications"`
	UniqueFiles       int         `json:"unique_files"`
	UniqueCommands    int         `json:"unique_commands"`
	GitCommits        int         `json:"git_commits"`
}

// Add accumulates other into t. Unique counters are summed as-is, so the
// result is an upper bound across workflows rather than a global cardinality.
func (t *WorkflowTotals) Add(other WorkflowTotals) {
	t.Tokens.Add(other.Tokens)
	t.BashCommands += other.BashCommands
	t.FileModifications += other.FileModifications
	t.UniqueFiles += other.UniqueFiles
	t.UniqueCommands += other.UniqueCommands
	t.GitCommits += other.GitCommits
}
