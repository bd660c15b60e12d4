package model

// ShellCommand is one Bash tool invocation recorded by the hook log
type ShellCommand struct {
	Command   string  `json:"command"`
	Timestamp *string `json:"timestamp"`
	Stdout    *string `json:"stdout"`
	Stderr    *string `json:"stderr"`
}

// FileEdit is one Edit or Write tool invocation recorded by the hook log
type FileEdit struct {
	FilePath  string  `json:"file_path"`
	Tool      string  `json:"tool"`
	Timestamp *string `json:"timestamp"`
}

// GitCommit is one commit read from repository history.
// Hash is abbreviated to seven characters and Message keeps the first line only.
type GitCommit struct {
	Hash         string `json:"hash"`
	Timestamp    string `json:"timestamp"`
	Message      string `json:"message"`
	Author       string `json:"author"`
	FilesChanged int    `json:"files_changed"`
	Insertions   int    `json:"insertions"`
	Deletions    int    `json:"deletions"`
}

// TokenUsage holds the counters of one assistant response. The cache
// counters were added to transcripts later and may be missing.
type TokenUsage struct {
	InputTokens              int64  `json:"input_tokens"`
	OutputTokens             int64  `json:"output_tokens"`
	CacheCreationInputTokens *int64 `json:"cache_creation_input_tokens,omitempty"`
	CacheReadInputTokens     *int64 `json:"cache_read_input_tokens,omitempty"`
}

// CacheCreation returns the cache creation counter, zero when absent
func (u TokenUsage) CacheCreation() int64 {
	if u.CacheCreationInputTokens == nil {
		return 0
	}
	return *u.CacheCreationInputTokens
}

// CacheRead returns the cache read counter, zero when absent
func (u TokenUsage) CacheRead() int64 {
	if u.CacheReadInputTokens == nil {
		return 0
	}
	return *u.CacheReadInputTokens
}

// TranscriptTurn is one assistant entry of a session transcript
type TranscriptTurn struct {
	EventType string      `json:"type"`
	Timestamp *string     `json:"timestamp"`
	Usage     *TokenUsage `json:"usage"`
}

// Hook and transcript vocabulary
const (
	HookPostToolUse = "PostToolUse"

	ToolBash  = "Bash"
	ToolEdit  = "Edit"
	ToolWrite = "Write"

	EntryAssistant = "assistant"
)
