package model

// HookEvent is one line of hooks.jsonl. Newer writers emit event_type,
// older ones hook_event_name; EventName resolves either.
type HookEvent struct {
	Timestamp      *string       `json:"timestamp,omitempty"`
	SessionID      string        `json:"session_id"`
	TranscriptPath string        `json:"transcript_path,omitempty"`
	EventType      string        `json:"event_type,omitempty"`
	HookEventName  string        `json:"hook_event_name,omitempty"`
	ToolName       string        `json:"tool_name,omitempty"`
	ToolInput      *ToolInput    `json:"tool_input,omitempty"`
	ToolResponse   *ToolResponse `json:"tool_response,omitempty"`
}

// EventName returns the hook event name in either schema
func (e HookEvent) EventName() string {
	if e.EventType != "" {
		return e.EventType
	}
	return e.HookEventName
}

// ToolInput keeps the tool_input fields the timeline needs
type ToolInput struct {
	Command  string `json:"command,omitempty"`
	FilePath string `json:"file_path,omitempty"`
}

// ToolResponse keeps the captured output of a Bash invocation
type ToolResponse struct {
	Stdout *string `json:"stdout,omitempty"`
	Stderr *string `json:"stderr,omitempty"`
}

// TranscriptEntry is one raw transcript line. Usage moved from the top level
// into message between Claude Code versions.
type TranscriptEntry struct {
	Type      string             `json:"type"`
	Timestamp *string            `json:"timestamp,omitempty"`
	Usage     *TokenUsage        `json:"usage,omitempty"`
	Message   *TranscriptMessage `json:"message,omitempty"`
}

// TranscriptMessage is the nested message wrapper of newer transcripts
type TranscriptMessage struct {
	Model string      `json:"model,omitempty"`
	Usage *TokenUsage `json:"usage,omitempty"`
}

// ResolvedUsage prefers message.usage and falls back to the top-level field
func (e TranscriptEntry) ResolvedUsage() *TokenUsage {
	if e.Message != nil && e.Message.Usage != nil {
		return e.Message.Usage
	}
	return e.Usage
}

// Turn converts the entry to a TranscriptTurn
func (e TranscriptEntry) Turn() TranscriptTurn {
	return TranscriptTurn{
		EventType: e.Type,
		Timestamp: e.Timestamp,
		Usage:     e.ResolvedUsage(),
	}
}
