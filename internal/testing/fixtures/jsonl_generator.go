package fixtures

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/zstd"
	"github.com/penwyp/go-claude-timeline/internal/core/model"
)

// TestDataGenerator writes hook logs and transcripts in the on-disk formats
// produced by Claude Code
type TestDataGenerator struct {
	baseDir string
}

// NewTestDataGenerator creates a new test data generator
func NewTestDataGenerator(baseDir string) *TestDataGenerator {
	return &TestDataGenerator{
		baseDir: baseDir,
	}
}

// GetBaseDir returns the base directory for test data
func (g *TestDataGenerator) GetBaseDir() string {
	return g.baseDir
}

func stamp(t time.Time) *string {
	s := t.UTC().Format(time.RFC3339)
	return &s
}

// BashHook builds a canonical PostToolUse line for a Bash invocation
func BashHook(at time.Time, command, stdout string) model.HookEvent {
	return model.HookEvent{
		Timestamp:    stamp(at),
		SessionID:    "session-fixture",
		EventType:    model.HookPostToolUse,
		ToolName:     model.ToolBash,
		ToolInput:    &model.ToolInput{Command: command},
		ToolResponse: &model.ToolResponse{Stdout: &stdout},
	}
}

// EditHook builds a canonical PostToolUse line for an Edit or Write invocation
func EditHook(at time.Time, tool, filePath string) model.HookEvent {
	return model.HookEvent{
		Timestamp: stamp(at),
		SessionID: "session-fixture",
		EventType: model.HookPostToolUse,
		ToolName:  tool,
		ToolInput: &model.ToolInput{FilePath: filePath},
	}
}

// LegacyHook converts a hook line to the older hook_event_name schema
func LegacyHook(e model.HookEvent) model.HookEvent {
	e.HookEventName = e.EventType
	e.EventType = ""
	return e
}

// AssistantTurn builds a transcript line. nested selects the newer
// message.usage shape.
func AssistantTurn(at time.Time, input, output int64, nested bool) model.TranscriptEntry {
	usage := &model.TokenUsage{InputTokens: input, OutputTokens: output}
	entry := model.TranscriptEntry{Type: model.EntryAssistant, Timestamp: stamp(at)}
	if nested {
		entry.Message = &model.TranscriptMessage{Model: "claude-sonnet-4-20250514", Usage: usage}
	} else {
		entry.Usage = usage
	}
	return entry
}

// UserTurn builds a non-assistant transcript line
func UserTurn(at time.Time) model.TranscriptEntry {
	return model.TranscriptEntry{Type: "user", Timestamp: stamp(at)}
}

// WriteHooks writes hook lines to name under the base directory
func (g *TestDataGenerator) WriteHooks(name string, events []model.HookEvent) (string, error) {
	lines := make([]any, 0, len(events))
	for _, e := range events {
		lines = append(lines, e)
	}
	return g.writeJSONL(name, lines, false)
}

// WriteTranscript writes transcript lines, zstd-compressed when compressed
// is set. The caller picks a name ending in .jsonl or .jsonl.zst.
func (g *TestDataGenerator) WriteTranscript(name string, entries []model.TranscriptEntry, compressed bool) (string, error) {
	lines := make([]any, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e)
	}
	return g.writeJSONL(name, lines, compressed)
}

// WriteRaw writes content verbatim, for malformed input cases
func (g *TestDataGenerator) WriteRaw(name, content string) (string, error) {
	path := filepath.Join(g.baseDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, []byte(content), 0644)
}

func (g *TestDataGenerator) writeJSONL(name string, lines []any, compressed bool) (string, error) {
	var buf bytes.Buffer
	for _, line := range lines {
		data, err := sonic.Marshal(line)
		if err != nil {
			return "", fmt.Errorf("encode fixture line: %w", err)
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}

	path := filepath.Join(g.baseDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if !compressed {
		_, err = io.Copy(file, &buf)
		return path, err
	}

	encoder, err := zstd.NewWriter(file)
	if err != nil {
		return "", fmt.Errorf("create zstd encoder: %w", err)
	}
	if _, err := io.Copy(encoder, &buf); err != nil {
		encoder.Close()
		return "", fmt.Errorf("compress fixture: %w", err)
	}
	return path, encoder.Close()
}
