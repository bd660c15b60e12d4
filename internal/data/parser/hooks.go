package parser

import (
	"os"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-claude-timeline/internal/core/model"
	"github.com/penwyp/go-claude-timeline/internal/util"
)

// HookActivity holds the tool activity recovered from a hook log
type HookActivity struct {
	ShellCommands []model.ShellCommand
	FileEdits     []model.FileEdit
	// TranscriptPaths lists the session transcripts named by hook events,
	// deduplicated in first-seen order
	TranscriptPaths []string
}

// ParseHooks reads hooks.jsonl. Only PostToolUse events of Bash, Edit and
// Write are kept. Malformed lines are skipped and a missing file yields no
// activity.
func ParseHooks(path string) (HookActivity, error) {
	activity := HookActivity{
		ShellCommands:   []model.ShellCommand{},
		FileEdits:       []model.FileEdit{},
		TranscriptPaths: []string{},
	}

	seen := make(map[string]bool)
	skipped := 0
	err := scanLines(path, func(line string, lineNo int) {
		var event model.HookEvent
		if err := sonic.UnmarshalString(line, &event); err != nil {
			skipped++
			util.LogDebug("skip invalid hook line", util.F("path", path), util.F("line", lineNo), util.F("error", err))
			return
		}
		if event.TranscriptPath != "" && !seen[event.TranscriptPath] {
			seen[event.TranscriptPath] = true
			activity.TranscriptPaths = append(activity.TranscriptPaths, event.TranscriptPath)
		}
		if event.EventName() != model.HookPostToolUse || event.ToolInput == nil {
			return
		}

		switch event.ToolName {
		case model.ToolBash:
			if event.ToolInput.Command == "" {
				return
			}
			cmd := model.ShellCommand{
				Command:   event.ToolInput.Command,
				Timestamp: event.Timestamp,
			}
			if event.ToolResponse != nil {
				cmd.Stdout = event.ToolResponse.Stdout
				cmd.Stderr = event.ToolResponse.Stderr
			}
			activity.ShellCommands = append(activity.ShellCommands, cmd)
		case model.ToolEdit, model.ToolWrite:
			if event.ToolInput.FilePath == "" {
				return
			}
			activity.FileEdits = append(activity.FileEdits, model.FileEdit{
				FilePath:  event.ToolInput.FilePath,
				Tool:      event.ToolName,
				Timestamp: event.Timestamp,
			})
		}
	})
	if err != nil {
		if os.IsNotExist(err) {
			util.LogDebug("no hook log found", util.F("path", path))
			return activity, nil
		}
		return HookActivity{}, err
	}

	util.LogDebug("parsed hook log",
		util.F("path", path),
		util.F("bash_commands", len(activity.ShellCommands)),
		util.F("file_edits", len(activity.FileEdits)),
		util.F("transcripts", len(activity.TranscriptPaths)),
		util.F("skipped", skipped))
	return activity, nil
}
