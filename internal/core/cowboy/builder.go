package cowboy

import (
	"fmt"

	"github.com/penwyp/go-claude-timeline/internal/core/model"
	"github.com/penwyp/go-claude-timeline/internal/util"
)

// BuildSyntheticArchive turns one activity group into a cowboy workflow
// archive with a single ride phase spanning the whole gap.
func BuildSyntheticArchive(group ActivityGroup) (model.WorkflowArchive, error) {
	if !group.Start.Before(group.End) {
		return model.WorkflowArchive{}, fmt.Errorf("group %s: end %s does not follow start",
			util.FormatTimestamp(group.Start), util.FormatTimestamp(group.End))
	}

	workflowID := util.FormatTimestamp(group.Start)
	startTime := workflowID
	endTime := util.FormatTimestamp(group.End)

	var tokens model.TokenTotals
	for i := range group.Transcript {
		tokens.AddUsage(group.Transcript[i].Usage)
	}

	commits := make([]model.GitCommit, len(group.GitCommits))
	copy(commits, group.GitCommits)

	phase := model.PhaseArchive{
		PhaseName:         model.PhaseRide,
		StartTime:         startTime,
		EndTime:           &endTime,
		DurationSeconds:   int64(group.End.Sub(group.Start).Seconds()),
		Tokens:            tokens,
		BashCommands:      summarizeCommands(group.ShellCommands),
		FileModifications: summarizeEdits(group.FileEdits),
		GitCommits:        commits,
	}

	transitions := []model.TransitionArchive{
		{FromNode: model.NodeStart, ToNode: model.PhaseRide, Timestamp: startTime},
		{FromNode: model.PhaseRide, ToNode: model.NodeDone, Timestamp: endTime},
	}

	return model.WorkflowArchive{
		WorkflowID:  workflowID,
		Mode:        model.ModeCowboy,
		CompletedAt: endTime,
		Phases:      []model.PhaseArchive{phase},
		Transitions: transitions,
		Totals:      computeTotals(group, []model.PhaseArchive{phase}),
		IsSynthetic: true,
	}, nil
}

func computeTotals(group ActivityGroup, phases []model.PhaseArchive) model.WorkflowTotals {
	var totals model.WorkflowTotals
	for _, p := range phases {
		totals.Tokens.Add(p.Tokens)
		totals.GitCommits += len(p.GitCommits)
	}

	totals.BashCommands = len(group.ShellCommands)
	totals.FileModifications = len(group.FileEdits)

	commands := make(map[string]struct{}, len(group.ShellCommands))
	for _, cmd := range group.ShellCommands {
		commands[cmd.Command] = struct{}{}
	}
	totals.UniqueCommands = len(commands)

	files := make(map[string]struct{}, len(group.FileEdits))
	for _, edit := range group.FileEdits {
		files[edit.FilePath] = struct{}{}
	}
	totals.UniqueFiles = len(files)

	return totals
}

// summarizeCommands groups commands by text, in order of first occurrence.
// A missing timestamp is recorded as an empty string.
func summarizeCommands(cmds []model.ShellCommand) []model.BashCommandSummary {
	summaries := make([]model.BashCommandSummary, 0)
	index := make(map[string]int)

	for _, cmd := range cmds {
		i, ok := index[cmd.Command]
		if !ok {
			i = len(summaries)
			index[cmd.Command] = i
			summaries = append(summaries, model.BashCommandSummary{Command: cmd.Command, Timestamps: []string{}})
		}
		summaries[i].Count++
		summaries[i].Timestamps = append(summaries[i].Timestamps, derefOrEmpty(cmd.Timestamp))
	}
	return summaries
}

type editKey struct {
	path string
	tool string
}

// summarizeEdits groups edits by (file, tool), in order of first occurrence
func summarizeEdits(edits []model.FileEdit) []model.FileModificationSummary {
	summaries := make([]model.FileModificationSummary, 0)
	index := make(map[editKey]int)

	for _, edit := range edits {
		key := editKey{path: edit.FilePath, tool: edit.Tool}
		i, ok := index[key]
		if !ok {
			i = len(summaries)
			index[key] = i
			summaries = append(summaries, model.FileModificationSummary{FilePath: edit.FilePath, Tool: edit.Tool, Timestamps: []string{}})
		}
		summaries[i].Count++
		summaries[i].Timestamps = append(summaries[i].Timestamps, derefOrEmpty(edit.Timestamp))
	}
	return summaries
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
