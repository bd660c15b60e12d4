package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/penwyp/go-claude-timeline/internal/core/cowboy"
	"github.com/penwyp/go-claude-timeline/internal/core/model"
	"github.com/penwyp/go-claude-timeline/internal/util"
)

// Formatter renders command results
type Formatter interface {
	FormatReport(data ReportData) error
	FormatArchives(data ArchiveListing) error
}

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// New returns the formatter for format writing to w
func New(format string, w io.Writer, palette util.Palette) (Formatter, error) {
	switch format {
	case "", FormatTable:
		return NewTableFormatter(w, palette), nil
	case FormatJSON:
		return NewJSONFormatter(w), nil
	case FormatCSV:
		return NewCSVFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want table, json or csv)", format)
	}
}

type OutcomeRow struct {
	WorkflowID      string `json:"workflow_id"`
	Start           string `json:"start"`
	End             string `json:"end"`
	DurationSeconds int64  `json:"duration_seconds"`
	Events          int    `json:"events"`
	Tokens          int64  `json:"tokens"`
	GitCommits      int    `json:"git_commits"`
	Status          string `json:"status"`
	Error           string `json:"error,omitempty"`
}

type ReportData struct {
	DryRun      bool         `json:"dry_run"`
	GapsFound   int          `json:"gaps_found"`
	Created     int          `json:"created"`
	Skipped     int          `json:"skipped"`
	WouldCreate int          `json:"would_create"`
	Failed      int          `json:"failed"`
	Outcomes    []OutcomeRow `json:"outcomes"`
}

// NewReportData flattens a detection report for display
func NewReportData(r *cowboy.Report) ReportData {
	data := ReportData{
		DryRun:      r.DryRun,
		GapsFound:   r.GapsFound,
		Created:     r.Created,
		Skipped:     r.Skipped,
		WouldCreate: r.WouldCreate,
		Failed:      r.Failed,
		Outcomes:    make([]OutcomeRow, 0, len(r.Outcomes)),
	}
	for _, o := range r.Outcomes {
		row := OutcomeRow{
			WorkflowID:      o.WorkflowID,
			Start:           util.FormatTimestamp(o.Start),
			End:             util.FormatTimestamp(o.End),
			DurationSeconds: int64(o.End.Sub(o.Start).Seconds()),
			Events:          o.Events,
			Tokens:          o.Totals.Tokens.Total(),
			GitCommits:      o.Totals.GitCommits,
			Status:          string(o.Status),
		}
		if o.Err != nil {
			row.Error = o.Err.Error()
		}
		data.Outcomes = append(data.Outcomes, row)
	}
	return data
}

type ArchiveRow struct {
	WorkflowID        string `json:"workflow_id"`
	Mode              string `json:"mode"`
	Synthetic         bool   `json:"is_synthetic"`
	CompletedAt       string `json:"completed_at"`
	DurationSeconds   int64  `json:"duration_seconds"`
	Tokens            int64  `json:"tokens"`
	BashCommands      int    `json:"bash_commands"`
	FileModifications int    `json:"file_modifications"`
	GitCommits        int    `json:"git_commits"`
}

type ArchiveListing struct {
	Archives []ArchiveRow         `json:"archives"`
	Totals   model.WorkflowTotals `json:"totals"`
}

// NewArchiveListing summarizes archives; totals are supplied by the caller
func NewArchiveListing(archives []model.WorkflowArchive, totals model.WorkflowTotals) ArchiveListing {
	listing := ArchiveListing{
		Archives: make([]ArchiveRow, 0, len(archives)),
		Totals:   totals,
	}
	for _, a := range archives {
		row := ArchiveRow{
			WorkflowID:        a.WorkflowID,
			Mode:              a.Mode,
			Synthetic:         a.IsSynthetic,
			CompletedAt:       a.CompletedAt,
			Tokens:            a.Totals.Tokens.Total(),
			BashCommands:      a.Totals.BashCommands,
			FileModifications: a.Totals.FileModifications,
			GitCommits:        a.Totals.GitCommits,
		}
		start, errStart := util.ParseTimestamp(a.WorkflowID)
		end, errEnd := util.ParseTimestamp(a.CompletedAt)
		if errStart == nil && errEnd == nil && !end.Before(start) {
			row.DurationSeconds = int64(end.Sub(start) / time.Second)
		}
		listing.Archives = append(listing.Archives, row)
	}
	return listing
}
