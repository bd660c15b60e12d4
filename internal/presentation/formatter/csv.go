package formatter

import (
	"encoding/csv"
	"io"
	"strconv"
)

type CSVFormatter struct {
	w io.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

func (f *CSVFormatter) write(headers []string, records [][]string) error {
	w := csv.NewWriter(f.w)
	if err := w.Write(headers); err != nil {
		return err
	}
	if err := w.WriteAll(records); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (f *CSVFormatter) FormatReport(data ReportData) error {
	records := make([][]string, 0, len(data.Outcomes))
	for _, row := range data.Outcomes {
		records = append(records, []string{
			row.WorkflowID,
			row.End,
			strconv.FormatInt(row.DurationSeconds, 10),
			strconv.Itoa(row.Events),
			strconv.FormatInt(row.Tokens, 10),
			strconv.Itoa(row.GitCommits),
			row.Status,
			row.Error,
		})
	}
	return f.write([]string{
		"Workflow ID", "End", "Duration (s)", "Events", "Tokens", "Commits", "Status", "Error",
	}, records)
}

func (f *CSVFormatter) FormatArchives(data ArchiveListing) error {
	records := make([][]string, 0, len(data.Archives))
	for _, row := range data.Archives {
		records = append(records, []string{
			row.WorkflowID,
			row.Mode,
			strconv.FormatBool(row.Synthetic),
			row.CompletedAt,
			strconv.FormatInt(row.DurationSeconds, 10),
			strconv.FormatInt(row.Tokens, 10),
			strconv.Itoa(row.BashCommands),
			strconv.Itoa(row.FileModifications),
			strconv.Itoa(row.GitCommits),
		})
	}
	return f.write([]string{
		"Workflow ID", "Mode", "Synthetic", "Completed At", "Duration (s)",
		"Tokens", "Bash Commands", "File Modifications", "Commits",
	}, records)
}
