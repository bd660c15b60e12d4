package formatter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/penwyp/go-claude-timeline/internal/util"
)

const maxErrorWidth = 120

type TableFormatter struct {
	w       io.Writer
	palette util.Palette
}

func NewTableFormatter(w io.Writer, palette util.Palette) *TableFormatter {
	return &TableFormatter{w: w, palette: palette}
}

// table is one rendered grid; the first leftCols columns are left-aligned
type table struct {
	headers  []string
	rows     [][]string
	footer   []string
	leftCols int
	// paint colors a padded cell; it must not change the display width
	paint func(row []string, col int, padded string) string
}

func (f *TableFormatter) FormatReport(data ReportData) error {
	out := bufio.NewWriter(f.w)
	writeSummary(out, f.palette, data)

	if len(data.Outcomes) > 0 {
		fmt.Fprintln(out)
		rows := make([][]string, 0, len(data.Outcomes))
		for _, o := range data.Outcomes {
			rows = append(rows, []string{
				o.WorkflowID,
				o.End,
				util.FormatDuration(time.Duration(o.DurationSeconds) * time.Second),
				strconv.Itoa(o.Events),
				formatNumber(o.Tokens),
				strconv.Itoa(o.GitCommits),
				o.Status,
			})
		}
		statusCol := 6
		f.render(out, table{
			headers:  []string{"Workflow ID", "End", "Duration", "Events", "Tokens", "Commits", "Status"},
			rows:     rows,
			leftCols: 3,
			paint: func(row []string, col int, padded string) string {
				if col != statusCol || len(row) <= statusCol {
					return padded
				}
				return f.paintStatus(row[statusCol], padded)
			},
		})

		for _, o := range data.Outcomes {
			if o.Error != "" {
				fmt.Fprintf(out, "%s %s: %s\n", f.palette.Failure("error"), o.WorkflowID, util.Truncate(o.Error, maxErrorWidth))
			}
		}
	}

	return out.Flush()
}

func (f *TableFormatter) FormatArchives(data ArchiveListing) error {
	out := bufio.NewWriter(f.w)
	if len(data.Archives) == 0 {
		fmt.Fprintln(out, f.palette.Muted("No archives found"))
		return out.Flush()
	}

	rows := make([][]string, 0, len(data.Archives))
	for _, a := range data.Archives {
		synthetic := "no"
		if a.Synthetic {
			synthetic = "yes"
		}
		rows = append(rows, []string{
			a.WorkflowID,
			a.Mode,
			synthetic,
			a.CompletedAt,
			util.FormatDuration(time.Duration(a.DurationSeconds) * time.Second),
			formatNumber(a.Tokens),
			strconv.Itoa(a.BashCommands),
			strconv.Itoa(a.FileModifications),
			strconv.Itoa(a.GitCommits),
		})
	}

	totals := data.Totals
	f.render(out, table{
		headers: []string{
			"Workflow ID", "Mode", "Synthetic", "Completed At", "Duration",
			"Tokens", "Commands", "Files", "Commits",
		},
		rows: rows,
		footer: []string{
			fmt.Sprintf("Total (%d)", len(data.Archives)), "", "", "", "",
			formatNumber(totals.Tokens.Total()),
			strconv.Itoa(totals.BashCommands),
			strconv.Itoa(totals.FileModifications),
			strconv.Itoa(totals.GitCommits),
		},
		leftCols: 4,
	})
	return out.Flush()
}

func (f *TableFormatter) paintStatus(status, padded string) string {
	switch status {
	case "created":
		return f.palette.Success(padded)
	case "would_create", "skipped":
		return f.palette.Warning(padded)
	case "failed":
		return f.palette.Failure(padded)
	default:
		return padded
	}
}

func (f *TableFormatter) render(w io.Writer, t table) {
	widths := calculateColumnWidths(t)

	printBorder(w, widths, "top")
	printRow(w, t.headers, widths, t.leftCols, nil)
	printBorder(w, widths, "middle")
	for _, row := range t.rows {
		printRow(w, row, widths, t.leftCols, t.paint)
	}
	if t.footer != nil {
		printBorder(w, widths, "middle")
		printRow(w, t.footer, widths, t.leftCols, nil)
	}
	printBorder(w, widths, "bottom")
}

// calculateColumnWidths sizes each column to its widest cell
func calculateColumnWidths(t table) []int {
	widths := make([]int, len(t.headers))
	measure := func(values []string) {
		for i, value := range values {
			if i < len(widths) && util.GetDisplayWidth(value) > widths[i] {
				widths[i] = util.GetDisplayWidth(value)
			}
		}
	}
	measure(t.headers)
	for _, row := range t.rows {
		measure(row)
	}
	measure(t.footer)
	return widths
}

func printBorder(w io.Writer, widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	var b strings.Builder
	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	fmt.Fprintln(w, b.String())
}

func printRow(w io.Writer, values []string, widths []int, leftCols int, paint func([]string, int, string) string) {
	var b strings.Builder
	b.WriteString("│")
	for i, width := range widths {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		var padded string
		if i < leftCols {
			padded = util.PadRight(value, width)
		} else {
			padded = strings.Repeat(" ", max(0, width-util.GetDisplayWidth(value))) + value
		}
		if paint != nil {
			padded = paint(values, i, padded)
		}
		b.WriteString(" " + padded + " │")
	}
	fmt.Fprintln(w, b.String())
}

// formatNumber inserts thousands separators
func formatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var result []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, digit)
	}
	return sign + string(result)
}
