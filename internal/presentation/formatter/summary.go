package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-claude-timeline/internal/util"
)

// writeSummary prints the banner and counters of a detection pass
func writeSummary(w io.Writer, palette util.Palette, data ReportData) {
	title := "Cowboy Workflow Detection"
	if data.DryRun {
		title += " (dry run)"
	}
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, palette.Header(title))
	fmt.Fprintln(w, strings.Repeat("=", 60))

	if data.GapsFound == 0 {
		fmt.Fprintln(w, palette.Muted("No untracked activity found"))
		return
	}

	fmt.Fprintf(w, "Gaps found:    %d\n", data.GapsFound)
	if data.DryRun {
		fmt.Fprintf(w, "Would create:  %s\n", palette.Warning(fmt.Sprintf("%d", data.WouldCreate)))
	} else {
		fmt.Fprintf(w, "Created:       %s\n", palette.Success(fmt.Sprintf("%d", data.Created)))
	}
	fmt.Fprintf(w, "Skipped:       %d\n", data.Skipped)

	var tokens int64
	for _, o := range data.Outcomes {
		tokens += o.Tokens
	}
	fmt.Fprintf(w, "Tokens:        %s\n", util.FormatNumber(tokens))
	if data.Failed > 0 {
		fmt.Fprintf(w, "Failed:        %s\n", palette.Failure(fmt.Sprintf("%d", data.Failed)))
	}
}
