package commands

import (
	"fmt"

	"github.com/penwyp/go-claude-timeline/internal/application/detect"
	"github.com/penwyp/go-claude-timeline/internal/presentation/formatter"
	"github.com/spf13/cobra"
)

var (
	cowboyDryRun       bool
	cowboyRefreshCache bool
)

var cowboyCmd = &cobra.Command{
	Use:   "cowboy",
	Short: "Archive activity that happened outside any tracked workflow",
	Long: `Scans hook events, transcript turns and git commits, finds the activity not
covered by an existing workflow archive and writes one synthetic "cowboy"
archive per gap. Re-running is safe: archives that already exist are skipped.`,
	Args: cobra.NoArgs,
	RunE: runCowboy,
}

func init() {
	rootCmd.AddCommand(cowboyCmd)

	cowboyCmd.Flags().BoolVar(&cowboyDryRun, "dry-run", false,
		"Report what would be archived without writing")
	cowboyCmd.Flags().BoolVar(&cowboyRefreshCache, "refresh-cache", false,
		"Discard cached transcript turns and re-parse every transcript")
}

func runCowboy(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	f, err := newFormatter(out)
	if err != nil {
		return err
	}

	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	report, err := detect.NewOrchestrator(env.cfg, detect.Options{
		DryRun:       cowboyDryRun,
		RefreshCache: cowboyRefreshCache,
		Logger:       env.logger,
	}).Run()
	if err != nil {
		return err
	}

	if err := f.FormatReport(formatter.NewReportData(report)); err != nil {
		return err
	}

	if report.HasFailures() {
		return fmt.Errorf("%d of %d workflows could not be archived", report.Failed, report.GapsFound)
	}
	return nil
}
