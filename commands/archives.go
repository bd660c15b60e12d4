package commands

import (
	"github.com/penwyp/go-claude-timeline/internal/data/archive"
	"github.com/penwyp/go-claude-timeline/internal/presentation/formatter"
	"github.com/spf13/cobra"
)

var archivesCmd = &cobra.Command{
	Use:   "archives",
	Short: "List workflow archives with cumulative totals",
	Args:  cobra.NoArgs,
	RunE:  runArchives,
}

func init() {
	rootCmd.AddCommand(archivesCmd)
}

func runArchives(cmd *cobra.Command, args []string) error {
	f, err := newFormatter(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	archives, err := archive.NewStore(env.cfg.ArchiveDir(), env.logger).ReadAll()
	if err != nil {
		return err
	}

	return f.FormatArchives(formatter.NewArchiveListing(archives, archive.CumulativeTotals(archives)))
}
