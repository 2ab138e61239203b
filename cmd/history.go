package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"fnum/core/config"
	"fnum/core/journal"
	"fnum/core/logger"
	"fnum/feature/gallery"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history DIRPATH",
	Short: "Show the journaled renames of a directory",
	Long: `Lists the renames recorded for DIRPATH in the rename journal, newest
first. The journal is written when DATABASE_ENABLED is true.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", args[0], err)
		}

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logg, err := logger.NewCLI(false)
		if err != nil {
			return err
		}
		defer logg.Sync()

		svc := gallery.NewService(afero.NewOsFs(), cfg.Numbering, nil, openJournal(cfg.Database, logg), logg)
		entries, err := svc.HistoryDir(cmd.Context(), dir, historyLimit)
		if err != nil {
			return err
		}

		printHistory(cmd.OutOrStdout(), entries)
		return nil
	},
}

// printHistory writes one line per entry.
func printHistory(w io.Writer, entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No renames recorded")
		return
	}

	faint := color.New(color.Faint)
	green := color.New(color.FgGreen)
	for _, e := range entries {
		faint.Fprintf(w, "%s %s ", e.CreatedAt.Format("2006-01-02 15:04:05"), e.RunID[:min(8, len(e.RunID))])
		fmt.Fprintf(w, "%s -> %s (%s, %s)\n", e.FromName, green.Sprint(e.ToName), e.Original, e.Reason)
	}
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries, 0 for all")
	RootCmd.AddCommand(historyCmd)
}
