package cmd

import (
	"fmt"
	"path/filepath"

	"fnum/core/config"
	"fnum/feature/gallery"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// maxCmd represents the max command
var maxCmd = &cobra.Command{
	Use:   "max DIRPATH",
	Short: "Print the highest assigned number of a directory",
	Long: `Prints the max marker of DIRPATH. When no marker was written the max
stored in the ordering record is printed instead.`,
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

		svc := gallery.NewService(afero.NewOsFs(), cfg.Numbering, nil, nil, zap.NewNop())
		marker, err := svc.MaxDir(cmd.Context(), dir)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), marker.String())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(maxCmd)
}
