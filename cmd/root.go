package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fnum/core/config"
	"fnum/core/logger"
	"fnum/core/reconcile"
	"fnum/feature/gallery"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time with -ldflags "-X fnum/cmd.Version=...".
var Version = "dev"

type rootOptions struct {
	writeMax       bool
	writeMetadata  bool
	includeSidecar bool
	sidecarSuffix  string
	verbose        bool
	dryRun         bool
	publish        bool
}

var rootOpts rootOptions

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "fnum SUFFIXES DIRPATH",
	Short: "Renumber files into a dense 1..N sequence",
	Long: `fnum renames the files of DIRPATH whose suffix is listed in SUFFIXES
(comma separated) so that they form the sequence 1..N. Gaps left by removed
files are closed, the relative order of surviving files is kept and new files
are appended at the end.

An ordering record and a max marker can be written next to the files, and
sidecar files are renamed together with their content file.`,
	Args:          cobra.ExactArgs(2),
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRenumber,
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		report(err, os.Stdout)
		os.Exit(1)
	}
}

// report prints conflicts to out and logs every other failure.
func report(err error, out io.Writer) {
	var conflict *reconcile.ConflictError
	if errors.As(err, &conflict) {
		fmt.Fprintln(out, conflict.Error())
		return
	}

	// Console format with debug level gives ISO8601 timestamps
	l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
	if logErr != nil {
		fmt.Fprintln(out, err)
		return
	}
	l.Error("command failed", zap.Error(err))
	_ = l.Sync()
}

func runRenumber(cmd *cobra.Command, args []string) error {
	suffixes := reconcile.ParseSuffixes(args[0])
	if len(suffixes) == 0 {
		return fmt.Errorf("no suffixes in %q", args[0])
	}

	dir, err := filepath.Abs(args[1])
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", args[1], err)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if rootOpts.sidecarSuffix != "" {
		cfg.Numbering.SidecarSuffix = rootOpts.sidecarSuffix
	}

	logg, err := logger.NewCLI(rootOpts.verbose)
	if err != nil {
		return err
	}
	defer logg.Sync()

	ctx := cmd.Context()

	var publisher *gallery.Publisher
	if rootOpts.publish && !rootOpts.dryRun {
		if publisher, err = openPublisher(ctx, cfg.Storage); err != nil {
			return err
		}
	}
	j := openJournal(cfg.Database, logg)

	svc := gallery.NewService(afero.NewOsFs(), cfg.Numbering, publisher, j, logg)
	result, err := svc.RenumberDir(ctx, dir, gallery.RunOptions{
		Suffixes:      suffixes,
		DryRun:        rootOpts.dryRun,
		WriteMax:      rootOpts.writeMax,
		WriteMetadata: rootOpts.writeMetadata,
		Sidecar:       rootOpts.includeSidecar,
		Publish:       publisher != nil,
	})
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), dir, result)
	return nil
}

// printSummary writes the renames and counts of a run.
func printSummary(w io.Writer, dir string, result *reconcile.Result) {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	if result.DryRun {
		yellow.Fprintf(w, "Dry run, nothing was renamed in %s\n", dir)
	} else {
		bold.Fprintf(w, "Renumbered %s\n", dir)
	}

	for _, a := range result.Actions {
		fmt.Fprintf(w, "  %s -> %s", a.From, green.Sprint(a.To))
		if a.Original != a.From {
			fmt.Fprintf(w, " (%s)", a.Original)
		}
		fmt.Fprintln(w)
	}

	s := result.Summary
	cyan.Fprintf(w, "max %d", s.Max)
	fmt.Fprintf(w, ", renamed %d, new %d, removed %d\n", s.Renamed, s.New, s.Removed)
}

func init() {
	flags := RootCmd.Flags()
	flags.BoolVar(&rootOpts.writeMax, "write-max", false, "write the max marker next to the files")
	flags.BoolVar(&rootOpts.writeMetadata, "write-metadata", false, "write the ordering record next to the files")
	flags.BoolVar(&rootOpts.includeSidecar, "include-sidecar", false, "rename sidecar files with their content file")
	flags.BoolVar(&rootOpts.includeSidecar, "include-imeta", false, "alias of --include-sidecar")
	_ = flags.MarkHidden("include-imeta")
	flags.StringVar(&rootOpts.sidecarSuffix, "sidecar-suffix", "", "sidecar suffix (default from NUMBERING_SIDECAR_SUFFIX)")
	flags.BoolVarP(&rootOpts.verbose, "verbose", "v", false, "log every rename")
	flags.BoolVar(&rootOpts.dryRun, "dry-run", false, "print the planned renames without touching the directory")
	flags.BoolVar(&rootOpts.publish, "publish", false, "mirror the written record and max marker to the bucket")
}
