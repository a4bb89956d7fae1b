package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/backmassage/listmerge/internal/check"
	"github.com/backmassage/listmerge/internal/config"
	"github.com/backmassage/listmerge/internal/display"
	"github.com/backmassage/listmerge/internal/pipeline"
)

func newRunCommand(cc *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [input_dir] [denylist]",
		Short: "Run the full pipeline: enrich, merge, dedup, filter",
		Long: `Run enriches every CSV file in input_dir with the metadata in its name,
merges them into master.csv, removes duplicate identity keys into
master_NODUPLS.csv, and removes denylisted keys into
master_NODUPLS_FILTERED.csv. Any stage failure aborts the run.

Discovery skips the denylist file, the pipeline's own output names, and
files whose name ends in the enriched suffix (_COLS_ADDED by default).
Run with --verbose to see each skipped file.

Paths may also come from the config file or LISTMERGE_INPUT_DIR and
LISTMERGE_DENYLIST.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &cc.cfg
			setArg(args, 0, &cfg.InputDir, true)
			setArg(args, 1, &cfg.DenylistPath, false)
			if err := cfg.RequireRunPaths(); err != nil {
				return err
			}
			if err := check.CheckPaths(cfg); err != nil {
				cc.log.Error("Preflight: %v", err)
				return reported(err)
			}

			display.PrintBanner(cmd.OutOrStdout())
			log := cc.log
			log.Info("=== listmerge v%s (%s) ===", version, commit)
			log.Info("In:       %s", cfg.InputDir)
			log.Info("Denylist: %s", cfg.DenylistPath)

			ctx, cancel := cc.signalContext()
			defer cancel()

			_, err := pipeline.Run(ctx, cfg, log)
			return reported(err)
		},
	}
	config.BindRunFlags(cmd.Flags(), &cc.cfg)
	return cmd
}

func newAnalyzeCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [input_dir]",
		Short: "Inspect input files without writing anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &cc.cfg
			setArg(args, 0, &cfg.InputDir, true)
			if cfg.InputDir == "" {
				return errors.New("need input_dir")
			}

			ctx, cancel := cc.signalContext()
			defer cancel()
			return reported(pipeline.Analyze(ctx, cfg, cc.log))
		},
	}
}

func newCheckCommand(cc *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [input_dir] [denylist]",
		Short: "Verify inputs are readable and outputs writable",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &cc.cfg
			setArg(args, 0, &cfg.InputDir, true)
			setArg(args, 1, &cfg.DenylistPath, false)
			if !check.RunCheck(cfg, cc.log) {
				return reported(errors.New("preflight check failed"))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&cc.cfg.OutputDir, "out", "o", cc.cfg.OutputDir, "Output directory (default: current directory)")
	return cmd
}

// requireFile returns an error when path is not an existing regular file.
func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return errors.New(path + " is a directory")
	}
	return nil
}
