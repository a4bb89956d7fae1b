package main

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/listmerge/internal/config"
)

func newRootCommand() (*cobra.Command, *commandContext) {
	cc := newCommandContext()

	rootCmd := &cobra.Command{
		Use:           "listmerge",
		Short:         "Enrich, merge, dedup, and denylist-filter a directory of CSV files",
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			return cc.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cc.flags = config.BindPersistentFlags(rootCmd.PersistentFlags(), &cc.cfg)

	rootCmd.AddCommand(newRunCommand(cc))
	rootCmd.AddCommand(newAnalyzeCommand(cc))
	rootCmd.AddCommand(newCheckCommand(cc))
	rootCmd.AddCommand(newEnrichCommand(cc))
	rootCmd.AddCommand(newMergeCommand(cc))
	rootCmd.AddCommand(newDedupCommand(cc))
	rootCmd.AddCommand(newFilterCommand(cc))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd, cc
}
