package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/backmassage/listmerge/internal/display"
	"github.com/backmassage/listmerge/internal/naming"
	"github.com/backmassage/listmerge/internal/pipeline"
	"github.com/backmassage/listmerge/internal/transform"
)

func newEnrichCommand(cc *commandContext) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "enrich <file>...",
		Short: "Prepend file-name metadata columns to each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := transform.EnrichOptions{
				Dir:     cc.cfg.WorkDir,
				Suffix:  cc.cfg.EnrichedSuffix,
				Columns: cc.cfg.MetadataColumns,
			}
			if dir != "" {
				opts.Dir = dir
			}
			claims := naming.NewCollisionResolver()
			for _, path := range args {
				opts.Output = claims.Resolve(path, naming.DerivedPath(path, opts.Suffix, opts.Dir))
				out, err := transform.Enrich(path, opts)
				if err != nil {
					cc.log.Error("%v", err)
					return reported(err)
				}
				cc.log.Success("%s -> %s (%s, %d blank skipped)",
					filepath.Base(path), out.Path, display.Plural(out.RowsOut, "row"), out.Dropped())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (default: --work-dir, else current directory)")
	return cmd
}

func newMergeCommand(cc *commandContext) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "merge -o <output> <file>...",
		Short: "Concatenate files, keeping only the first header",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := transform.Merge(args, output)
			if err != nil {
				cc.log.Error("%v", err)
				return reported(err)
			}
			cc.log.Success("Merged %s into %s (%s)", display.Plural(len(args), "file"), out.Path, display.Plural(out.RowsOut, "line"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "", "Output file")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newDedupCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dedup <input> <output>",
		Short: "Drop records whose identity key was already seen",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := transform.Dedup(args[0], args[1], cc.cfg.KeyColumn)
			if err != nil {
				cc.log.Error("%v", err)
				return reported(err)
			}
			cc.log.Success("Removed %s -> %s", display.Plural(out.Dropped(), "duplicate"), out.Path)
			return nil
		},
	}
}

func newFilterCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "filter <input> <output> <denylist>",
		Short: "Drop records whose identity key matches the denylist",
		Long: `Filter drops every record whose identity key equals a denylist entry or
contains one as a substring. Short entries therefore remove unrelated keys
("Smith" removes "Johnathan Smith" and "Smithers").`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(args[2]); err != nil {
				cc.log.Error("Denylist: %v", err)
				return reported(err)
			}
			cfg := &cc.cfg
			out, err := transform.FilterBlacklist(args[0], args[1], args[2], transform.FilterOptions{
				KeyColumn: cfg.KeyColumn,
				Denylist:  pipeline.DenylistOptions(cfg),
				OnExclude: func(key, entry string) {
					cc.log.Debug(cfg.Verbose, "  Excluded %q (matches %q)", key, entry)
				},
			})
			if err != nil {
				cc.log.Error("%v", err)
				return reported(err)
			}
			cc.log.Success("Removed %s -> %s", display.Plural(out.Dropped(), "denylisted record"), out.Path)
			return nil
		},
	}
}
