package config

// This file implements CLI flag binding for the cobra command tree.
// Flags write straight into a Config; negated flags (e.g. --no-summary) are
// captured separately and folded in by [Flags.Apply] so defaults hold unless
// the user passes them.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Flags keeps the pieces of flag state that are not plain Config fields.
type Flags struct {
	ConfigPath string
	EnvFile    string

	negated negatedFlags
}

// negatedFlags holds boolean flags that are applied after parsing.
type negatedFlags struct {
	noSummary  bool
	forceColor bool
	noColor    bool
}

// BindPersistentFlags registers the flags shared by every subcommand.
func BindPersistentFlags(fs *pflag.FlagSet, cfg *Config) *Flags {
	f := &Flags{EnvFile: ".env"}

	fs.StringVarP(&f.ConfigPath, "config", "c", "", "Configuration file (default: ./listmerge.toml when present)")
	fs.StringVar(&f.EnvFile, "env-file", f.EnvFile, "Environment file read for LISTMERGE_* fallbacks")

	fs.StringVar(&cfg.Suffix, "suffix", cfg.Suffix, "Input file suffix")
	fs.IntVar(&cfg.KeyColumn, "key-column", cfg.KeyColumn, "Identity key column (0-based)")
	fs.Var(&headerModeValue{&cfg.DenylistHeader}, "denylist-header", "Denylist header handling: first | marker | none")
	fs.StringVar(&cfg.DenylistMarker, "denylist-marker", cfg.DenylistMarker, "Marker text for --denylist-header=marker")
	fs.StringVar(&cfg.WorkDir, "work-dir", cfg.WorkDir, "Directory for enriched intermediates (default: current directory)")

	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVar(&f.negated.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&f.negated.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&f.negated.noSummary, "no-summary", false, "Hide the end-of-run summary table")
	fs.StringVarP(&cfg.LogFile, "log", "l", "", "Append logs to file")
	return f
}

// BindRunFlags registers flags specific to the full pipeline command.
func BindRunFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.OutputDir, "out", "o", cfg.OutputDir, "Output directory (default: current directory)")
	fs.BoolVarP(&cfg.DryRun, "dry-run", "d", false, "Discover and parse file names only; write nothing")
	fs.BoolVar(&cfg.CleanIntermediates, "clean", cfg.CleanIntermediates, "Remove enriched intermediates after merging")
}

// Apply copies negated flag values into cfg (e.g. noSummary -> ShowSummary=false).
func (f *Flags) Apply(cfg *Config) {
	if f.negated.noSummary {
		cfg.ShowSummary = false
	}
	if f.negated.noColor {
		cfg.ColorMode = ColorNever
	} else if f.negated.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// changedFlags snapshots every flag the user set on the command line, so the
// values can be re-applied on top of file and environment settings.
func changedFlags(fs *pflag.FlagSet) map[string]string {
	out := map[string]string{}
	if fs == nil {
		return out
	}
	fs.Visit(func(fl *pflag.Flag) {
		out[fl.Name] = fl.Value.String()
	})
	return out
}

// pflag.Value adapter so HeaderMode can be used with fs.Var.

type headerModeValue struct{ p *HeaderMode }

func (h *headerModeValue) String() string { return string(*h.p) }
func (h *headerModeValue) Type() string   { return "mode" }
func (h *headerModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "first":
		*h.p = HeaderFirst
	case "marker":
		*h.p = HeaderMarker
	case "none":
		*h.p = HeaderNone
	default:
		return fmt.Errorf("invalid denylist header mode %q (use 'first', 'marker' or 'none')", s)
	}
	return nil
}
