// Package config holds runtime configuration: defaults, config-file and
// environment loading, CLI flag binding, and validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// --- Enum types for validated string fields ---

// HeaderMode selects how the first lines of a denylist file are treated.
type HeaderMode string

const (
	HeaderFirst  HeaderMode = "first"  // Skip the first line (default).
	HeaderMarker HeaderMode = "marker" // Skip every line containing DenylistMarker.
	HeaderNone   HeaderMode = "none"   // Every line is an entry.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// then by [Load] (config file and environment), then by CLI flags, before
// being passed (by pointer) to packages that need it.
type Config struct {
	// Paths (set from positional args, the config file, or the environment).
	InputDir     string `toml:"input_dir"`
	DenylistPath string `toml:"denylist"`
	OutputDir    string `toml:"output_dir"` // Empty or missing: current directory.
	WorkDir      string `toml:"work_dir"`   // Enriched intermediates. Empty: current directory.

	// Discovery.
	Suffix string `toml:"suffix" validate:"required"` // Default: ".csv".

	// Enrichment.
	MetadataColumns []string `toml:"metadata_columns" validate:"len=4,dive,required"` // Default: Job, AA, Pass, List.
	EnrichedSuffix  string   `toml:"enriched_suffix" validate:"required"`            // Default: "_COLS_ADDED".

	// Identity key column (0-based) used by dedup and the denylist filter.
	KeyColumn int `toml:"key_column" validate:"gte=0"` // Default: 4.

	// Denylist parsing.
	DenylistHeader HeaderMode `toml:"denylist_header" validate:"oneof=first marker none"` // Default: "first".
	DenylistMarker string     `toml:"denylist_marker"`                                   // Default: "Blacklist".

	// Output file names, created inside the resolved output directory.
	MasterFile   string `toml:"master_file" validate:"required"`   // Default: "master.csv".
	DedupFile    string `toml:"dedup_file" validate:"required"`    // Default: "master_NODUPLS.csv".
	FilteredFile string `toml:"filtered_file" validate:"required"` // Default: "master_NODUPLS_FILTERED.csv".
	LockFile     string `toml:"lock_file" validate:"required"`     // Default: ".listmerge.lock".

	// Behavior flags.
	DryRun             bool `toml:"-"`
	CleanIntermediates bool `toml:"clean_intermediates"` // Remove enriched files after merge.

	// Display and logging.
	Verbose     bool      `toml:"verbose"`
	ShowSummary bool      `toml:"show_summary"` // Default: true.
	ColorMode   ColorMode `toml:"color" validate:"oneof=auto always never"`
	LogFile     string    `toml:"log_file"` // Optional log file path.
}

// Defaults for the fixed column names and file names.
const (
	DefaultSuffix         = ".csv"
	DefaultEnrichedSuffix = "_COLS_ADDED"
	DefaultKeyColumn      = 4
	DefaultDenylistMarker = "Blacklist"
	DefaultMasterFile     = "master.csv"
	DefaultDedupFile      = "master_NODUPLS.csv"
	DefaultFilteredFile   = "master_NODUPLS_FILTERED.csv"
	DefaultLockFile       = ".listmerge.lock"
)

// DefaultMetadataColumns are the header names prepended by enrichment.
var DefaultMetadataColumns = []string{"Job", "AA", "Pass", "List"}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [Load] and flags apply overrides.
func DefaultConfig() Config {
	return Config{
		Suffix:          DefaultSuffix,
		MetadataColumns: append([]string(nil), DefaultMetadataColumns...),
		EnrichedSuffix:  DefaultEnrichedSuffix,
		KeyColumn:       DefaultKeyColumn,
		DenylistHeader:  HeaderFirst,
		DenylistMarker:  DefaultDenylistMarker,
		MasterFile:      DefaultMasterFile,
		DedupFile:       DefaultDedupFile,
		FilteredFile:    DefaultFilteredFile,
		LockFile:        DefaultLockFile,
		ShowSummary:     true,
		ColorMode:       ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

var validate = newValidator()

// newValidator reports field errors under their TOML key names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field constraints (struct tags) and the cross-field rules
// the tags cannot express. It does not require any path to be set; commands
// that need paths call [Config.RequireRunPaths].
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return describeFieldError(verrs[0])
		}
		return err
	}

	if c.DenylistHeader == HeaderMarker && strings.TrimSpace(c.DenylistMarker) == "" {
		return errors.New("denylist_marker must be set when denylist_header is 'marker'")
	}

	names := map[string]string{}
	for _, f := range []struct{ key, name string }{
		{"master_file", c.MasterFile},
		{"dedup_file", c.DedupFile},
		{"filtered_file", c.FilteredFile},
		{"lock_file", c.LockFile},
	} {
		if filepath.Base(f.name) != f.name {
			return fmt.Errorf("%s must be a bare file name (got %q)", f.key, f.name)
		}
		if prev, dup := names[f.name]; dup {
			return fmt.Errorf("%s and %s must differ (both %q)", prev, f.key, f.name)
		}
		names[f.name] = f.key
	}
	return nil
}

// RequireRunPaths reports an error when the input directory or denylist is missing.
func (c *Config) RequireRunPaths() error {
	if c.InputDir == "" || c.DenylistPath == "" {
		return errors.New("need input_dir and denylist")
	}
	return nil
}

// describeFieldError turns a validator failure into a one-line message.
func describeFieldError(fe validator.FieldError) error {
	key := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s must not be empty", key)
	case "oneof":
		return fmt.Errorf("invalid %s %q (use one of: %s)", key, fmt.Sprint(fe.Value()), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "len":
		return fmt.Errorf("%s must list exactly %s names", key, fe.Param())
	case "gte":
		return fmt.Errorf("%s must be >= %s", key, fe.Param())
	}
	return fmt.Errorf("invalid %s (%s)", key, fe.Tag())
}

// ValidatePaths reports whether the resolved output directory is inside (or
// equal to) the resolved input directory. Outputs written there carry the
// input suffix and would be picked up by the next discovery. Both arguments
// must be absolute, symlink-resolved paths.
func (c *Config) ValidatePaths(inputAbs, outputAbs string) error {
	sep := string(filepath.Separator)
	if outputAbs == inputAbs || strings.HasPrefix(outputAbs+sep, inputAbs+sep) {
		return errors.New("output directory is inside input directory")
	}
	return nil
}
