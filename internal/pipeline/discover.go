package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/backmassage/listmerge/internal/config"
	"github.com/backmassage/listmerge/internal/logging"
)

var (
	// ErrDiscovery wraps directory access failures. Callers treat it as
	// "no files found"; it is kept only for diagnostics.
	ErrDiscovery = errors.New("discovery failed")
	// ErrNoInput is returned by Run and Analyze when discovery finds nothing.
	ErrNoInput = errors.New("no input files found")
)

// Discover lists the files directly inside dir whose names end with suffix
// (case-sensitive) and returns them joined with dir, sorted
// lexicographically. Subdirectories are skipped, not descended into. On any
// access failure it returns an empty, non-nil slice and an error wrapping
// [ErrDiscovery].
func Discover(dir, suffix string) ([]string, error) {
	files := []string{}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return files, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// discoverInputs runs Discover and drops files this tool writes itself (an
// enriched intermediate, a master output, or the denylist) so that a rerun
// against a shared directory never feeds its own output back in.
func discoverInputs(cfg *config.Config, log *logging.Logger) []string {
	files, err := Discover(cfg.InputDir, cfg.Suffix)
	if err != nil {
		log.Warn("Cannot read input directory: %v", err)
		return files
	}

	generated := map[string]bool{
		cfg.MasterFile:   true,
		cfg.DedupFile:    true,
		cfg.FilteredFile: true,
	}
	denylist := absOrSelf(cfg.DenylistPath)

	kept := files[:0]
	for _, path := range files {
		base := filepath.Base(path)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		switch {
		case generated[base]:
			log.Debug(cfg.Verbose, "Skip (pipeline output): %s", base)
		case strings.HasSuffix(stem, cfg.EnrichedSuffix):
			log.Debug(cfg.Verbose, "Skip (enriched intermediate): %s", base)
		case cfg.DenylistPath != "" && absOrSelf(path) == denylist:
			log.Debug(cfg.Verbose, "Skip (denylist): %s", base)
		default:
			kept = append(kept, path)
		}
	}
	return kept
}

func absOrSelf(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
