package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/backmassage/listmerge/internal/config"
	"github.com/backmassage/listmerge/internal/display"
	"github.com/backmassage/listmerge/internal/logging"
	"github.com/backmassage/listmerge/internal/naming"
	"github.com/backmassage/listmerge/internal/transform"
)

// Result lists what a run produced. Each path is absolute, or empty when its
// stage did not complete.
type Result struct {
	RunID        string
	OutputDir    string
	Enriched     []string
	MergedPath   string
	DedupPath    string
	FilteredPath string
	Stats        RunStats
}

// Run is the top-level batch entry point: discover, enrich every file, merge
// the enriched files into the master file, dedup it, and filter it against
// the denylist. The first failure is logged and returned; later stages do
// not run. Cancellation of ctx is honoured between files and between stages.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (Result, error) {
	start := time.Now()
	res := Result{RunID: uuid.NewString()}

	files := discoverInputs(cfg, log)
	res.Stats.Files = len(files)
	if len(files) == 0 {
		err := fmt.Errorf("%w in %s (suffix %q)", ErrNoInput, cfg.InputDir, cfg.Suffix)
		log.Error("%v", err)
		return res, err
	}

	outDir, err := resolveOutputDir(cfg.OutputDir, log)
	if err != nil {
		log.Error("Cannot resolve output directory: %v", err)
		return res, err
	}
	res.OutputDir = outDir
	warnNestedOutput(cfg, outDir, log)

	logBatchHeader(cfg, log, &res)

	if cfg.DryRun {
		return res, dryRun(cfg, log, files, &res)
	}

	lock, err := acquireLock(filepath.Join(outDir, cfg.LockFile))
	if err != nil {
		log.Error("%v", err)
		return res, err
	}
	defer lock.release(log)

	for i, path := range files {
		if err := interrupted(ctx, log); err != nil {
			return res, err
		}
		log.Info("[%d/%d] Enrich %s", i+1, len(files), filepath.Base(path))
		out, err := transform.Enrich(path, enrichOptions(cfg))
		if err != nil {
			return res, fail(log, err)
		}
		res.Enriched = append(res.Enriched, out.Path)
		res.Stats.RowsRead += out.RowsIn
		res.Stats.BlankRows += out.Dropped()
		log.Debug(cfg.Verbose, "  %s -> %s", display.Plural(out.RowsOut, "row"), out.Path)
	}

	if err := interrupted(ctx, log); err != nil {
		return res, err
	}
	merged, err := transform.Merge(res.Enriched, filepath.Join(outDir, cfg.MasterFile))
	if err != nil {
		return res, fail(log, err)
	}
	res.MergedPath = merged.Path
	res.Stats.MergedLines = merged.RowsOut
	log.Success("Merged %s into %s", display.Plural(len(res.Enriched), "file"), merged.Path)

	if cfg.CleanIntermediates {
		cleanIntermediates(cfg, log, res.Enriched)
	}

	if err := interrupted(ctx, log); err != nil {
		return res, err
	}
	dedup, err := transform.Dedup(merged.Path, filepath.Join(outDir, cfg.DedupFile), cfg.KeyColumn)
	if err != nil {
		return res, fail(log, err)
	}
	res.DedupPath = dedup.Path
	res.Stats.Duplicates = dedup.Dropped()
	log.Success("Removed %s -> %s", display.Plural(dedup.Dropped(), "duplicate"), dedup.Path)

	if err := interrupted(ctx, log); err != nil {
		return res, err
	}
	list, err := transform.LoadDenylist(cfg.DenylistPath, DenylistOptions(cfg))
	if err != nil {
		return res, fail(log, err)
	}
	log.Debug(cfg.Verbose, "Loaded %d denylist entries from %s", list.Len(), cfg.DenylistPath)

	filtered, err := transform.FilterWith(dedup.Path, filepath.Join(outDir, cfg.FilteredFile), list, transform.FilterOptions{
		KeyColumn: cfg.KeyColumn,
		OnExclude: func(key, entry string) {
			if key == entry {
				log.Debug(cfg.Verbose, "  Excluded %q", key)
			} else {
				log.Debug(cfg.Verbose, "  Excluded %q (contains %q)", key, entry)
			}
		},
	})
	if err != nil {
		return res, fail(log, err)
	}
	res.FilteredPath = filtered.Path
	res.Stats.Excluded = filtered.Dropped()
	res.Stats.RowsOut = filtered.RowsOut
	log.Success("Removed %s -> %s", display.Plural(filtered.Dropped(), "denylisted record"), filtered.Path)

	res.Stats.OutputBytes = totalSize(res.MergedPath, res.DedupPath, res.FilteredPath)
	res.Stats.Elapsed = time.Since(start)
	logSummary(cfg, log, &res)
	return res, nil
}

// DenylistOptions maps the configured header mode onto loader options.
func DenylistOptions(cfg *config.Config) transform.DenylistOptions {
	switch cfg.DenylistHeader {
	case config.HeaderMarker:
		return transform.DenylistOptions{SkipMarker: cfg.DenylistMarker}
	case config.HeaderNone:
		return transform.DenylistOptions{}
	default:
		return transform.DenylistOptions{SkipFirstLine: true}
	}
}

func enrichOptions(cfg *config.Config) transform.EnrichOptions {
	return transform.EnrichOptions{
		Dir:     cfg.WorkDir,
		Suffix:  cfg.EnrichedSuffix,
		Columns: cfg.MetadataColumns,
	}
}

// resolveOutputDir returns the absolute output directory. An empty dir means
// the current directory; a dir that does not exist falls back to the current
// directory with a warning.
func resolveOutputDir(dir string, log *logging.Logger) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if dir == "" {
		return cwd, nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		log.Warn("Output directory %s does not exist, writing to %s", dir, cwd)
		return cwd, nil
	}
	return filepath.Abs(dir)
}

// warnNestedOutput warns when outputs land inside the input directory.
// Discovery skips them, so this is advisory.
func warnNestedOutput(cfg *config.Config, outDir string, log *logging.Logger) {
	inputAbs, err := absPath(cfg.InputDir)
	if err != nil {
		return
	}
	outputAbs, err := absPath(outDir)
	if err != nil {
		return
	}
	if err := cfg.ValidatePaths(inputAbs, outputAbs); err != nil {
		log.Warn("%v (%s); outputs share the input suffix", err, outDir)
	}
}

// absPath returns the absolute path with symlinks resolved.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// dryRun parses every file name and reports what a real run would write.
// It fails with transform.ErrFormat when any name is malformed.
func dryRun(cfg *config.Config, log *logging.Logger, files []string, res *Result) error {
	bad := 0
	for i, path := range files {
		meta, err := naming.ParseMetadata(path)
		if err != nil {
			log.Error("[%d/%d] %v", i+1, len(files), err)
			bad++
			continue
		}
		log.Info("[%d/%d] %s (%s)", i+1, len(files), filepath.Base(path), meta)
		log.Success("[DRY] Would write %s", naming.DerivedPath(path, cfg.EnrichedSuffix, cfg.WorkDir))
	}
	for _, name := range []string{cfg.MasterFile, cfg.DedupFile, cfg.FilteredFile} {
		log.Success("[DRY] Would write %s", filepath.Join(res.OutputDir, name))
	}
	if bad > 0 {
		return fmt.Errorf("%w: %d of %d file names", transform.ErrFormat, bad, len(files))
	}
	return nil
}

// cleanIntermediates removes enriched files once the master file exists.
func cleanIntermediates(cfg *config.Config, log *logging.Logger, paths []string) {
	removed := 0
	for _, p := range paths {
		if err := os.Remove(p); err != nil {
			log.Warn("Cannot remove %s: %v", p, err)
			continue
		}
		removed++
	}
	log.Debug(cfg.Verbose, "Removed %s", display.Plural(removed, "intermediate file"))
}

func interrupted(ctx context.Context, log *logging.Logger) error {
	if err := ctx.Err(); err != nil {
		log.Warn("Interrupted")
		return err
	}
	return nil
}

func fail(log *logging.Logger, err error) error {
	log.Error("%v", err)
	return err
}

func totalSize(paths ...string) int64 {
	var n int64
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil {
			n += info.Size()
		}
	}
	return n
}

// --- Logging helpers ---

func logBatchHeader(cfg *config.Config, log *logging.Logger, res *Result) {
	log.Info("Run %s", res.RunID)
	log.Info("Found %s in %s", display.Plural(res.Stats.Files, "input file"), cfg.InputDir)
	log.Info("Denylist: %s (header: %s)", cfg.DenylistPath, cfg.DenylistHeader)
	log.Info("Identity key: column %d", cfg.KeyColumn)
	log.Info("Output: %s", res.OutputDir)
	if cfg.WorkDir != "" {
		log.Info("Intermediates: %s", cfg.WorkDir)
	}
	if cfg.DryRun {
		log.Warn("DRY RUN")
	}
}

func logSummary(cfg *config.Config, log *logging.Logger, res *Result) {
	s := &res.Stats
	log.Info("==============================")
	log.Success("Done: %s written to %s", display.Plural(s.RowsOut, "record"), res.FilteredPath)
	if !cfg.ShowSummary {
		return
	}
	fmt.Println(display.RenderSummary("Run "+res.RunID, s.SummaryRows()))
}
