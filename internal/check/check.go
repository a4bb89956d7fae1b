// Package check provides preflight diagnostics (the check command) and
// pre-pipeline path validation (CheckPaths): the input directory and denylist
// must be readable and the output and work directories writable.
package check

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/backmassage/listmerge/internal/config"
	"github.com/backmassage/listmerge/internal/pipeline"
	"github.com/backmassage/listmerge/internal/transform"
)

// Sentinel errors returned by CheckPaths.
var (
	ErrInputDir  = errors.New("input directory is not readable")
	ErrDenylist  = errors.New("denylist is not readable")
	ErrOutputDir = errors.New("output directory is not writable")
	ErrWorkDir   = errors.New("work directory is not writable")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// stays testable with a recording logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// RunCheck runs every check and logs each outcome. It does not stop at the
// first failure. It returns true when all checks pass.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== Preflight Check ===")
	ok := true

	if err := checkDir(cfg.InputDir); err != nil {
		log.Error("Input: %v", err)
		ok = false
	} else {
		files, _ := pipeline.Discover(cfg.InputDir, cfg.Suffix)
		log.Success("Input: %s (%d %s files)", cfg.InputDir, len(files), cfg.Suffix)
		if len(files) == 0 {
			log.Warn("Input: nothing to process")
		}
	}

	if list, err := transform.LoadDenylist(cfg.DenylistPath, pipeline.DenylistOptions(cfg)); err != nil {
		log.Error("Denylist: %v", err)
		ok = false
	} else {
		log.Success("Denylist: %s (%d entries, header: %s)", cfg.DenylistPath, list.Len(), cfg.DenylistHeader)
		if list.Len() == 0 {
			log.Warn("Denylist: no entries, nothing will be filtered")
		}
	}

	outDir, fellBack := outputDir(cfg.OutputDir)
	if fellBack {
		log.Warn("Output: %s does not exist, a run would write to %s", cfg.OutputDir, outDir)
	}
	if err := checkWritable(outDir); err != nil {
		log.Error("Output: %v", err)
		ok = false
	} else {
		log.Success("Output: %s is writable", outDir)
	}

	if cfg.WorkDir != "" {
		if err := checkWritable(cfg.WorkDir); err != nil {
			log.Error("Work dir: %v", err)
			ok = false
		} else {
			log.Success("Work dir: %s is writable", cfg.WorkDir)
		}
	}
	return ok
}

// CheckPaths is the pre-pipeline validation run before any output is
// written. It returns the first failure wrapped in one of the package
// sentinels.
func CheckPaths(cfg *config.Config) error {
	if err := checkDir(cfg.InputDir); err != nil {
		return fmt.Errorf("%w: %w", ErrInputDir, err)
	}
	if err := checkFile(cfg.DenylistPath); err != nil {
		return fmt.Errorf("%w: %w", ErrDenylist, err)
	}
	outDir, _ := outputDir(cfg.OutputDir)
	if err := checkWritable(outDir); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputDir, err)
	}
	if cfg.WorkDir != "" {
		if err := checkWritable(cfg.WorkDir); err != nil {
			return fmt.Errorf("%w: %w", ErrWorkDir, err)
		}
	}
	return nil
}

// --- internal helpers ---

// outputDir mirrors the runner's fallback: empty or missing means ".".
func outputDir(dir string) (string, bool) {
	if dir == "" {
		return ".", false
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return ".", true
	}
	return dir, false
}

func checkDir(path string) error {
	if path == "" {
		return errors.New("path not set")
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func checkFile(path string) error {
	if path == "" {
		return errors.New("path not set")
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}

// checkWritable creates and removes a probe file in dir.
func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".listmerge-check-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
