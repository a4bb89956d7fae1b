package transform

import (
	"encoding/csv"
	"errors"
	"fmt"
)

// Sentinel errors classifying stage failures. Test with errors.Is.
var (
	ErrFormat     = errors.New("malformed input")
	ErrEmptyInput = errors.New("no input files")
	ErrIO         = errors.New("i/o failure")
	ErrOverwrite  = errors.New("output would overwrite an input")
)

// Stage names used in errors and log lines.
const (
	StageEnrich   = "enrich"
	StageMerge    = "merge"
	StageDedup    = "dedup"
	StageDenylist = "denylist"
	StageFilter   = "filter"
	StageInspect  = "inspect"
)

// StageError reports which stage failed on which file. It unwraps to both
// the classifying sentinel and the underlying cause.
type StageError struct {
	Stage string
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage, path string, kind, cause error) error {
	if cause == nil {
		return &StageError{Stage: stage, Path: path, Err: kind}
	}
	return &StageError{Stage: stage, Path: path, Err: fmt.Errorf("%w: %w", kind, cause)}
}

// readErr classifies a CSV read failure: parse errors are format problems,
// anything else is I/O.
func readErr(stage, path string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return stageErr(stage, path, ErrFormat, err)
	}
	return stageErr(stage, path, ErrIO, err)
}
