// Package transform implements the file-to-file stages of the list pipeline:
// enrichment, merging, deduplication, and denylist filtering.
//
// Every stage reads complete input files and writes a brand-new output file;
// inputs are never modified, and an output path naming an input is rejected
// with [ErrOverwrite] before anything is created. A stage that fails removes
// its partial output and returns a *StageError wrapping one of the sentinels.
package transform
