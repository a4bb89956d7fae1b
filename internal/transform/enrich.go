package transform

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/backmassage/listmerge/internal/naming"
)

// Defaults applied by [Enrich] when the options leave them empty.
const DefaultEnrichedSuffix = "_COLS_ADDED"

// DefaultMetadataColumns are the header names of the prepended columns.
var DefaultMetadataColumns = []string{"Job", "AA", "Pass", "List"}

// EnrichOptions controls where enriched files land and how the new columns
// are named.
type EnrichOptions struct {
	Dir     string   // Output directory; empty means the current directory.
	Suffix  string   // Inserted before the extension; default DefaultEnrichedSuffix.
	Columns []string // Exactly four header names; default DefaultMetadataColumns.
	Output  string   // Explicit output path; overrides Dir and Suffix.
}

// Enrich prepends the metadata parsed from inputPath's base name to every
// row of the file and writes the result to a new file named after the input
// with opts.Suffix inserted before the extension.
//
// Rows whose fields are all empty or whitespace are skipped. The input
// header is kept after the metadata column names. Nothing is written when the
// file name has fewer than four tokens.
func Enrich(inputPath string, opts EnrichOptions) (Output, error) {
	suffix := opts.Suffix
	if suffix == "" {
		suffix = DefaultEnrichedSuffix
	}
	columns := opts.Columns
	if len(columns) == 0 {
		columns = DefaultMetadataColumns
	}
	if len(columns) != naming.MinTokens {
		return Output{}, fmt.Errorf("enrich: %d metadata columns configured, need %d", len(columns), naming.MinTokens)
	}

	meta, err := naming.ParseMetadata(inputPath)
	if err != nil {
		return Output{}, stageErr(StageEnrich, inputPath, ErrFormat, err)
	}
	prefix := meta.Values()

	in, err := os.Open(inputPath)
	if err != nil {
		return Output{}, stageErr(StageEnrich, inputPath, ErrIO, err)
	}
	defer in.Close()

	r := newReader(in)
	header, err := r.Read()
	if err == io.EOF {
		return Output{}, stageErr(StageEnrich, inputPath, ErrFormat, fmt.Errorf("missing header row"))
	}
	if err != nil {
		return Output{}, readErr(StageEnrich, inputPath, err)
	}

	out := Output{}
	outPath := opts.Output
	if outPath == "" {
		outPath = naming.DerivedPath(inputPath, suffix, opts.Dir)
	}
	abs, err := writeRecords(StageEnrich, outPath, []string{inputPath}, func(w *csv.Writer) error {
		if err := writeRecord(StageEnrich, outPath, w, concat(columns, header)); err != nil {
			return err
		}
		for {
			rec, err := r.Read()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return readErr(StageEnrich, inputPath, err)
			}
			out.RowsIn++
			if isBlank(rec) {
				continue
			}
			if err := writeRecord(StageEnrich, outPath, w, concat(prefix, rec)); err != nil {
				return err
			}
			out.RowsOut++
		}
	})
	if err != nil {
		return Output{}, err
	}
	out.Path = abs
	return out, nil
}

// isBlank reports whether every field of rec is empty or whitespace.
func isBlank(rec []string) bool {
	for _, field := range rec {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
