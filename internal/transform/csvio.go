package transform

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Output describes a file written by a stage.
type Output struct {
	Path    string // Absolute path of the written file.
	RowsIn  int    // Records (or lines, for merge) read.
	RowsOut int    // Records (or lines, for merge) written.
}

// Dropped is the number of rows the stage removed.
func (o Output) Dropped() int { return o.RowsIn - o.RowsOut }

// newReader returns a lenient CSV reader: rows may differ in width and stray
// quotes inside unquoted fields are accepted.
func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// eachRecord opens path and calls fn for every record in order.
func eachRecord(stage, path string, fn func(rec []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return stageErr(stage, path, ErrIO, err)
	}
	defer f.Close()

	r := newReader(f)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return readErr(stage, path, err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
}

// writeRecords creates path, lets fill write records, then flushes and
// closes it. On any failure the partial file is removed. Nothing is created
// when path is one of inputs. It returns the absolute path of the written
// file.
func writeRecords(stage, path string, inputs []string, fill func(w *csv.Writer) error) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", stageErr(stage, path, ErrIO, err)
	}
	if err := guardOutput(stage, abs, inputs...); err != nil {
		return "", err
	}
	f, err := os.Create(abs)
	if err != nil {
		return "", stageErr(stage, path, ErrIO, err)
	}

	w := csv.NewWriter(f)
	ferr := fill(w)
	if ferr == nil {
		w.Flush()
		if err := w.Error(); err != nil {
			ferr = stageErr(stage, path, ErrIO, err)
		}
	}
	if err := f.Close(); err != nil && ferr == nil {
		ferr = stageErr(stage, path, ErrIO, err)
	}
	if ferr != nil {
		_ = os.Remove(abs)
		return "", ferr
	}
	return abs, nil
}

// guardOutput rejects an output path that names the same file as one of
// inputs. Creating the output would truncate that input before it is read.
func guardOutput(stage, output string, inputs ...string) error {
	oi, err := os.Stat(output)
	if err != nil {
		return nil
	}
	for _, in := range inputs {
		ii, err := os.Stat(in)
		if err == nil && os.SameFile(oi, ii) {
			return stageErr(stage, output, ErrOverwrite, fmt.Errorf("same file as input %s", in))
		}
	}
	return nil
}

// writeRecord writes one record, classifying failures as I/O.
func writeRecord(stage, path string, w *csv.Writer, rec []string) error {
	if err := w.Write(rec); err != nil {
		return stageErr(stage, path, ErrIO, err)
	}
	return nil
}

// identityKey returns field col of rec. Records too short to hold the key
// are a format error; n is the 1-based record number for the message.
func identityKey(stage, path string, rec []string, col, n int) (string, error) {
	if col < 0 || col >= len(rec) {
		return "", stageErr(stage, path, ErrFormat,
			fmt.Errorf("record %d has %d fields, identity key is column %d", n, len(rec), col))
	}
	return rec[col], nil
}
