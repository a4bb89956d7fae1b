package transform

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Merge concatenates inputs into outputPath. The first file is copied
// verbatim, header included; every later file is copied without its first
// line. The copy is line-based, so content is never re-parsed as CSV.
// When a file does not end in a newline, one is inserted before the next
// file's content. Order follows inputs.
func Merge(inputs []string, outputPath string) (Output, error) {
	if len(inputs) == 0 {
		return Output{}, stageErr(StageMerge, outputPath, ErrEmptyInput, nil)
	}

	abs, err := filepath.Abs(outputPath)
	if err != nil {
		return Output{}, stageErr(StageMerge, outputPath, ErrIO, err)
	}
	if err := guardOutput(StageMerge, abs, inputs...); err != nil {
		return Output{}, err
	}
	f, err := os.Create(abs)
	if err != nil {
		return Output{}, stageErr(StageMerge, outputPath, ErrIO, err)
	}

	lc := &lineCopier{w: bufio.NewWriter(f)}
	merr := func() error {
		for i, path := range inputs {
			if err := lc.copyFile(path, i > 0); err != nil {
				return err
			}
		}
		if err := lc.w.Flush(); err != nil {
			return stageErr(StageMerge, outputPath, ErrIO, err)
		}
		return nil
	}()
	if err := f.Close(); err != nil && merr == nil {
		merr = stageErr(StageMerge, outputPath, ErrIO, err)
	}
	if merr != nil {
		_ = os.Remove(abs)
		return Output{}, merr
	}
	return Output{Path: abs, RowsIn: lc.read, RowsOut: lc.written}, nil
}

// lineCopier appends lines from successive files to w.
type lineCopier struct {
	w              *bufio.Writer
	read, written  int
	pendingNewline bool // last written line had no terminator
}

func (lc *lineCopier) copyFile(path string, skipHeader bool) error {
	in, err := os.Open(path)
	if err != nil {
		return stageErr(StageMerge, path, ErrIO, err)
	}
	defer in.Close()

	br := bufio.NewReader(in)
	first := true
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			lc.read++
			if !(first && skipHeader) {
				if werr := lc.writeLine(line); werr != nil {
					return stageErr(StageMerge, path, ErrIO, werr)
				}
			}
			first = false
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return stageErr(StageMerge, path, ErrIO, err)
		}
	}
}

func (lc *lineCopier) writeLine(line string) error {
	if lc.pendingNewline {
		if _, err := lc.w.WriteString("\n"); err != nil {
			return err
		}
	}
	if _, err := lc.w.WriteString(line); err != nil {
		return err
	}
	lc.written++
	lc.pendingNewline = !strings.HasSuffix(line, "\n")
	return nil
}
