package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/backmassage/listmerge/internal/config"
	"github.com/backmassage/listmerge/internal/display"
	"github.com/backmassage/listmerge/internal/logging"
	"github.com/backmassage/listmerge/internal/naming"
	"github.com/backmassage/listmerge/internal/term"
	"github.com/backmassage/listmerge/internal/transform"
)

// FileReport is the analysis of one input file.
type FileReport struct {
	Path    string
	Meta    naming.Metadata
	MetaErr error // Set when the file name is malformed.
	Info    transform.TableInfo
	ReadErr error // Set when the file cannot be read as CSV.

	// WidthMismatch is set when the header column count differs from the
	// first readable file's.
	WidthMismatch bool
}

// OK reports whether the file would pass enrichment.
func (r *FileReport) OK() bool {
	return r.MetaErr == nil && r.ReadErr == nil && r.Info.Header != nil
}

// Inspect parses the name and reads the contents of every discovered file.
// It writes nothing.
func Inspect(ctx context.Context, cfg *config.Config, log *logging.Logger) ([]FileReport, error) {
	files := discoverInputs(cfg, log)
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s (suffix %q)", ErrNoInput, cfg.InputDir, cfg.Suffix)
	}

	isTTY := term.IsTerminal(os.Stdout)
	reports := make([]FileReport, 0, len(files))
	refWidth := -1
	for i, path := range files {
		if ctx.Err() != nil {
			if isTTY {
				clearProgress()
			}
			return reports, ctx.Err()
		}
		printProgress(isTTY, i+1, len(files), filepath.Base(path))

		r := FileReport{Path: path}
		r.Meta, r.MetaErr = naming.ParseMetadata(path)
		r.Info, r.ReadErr = transform.Inspect(path)
		if r.ReadErr == nil && r.Info.Header != nil {
			if refWidth < 0 {
				refWidth = len(r.Info.Header)
			} else if len(r.Info.Header) != refWidth {
				r.WidthMismatch = true
			}
		}
		reports = append(reports, r)
	}
	if isTTY {
		clearProgress()
	}
	return reports, nil
}

// Analyze inspects the input directory and prints a per-file table with
// metadata, row counts, and problems that would abort a run.
func Analyze(ctx context.Context, cfg *config.Config, log *logging.Logger) error {
	log.Info("Analyzing %s …", cfg.InputDir)
	reports, err := Inspect(ctx, cfg, log)
	if err != nil {
		log.Error("%v", err)
		return err
	}

	rows := make([][]string, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		rows = append(rows, []string{
			filepath.Base(r.Path),
			r.Meta.Job, r.Meta.Batch, r.Meta.Pass, r.Meta.List,
			strconv.Itoa(len(r.Info.Header)),
			display.FormatCount(r.Info.Rows),
			display.FormatCount(r.Info.BlankRows),
			status(r),
		})
	}
	headers := append([]string{"File"}, cfg.MetadataColumns...)
	headers = append(headers, "Columns", "Rows", "Blank", "Status")
	aligns := []display.Align{
		display.AlignLeft, display.AlignLeft, display.AlignLeft, display.AlignLeft, display.AlignLeft,
		display.AlignRight, display.AlignRight, display.AlignRight, display.AlignLeft,
	}
	fmt.Println(display.RenderTable(headers, rows, aligns))

	logAnalysisSummary(log, reports)
	return nil
}

func status(r *FileReport) string {
	var problems []string
	if r.MetaErr != nil {
		problems = append(problems, "bad name")
	}
	if r.ReadErr != nil {
		problems = append(problems, "unreadable")
	} else if r.Info.Header == nil {
		problems = append(problems, "empty")
	}
	if r.WidthMismatch {
		problems = append(problems, "header width")
	}
	if len(problems) == 0 {
		return "ok"
	}
	return strings.Join(problems, ", ")
}

func logAnalysisSummary(log *logging.Logger, reports []FileReport) {
	var rows, blank, failing, mismatched int
	for i := range reports {
		r := &reports[i]
		rows += r.Info.Rows
		blank += r.Info.BlankRows
		if !r.OK() {
			failing++
		}
		if r.WidthMismatch {
			mismatched++
		}
		if r.MetaErr != nil {
			log.Error("  %v", r.MetaErr)
		}
		if r.ReadErr != nil {
			log.Error("  %v", r.ReadErr)
		}
	}

	log.Info("Analyzed %s: %s, %s blank", display.Plural(len(reports), "file"), display.Plural(rows, "data row"), display.FormatCount(blank))
	if mismatched > 0 {
		log.Warn("  %s with a header width different from the first file", display.Plural(mismatched, "file"))
	}
	if failing > 0 {
		log.Error("  %s would abort a run", display.Plural(failing, "file"))
	} else {
		log.Success("  All files would enrich cleanly")
	}
}

// printProgress shows a live inspection counter. On a TTY it writes an
// inline \r-overwritten line; otherwise it is a no-op.
func printProgress(isTTY bool, current, total int, name string) {
	if !isTTY {
		return
	}
	pct := current * 100 / total
	status := fmt.Sprintf("  Inspecting [%d/%d] %d%% ", current, total, pct)

	maxName := 40
	if len(name) > maxName {
		name = name[:maxName-1] + "…"
	}
	status += name

	// Pad to 80 chars to overwrite previous longer lines, then \r.
	if len(status) < 80 {
		status += strings.Repeat(" ", 80-len(status))
	}
	fmt.Fprintf(os.Stdout, "\r%s", status)
}

// clearProgress erases the inline progress line on a TTY.
func clearProgress() {
	fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", 80))
}
