package pipeline

import (
	"time"

	"github.com/backmassage/listmerge/internal/display"
)

// RunStats tracks row counters and byte totals across a pipeline run.
type RunStats struct {
	Files       int // Input files discovered.
	RowsRead    int // Data rows read across all inputs.
	BlankRows   int // Blank rows skipped during enrichment.
	MergedLines int // Lines written to the master file, header included.
	Duplicates  int // Records dropped by dedup.
	Excluded    int // Records dropped by the denylist filter.
	RowsOut     int // Records in the filtered file, header included.
	OutputBytes int64
	Elapsed     time.Duration
}

// SummaryRows returns the counters as label/value pairs for the summary table.
func (s *RunStats) SummaryRows() []display.SummaryRow {
	return []display.SummaryRow{
		{Label: "Input files", Value: display.FormatCount(s.Files)},
		{Label: "Rows read", Value: display.FormatCount(s.RowsRead)},
		{Label: "Blank rows skipped", Value: display.FormatCount(s.BlankRows)},
		{Label: "Merged lines", Value: display.FormatCount(s.MergedLines)},
		{Label: "Duplicates removed", Value: display.FormatCount(s.Duplicates)},
		{Label: "Denylisted removed", Value: display.FormatCount(s.Excluded)},
		{Label: "Records written", Value: display.FormatCount(s.RowsOut)},
		{Label: "Output size", Value: display.FormatBytes(s.OutputBytes)},
		{Label: "Elapsed", Value: s.Elapsed.Round(time.Millisecond).String()},
	}
}
