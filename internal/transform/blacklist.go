package transform

import (
	"encoding/csv"
)

// FilterOptions configures [FilterBlacklist].
type FilterOptions struct {
	KeyColumn int
	Denylist  DenylistOptions

	// OnExclude, when set, is called for every dropped record.
	OnExclude func(key, entry string)
}

// FilterBlacklist loads the denylist at denylistPath and copies the records
// of inputPath to outputPath, dropping those whose raw identity key is
// excluded by it (see [Denylist]). The header row is treated like any other
// record.
func FilterBlacklist(inputPath, outputPath, denylistPath string, opts FilterOptions) (Output, error) {
	if err := guardOutput(StageFilter, outputPath, denylistPath); err != nil {
		return Output{}, err
	}
	list, err := LoadDenylist(denylistPath, opts.Denylist)
	if err != nil {
		return Output{}, err
	}
	return FilterWith(inputPath, outputPath, list, opts)
}

// FilterWith is [FilterBlacklist] with an already loaded denylist.
func FilterWith(inputPath, outputPath string, list *Denylist, opts FilterOptions) (Output, error) {
	var out Output
	abs, err := writeRecords(StageFilter, outputPath, []string{inputPath}, func(w *csv.Writer) error {
		return eachRecord(StageFilter, inputPath, func(rec []string) error {
			out.RowsIn++
			key, err := identityKey(StageFilter, inputPath, rec, opts.KeyColumn, out.RowsIn)
			if err != nil {
				return err
			}
			if entry, ok := list.Match(key); ok {
				if opts.OnExclude != nil {
					opts.OnExclude(key, entry)
				}
				return nil
			}
			out.RowsOut++
			return writeRecord(StageFilter, outputPath, w, rec)
		})
	})
	if err != nil {
		return Output{}, err
	}
	out.Path = abs
	return out, nil
}
