package transform

import (
	"encoding/csv"
	"strings"
)

// Dedup copies the records of inputPath to outputPath, dropping every record
// whose identity key (column keyColumn, surrounding double quotes stripped)
// was already seen. The first occurrence wins and order is preserved. The
// header row is treated like any other record.
func Dedup(inputPath, outputPath string, keyColumn int) (Output, error) {
	var out Output
	seen := make(map[string]struct{})

	abs, err := writeRecords(StageDedup, outputPath, []string{inputPath}, func(w *csv.Writer) error {
		return eachRecord(StageDedup, inputPath, func(rec []string) error {
			out.RowsIn++
			key, err := identityKey(StageDedup, inputPath, rec, keyColumn, out.RowsIn)
			if err != nil {
				return err
			}
			key = strings.Trim(key, `"`)
			if _, dup := seen[key]; dup {
				return nil
			}
			seen[key] = struct{}{}
			out.RowsOut++
			return writeRecord(StageDedup, outputPath, w, rec)
		})
	})
	if err != nil {
		return Output{}, err
	}
	out.Path = abs
	return out, nil
}
