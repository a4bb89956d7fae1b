package transform

// TableInfo summarizes a CSV file without transforming it.
type TableInfo struct {
	Header    []string
	Rows      int // Data rows, blank rows excluded.
	BlankRows int
	MaxWidth  int // Widest row, header included.
}

// Inspect reads path and reports its header and row counts.
func Inspect(path string) (TableInfo, error) {
	var info TableInfo
	first := true
	err := eachRecord(StageInspect, path, func(rec []string) error {
		if len(rec) > info.MaxWidth {
			info.MaxWidth = len(rec)
		}
		if first {
			info.Header = rec
			first = false
			return nil
		}
		if isBlank(rec) {
			info.BlankRows++
			return nil
		}
		info.Rows++
		return nil
	})
	if err != nil {
		return TableInfo{}, err
	}
	return info, nil
}
