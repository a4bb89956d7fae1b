package transform

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile creates dir/name with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// readRecords parses path as CSV.
func readRecords(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	require.NoError(t, err)
	return recs
}

// keysAt returns column col of every record.
func keysAt(recs [][]string, col int) []string {
	out := make([]string, len(recs))
	for i, rec := range recs {
		out[i] = rec[col]
	}
	return out
}

// table builds CSV text from rows of comma-joined fields.
func table(rows ...string) string {
	return strings.Join(rows, "\n") + "\n"
}
