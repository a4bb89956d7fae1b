package transform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedup_FirstOccurrenceWins(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.csv", table(
		"J,B,P,L,k1,first",
		"J,B,P,L,k2,x",
		"J,B,P,L,k1,second",
		"J,B,P,L,k3,y",
	))

	out, err := Dedup(in, filepath.Join(dir, "out.csv"), 4)
	require.NoError(t, err)
	assert.Equal(t, 4, out.RowsIn)
	assert.Equal(t, 3, out.RowsOut)
	assert.Equal(t, 1, out.Dropped())

	recs := readRecords(t, out.Path)
	assert.Equal(t, []string{"k1", "k2", "k3"}, keysAt(recs, 4))
	assert.Equal(t, "first", recs[0][5])
}

func TestDedup_Idempotent(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.csv", table("a,x", "b,y", "a,z", "c,w", "b,v"))

	once, err := Dedup(in, filepath.Join(dir, "once.csv"), 0)
	require.NoError(t, err)
	twice, err := Dedup(once.Path, filepath.Join(dir, "twice.csv"), 0)
	require.NoError(t, err)

	a, err := os.ReadFile(once.Path)
	require.NoError(t, err)
	b, err := os.ReadFile(twice.Path)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, twice.RowsIn, twice.RowsOut)
}

func TestDedup_KeysUnique(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.csv", table("x", "y", "x", "x", "z", "y"))

	out, err := Dedup(in, filepath.Join(dir, "out.csv"), 0)
	require.NoError(t, err)

	keys := keysAt(readRecords(t, out.Path), 0)
	seen := map[string]bool{}
	for _, k := range keys {
		assert.False(t, seen[k], "duplicate key %q", k)
		seen[k] = true
	}
	assert.Equal(t, []string{"x", "y", "z"}, keys)
}

func TestDedup_StripsQuotesFromKey(t *testing.T) {
	dir := t.TempDir()
	// The second key parses to "k" with literal quotes.
	in := writeFile(t, dir, "in.csv", "k,1\n\"\"\"k\"\"\",2\n")

	out, err := Dedup(in, filepath.Join(dir, "out.csv"), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, out.RowsOut)
}

func TestDedup_HeaderIsARecord(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.csv", table("Name", "Alice", "Name"))

	out, err := Dedup(in, filepath.Join(dir, "out.csv"), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Alice"}, keysAt(readRecords(t, out.Path), 0))
}

func TestDedup_ShortRecord(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.csv", table("a,b,c,d,e", "a,b"))
	outPath := filepath.Join(dir, "out.csv")

	_, err := Dedup(in, outPath, 4)
	assert.ErrorIs(t, err, ErrFormat)
	assert.NoFileExists(t, outPath)
}

func TestDedup_MissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := Dedup(filepath.Join(dir, "nope.csv"), filepath.Join(dir, "out.csv"), 0)
	assert.ErrorIs(t, err, ErrIO)
}

func TestDedup_OutputIsInput(t *testing.T) {
	dir := t.TempDir()
	content := table("J,B,P,L,k1", "J,B,P,L,k2", "J,B,P,L,k1")
	in := writeFile(t, dir, "in.csv", content)

	_, err := Dedup(in, in, 4)
	require.ErrorIs(t, err, ErrOverwrite)

	data, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}
