package transform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrich_PrependsMetadata(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	in := writeFile(t, inDir, "13_MD_Pass 1_RedHerring.csv", table(
		"Name,Score",
		"Alice,10",
		"Bob,7",
	))

	out, err := Enrich(in, EnrichOptions{Dir: outDir})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "13_MD_Pass 1_RedHerring_COLS_ADDED.csv"), out.Path)
	assert.Equal(t, 2, out.RowsIn)
	assert.Equal(t, 2, out.RowsOut)

	recs := readRecords(t, out.Path)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"Job", "AA", "Pass", "List", "Name", "Score"}, recs[0])
	assert.Equal(t, []string{"13", "MD", "1", "RedHerring", "Alice", "10"}, recs[1])
	assert.Equal(t, []string{"13", "MD", "1", "RedHerring", "Bob", "7"}, recs[2])

	// Header grows by exactly four columns and metadata is constant per row.
	assert.Len(t, recs[0], 2+4)
	for _, rec := range recs[1:] {
		assert.Equal(t, recs[1][:4], rec[:4])
	}
}

func TestEnrich_SkipsBlankRows(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "J_B_Pass 2_L.csv", table(
		"Name,Score",
		"Alice,1",
		",",
		"  ,\t",
		"Carol,3",
	))

	out, err := Enrich(in, EnrichOptions{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, 4, out.RowsIn)
	assert.Equal(t, 2, out.RowsOut)
	assert.Equal(t, 2, out.Dropped())

	recs := readRecords(t, out.Path)
	assert.Equal(t, []string{"Name", "Alice", "Carol"}, keysAt(recs, 4))
}

func TestEnrich_CustomColumnsAndSuffix(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "J_B_Pass 3_L_extra.csv", table("Name", "Zed"))

	out, err := Enrich(in, EnrichOptions{
		Dir:     dir,
		Suffix:  "_ENRICHED",
		Columns: []string{"JobID", "Batch", "PassNo", "ListName"},
	})
	require.NoError(t, err)
	assert.Equal(t, "J_B_Pass 3_L_extra_ENRICHED.csv", filepath.Base(out.Path))

	recs := readRecords(t, out.Path)
	assert.Equal(t, []string{"JobID", "Batch", "PassNo", "ListName", "Name"}, recs[0])
	assert.Equal(t, []string{"J", "B", "3", "L", "Zed"}, recs[1])
}

func TestEnrich_QuotedFieldsSurvive(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "J_B_Pass 1_L.csv", table(
		"Name,Note",
		`"Smith, John","said ""hi"""`,
	))

	out, err := Enrich(in, EnrichOptions{Dir: dir})
	require.NoError(t, err)

	recs := readRecords(t, out.Path)
	assert.Equal(t, []string{"J", "B", "1", "L", "Smith, John", `said "hi"`}, recs[1])
}

func TestEnrich_MalformedNameWritesNothing(t *testing.T) {
	inDir, outDir := t.TempDir(), t.TempDir()
	in := writeFile(t, inDir, "JOB1_AA_Pass 1.csv", table("Name", "Alice"))

	_, err := Enrich(in, EnrichOptions{Dir: outDir})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFormat), "want ErrFormat, got %v", err)

	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageEnrich, se.Stage)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no output file should be created")
}

func TestEnrich_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "J_B_Pass 1_L.csv", "")

	_, err := Enrich(in, EnrichOptions{Dir: dir})
	assert.ErrorIs(t, err, ErrFormat)
	assert.NoFileExists(t, filepath.Join(dir, "J_B_Pass 1_L_COLS_ADDED.csv"))
}

func TestEnrich_MissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := Enrich(filepath.Join(dir, "J_B_Pass 1_L.csv"), EnrichOptions{Dir: dir})
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnrich_MissingOutputDir(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "J_B_Pass 1_L.csv", table("Name", "A"))

	_, err := Enrich(in, EnrichOptions{Dir: filepath.Join(dir, "missing")})
	assert.ErrorIs(t, err, ErrIO)
}

func TestEnrich_WrongColumnCount(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "J_B_Pass 1_L.csv", table("Name", "A"))

	_, err := Enrich(in, EnrichOptions{Dir: dir, Columns: []string{"Job", "AA"}})
	assert.Error(t, err)
}

func TestEnrich_ExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "J_B_Pass 1_L.csv", table("Name", "A"))
	target := filepath.Join(dir, "custom.csv")

	out, err := Enrich(in, EnrichOptions{Dir: "ignored", Output: target})
	require.NoError(t, err)
	assert.Equal(t, target, out.Path)
	assert.Equal(t, []string{"J", "B", "1", "L", "A"}, readRecords(t, target)[1])
}

func TestEnrich_OutputIsInput(t *testing.T) {
	dir := t.TempDir()
	content := table("Name", "A")
	in := writeFile(t, dir, "J_B_Pass 1_L.csv", content)

	_, err := Enrich(in, EnrichOptions{Output: in})
	require.ErrorIs(t, err, ErrOverwrite)

	data, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}
