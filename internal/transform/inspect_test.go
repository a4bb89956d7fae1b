package transform

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "J_B_Pass 1_L.csv", table("Name,Score", "Alice,1", ",", "Bob,2,extra"))

	info, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Score"}, info.Header)
	assert.Equal(t, 2, info.Rows)
	assert.Equal(t, 1, info.BlankRows)
	assert.Equal(t, 3, info.MaxWidth)
}

func TestInspect_Missing(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, ErrIO)
}
