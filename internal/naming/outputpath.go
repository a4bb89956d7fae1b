package naming

import (
	"path/filepath"
	"strings"
)

// DerivedPath builds the path of a file derived from input: the input's base
// name with suffix inserted before the extension, placed in dir. The input's
// own directory is dropped; an empty dir means the current directory.
//
//	DerivedPath("/in/13_MD_Pass 1_X.csv", "_COLS_ADDED", "/work") == "/work/13_MD_Pass 1_X_COLS_ADDED.csv"
func DerivedPath(input, suffix, dir string) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext) + suffix + ext
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
