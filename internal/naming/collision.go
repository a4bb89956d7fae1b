package naming

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CollisionResolver tracks derived output paths claimed by input files so two
// inputs with the same base name never write the same file. It is meant for
// sequential use within one command.
type CollisionResolver struct {
	owners map[string]string // output path → input path that owns it
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{owners: make(map[string]string)}
}

// Resolve returns the output path for input. If requested is unclaimed (or
// already owned by input) it is returned as is; otherwise a "-N" variant of
// the stem is generated, starting at 2.
//
//	r.Resolve("a/x.csv", "out/x_COLS_ADDED.csv") == "out/x_COLS_ADDED.csv"
//	r.Resolve("b/x.csv", "out/x_COLS_ADDED.csv") == "out/x_COLS_ADDED-2.csv"
func (cr *CollisionResolver) Resolve(input, requested string) string {
	key := filepath.Clean(requested)
	owner, exists := cr.owners[key]
	if !exists || owner == input {
		cr.owners[key] = input
		return requested
	}

	dir := filepath.Dir(requested)
	base := filepath.Base(requested)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for n := 2; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, n, ext))
		if cOwner, taken := cr.owners[candidate]; !taken || cOwner == input {
			cr.owners[candidate] = input
			return candidate
		}
	}
}
