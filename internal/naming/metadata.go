package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Separator splits a base name into metadata tokens.
const Separator = "_"

// passLabel is removed from the third token ("Pass 1" -> "1").
const passLabel = "Pass "

// MinTokens is the number of underscore-delimited tokens a base name needs.
const MinTokens = 4

// ErrMalformedName is returned when a base name has fewer than [MinTokens] tokens.
var ErrMalformedName = errors.New("file name does not follow <job>_<batch>_Pass <n>_<list>")

// Metadata holds the values parsed from a file name such as
// "13_MD_Pass 1_RedHerring.csv".
type Metadata struct {
	Job   string
	Batch string
	Pass  string
	List  string
}

// ParseMetadata parses the base name of path (directory and extension
// dropped). Tokens past the fourth are ignored. A third token that is not
// in "Pass N" form is kept as is.
func ParseMetadata(path string) (Metadata, error) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	tokens := strings.Split(stem, Separator)
	if len(tokens) < MinTokens {
		return Metadata{}, fmt.Errorf("%w: %q has %d tokens", ErrMalformedName, base, len(tokens))
	}
	return Metadata{
		Job:   tokens[0],
		Batch: tokens[1],
		Pass:  strings.ReplaceAll(tokens[2], passLabel, ""),
		List:  tokens[3],
	}, nil
}

// Values returns the metadata in column order: job, batch, pass, list.
func (m Metadata) Values() []string {
	return []string{m.Job, m.Batch, m.Pass, m.List}
}

// String formats the metadata for log lines.
func (m Metadata) String() string {
	return fmt.Sprintf("job=%s batch=%s pass=%s list=%s", m.Job, m.Batch, m.Pass, m.List)
}
