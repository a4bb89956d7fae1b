package transform

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// DenylistOptions controls which lines of a denylist file are headers.
type DenylistOptions struct {
	SkipFirstLine bool   // Treat the first line as a header.
	SkipMarker    string // When set, skip every line containing this text.
}

// Denylist is a set of identity keys to exclude.
//
// Matching is two-tier: a key equal to an entry is excluded; otherwise any
// entry occurring as a substring of the key excludes it. Short or generic
// entries therefore exclude unrelated keys that merely contain them
// ("Smith" excludes "Johnathan Smith" and "Smithers").
type Denylist struct {
	exact   map[string]struct{}
	entries []string // load order, for the substring scan
}

// NewDenylist builds a denylist from entries. Entries are trimmed; blank
// entries are ignored since the empty string is a substring of every key.
func NewDenylist(entries ...string) *Denylist {
	d := &Denylist{exact: make(map[string]struct{})}
	for _, e := range entries {
		d.add(e)
	}
	return d
}

func (d *Denylist) add(entry string) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return
	}
	if _, ok := d.exact[entry]; ok {
		return
	}
	d.exact[entry] = struct{}{}
	d.entries = append(d.entries, entry)
}

// LoadDenylist reads one entry per line from path.
func LoadDenylist(path string, opts DenylistOptions) (*Denylist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, stageErr(StageDenylist, path, ErrIO, err)
	}
	defer f.Close()

	d := NewDenylist()
	br := bufio.NewReader(f)
	first := true
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			skip := first && opts.SkipFirstLine
			first = false
			if !skip && (opts.SkipMarker == "" || !strings.Contains(line, opts.SkipMarker)) {
				d.add(line)
			}
		}
		if err == io.EOF {
			return d, nil
		}
		if err != nil {
			return nil, stageErr(StageDenylist, path, ErrIO, err)
		}
	}
}

// Len returns the number of distinct entries.
func (d *Denylist) Len() int { return len(d.entries) }

// Entries returns the entries in load order.
func (d *Denylist) Entries() []string {
	return append([]string(nil), d.entries...)
}

// Match returns the entry that excludes key, if any.
func (d *Denylist) Match(key string) (string, bool) {
	if _, ok := d.exact[key]; ok {
		return key, true
	}
	for _, e := range d.entries {
		if strings.Contains(key, e) {
			return e, true
		}
	}
	return "", false
}

// Excludes reports whether key is on the denylist.
func (d *Denylist) Excludes(key string) bool {
	_, ok := d.Match(key)
	return ok
}
