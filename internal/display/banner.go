// Package display renders the banner, summary tables, and human-readable
// numbers for terminal output.
package display

import (
	"fmt"
	"io"

	"github.com/backmassage/listmerge/internal/term"
)

// PrintBanner writes the ASCII art banner to w; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	if term.Magenta != "" {
		fmt.Fprint(w, "\033[1;95m")
	}
	fmt.Fprint(w, ` _ _     _                                 
| (_)___| |_ _ __ ___   ___ _ __ __ _  ___ 
| | / __| __| '_ `+"`"+` _ \ / _ \ '__/ _`+"`"+` |/ _ \
| | \__ \ |_| | | | | |  __/ | | (_| |  __/
|_|_|___/\__|_| |_| |_|\___|_|  \__, |\___|
                                |___/      
`)
	if term.Magenta != "" {
		fmt.Fprint(w, term.NC)
	}
}
