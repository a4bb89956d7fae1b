// Command listmerge is the CLI entrypoint for the listmerge CSV pipeline.
//
// It loads configuration (defaults, config file, environment, flags),
// validates it, and runs either the full enrich/merge/dedup/filter pipeline
// or a single stage.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stderr))
}

// execute runs the command tree with args and returns the process exit code.
// Errors the logger has already printed are not printed again.
func execute(args []string, stderr io.Writer) int {
	root, cc := newRootCommand()
	defer cc.close()

	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(stderr, "listmerge: %v\n", err)
		}
		return 1
	}
	return 0
}

// reportedError marks an error that has already been logged.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err: err}
}
