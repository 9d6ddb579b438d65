package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/waveplan/waveplan/internal/cli"
)

// stderrFormatter is implemented by the validation and graph errors
// that carry multi-line diagnostics (field paths, cycle paths).
type stderrFormatter interface {
	FormatStderr() string
}

func main() {
	if err := cli.Execute(); err != nil {
		var sf stderrFormatter
		if errors.As(err, &sf) {
			fmt.Fprint(os.Stderr, sf.FormatStderr())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
