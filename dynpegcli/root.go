// Package dynpegcli implements the dynpeg command-line tool: a thin
// cobra-based front end over the engine's public API, in the shape of
// OPA's cmd package (_examples/open-policy-agent-opa/cmd).
package dynpegcli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dynpeg/dynpeg/internal/diag"
)

// RootCommand is the entry point every subcommand registers itself
// onto via an init func, the same wiring OPA's cmd package uses.
var RootCommand = &cobra.Command{
	Use:   "dynpeg",
	Short: "Compile and run dynamic PEG grammars",
	Long:  "dynpeg compiles PEG grammar text into a rule set and parses input against it.",
}

var logLevel string

func init() {
	RootCommand.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "set the log level: debug, info, warn, error")
}

func rootLogger() diag.Logger {
	l := diag.New()
	if err := l.SetLevel(logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q: %v\n", logLevel, err)
	}
	return l
}
