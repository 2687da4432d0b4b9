package dynpegcli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dynpeg/dynpeg"
)

type checkParams struct {
	maxRuleDepth int
}

var configuredCheckParams = checkParams{}

var checkCommand = &cobra.Command{
	Use:   "check <grammar>",
	Short: "Compile a PEG grammar and report any errors",
	Long:  "check compiles the grammar file into a rule set and reports every rule that failed to compile.",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no grammar file specified")
		}
		return nil
	},
	Run: func(_ *cobra.Command, args []string) {
		os.Exit(check(args[0], &configuredCheckParams, os.Stdout, os.Stderr))
	},
}

func check(path string, params *checkParams, stdout, stderr io.Writer) int {
	logger := rootLogger()

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "reading %s: %v\n", path, err)
		return 1
	}

	var opts []dynpeg.Option
	if params.maxRuleDepth > 0 {
		opts = append(opts, dynpeg.WithMaxRuleDepth(params.maxRuleDepth))
	}

	rules, errs := dynpeg.RulesFromPeg(string(src), opts...)
	if len(errs) > 0 {
		for _, e := range errs {
			logger.WithField("file", path).Error(e.Error())
			fmt.Fprintln(stderr, e.Error())
		}
		return 1
	}

	fmt.Fprintf(stdout, "%s: %d rules compiled\n", path, rules.Len())
	return 0
}

func init() {
	checkCommand.Flags().IntVar(&configuredCheckParams.maxRuleDepth, "max-rule-depth", 0, "maximum nested rule recursion (0 = unbounded)")
	RootCommand.AddCommand(checkCommand)
}
