package dynpegcli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dynpeg/dynpeg"
)

type parseParams struct {
	inputFile string
	strictEOF bool
}

var configuredParseParams = parseParams{}

var parseCommand = &cobra.Command{
	Use:   "parse <grammar>",
	Short: "Parse input text against a PEG grammar",
	Long:  "parse compiles the grammar file, then parses --input (or stdin) against its \"main\" rule and prints the resulting AST.",
	PreRunE: func(_ *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New("no grammar file specified")
		}
		return nil
	},
	Run: func(_ *cobra.Command, args []string) {
		os.Exit(runParse(args[0], &configuredParseParams, os.Stdin, os.Stdout, os.Stderr))
	},
}

func runParse(grammarPath string, params *parseParams, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := rootLogger()

	grammarSrc, err := os.ReadFile(grammarPath)
	if err != nil {
		fmt.Fprintf(stderr, "reading %s: %v\n", grammarPath, err)
		return 1
	}

	rules, errs := dynpeg.RulesFromPeg(string(grammarSrc))
	if len(errs) > 0 {
		fmt.Fprintln(stderr, errs.Error())
		return 1
	}

	var input []byte
	if params.inputFile == "" || params.inputFile == "-" {
		input, err = io.ReadAll(stdin)
	} else {
		input, err = os.ReadFile(params.inputFile)
	}
	if err != nil {
		fmt.Fprintf(stderr, "reading input: %v\n", err)
		return 1
	}

	var opts []dynpeg.Option
	if params.strictEOF {
		opts = append(opts, dynpeg.WithStrictEOF(true))
	}

	ast, parseErr := dynpeg.Parse(string(input), rules, opts...)
	if parseErr != nil {
		logger.WithField("grammar", grammarPath).Error(parseErr.Error())
		fmt.Fprintln(stderr, parseErr.Error())
		return 1
	}

	fmt.Fprintln(stdout, ast.String())
	return 0
}

func init() {
	parseCommand.Flags().StringVar(&configuredParseParams.inputFile, "input", "", "file to parse (default: stdin)")
	parseCommand.Flags().BoolVar(&configuredParseParams.strictEOF, "strict-eof", false, "require the whole input to be consumed")
	RootCommand.AddCommand(parseCommand)
}
