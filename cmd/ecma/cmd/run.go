package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cerrors "github.com/cwbudde/go-ecma/internal/errors"
	"github.com/cwbudde/go-ecma/internal/lexer"
	"github.com/cwbudde/go-ecma/internal/parser"
	"github.com/cwbudde/go-ecma/pkg/engine"
)

// formatRunError renders a lexer/parser failure with source context and a
// caret, and falls back to the raw error for anything else (thrown script
// exceptions, I/O failures).
func formatRunError(err error, source, filename string) string {
	var lexErr *lexer.LexError
	var synErr *parser.SyntaxError
	if errors.As(err, &lexErr) || errors.As(err, &synErr) {
		return cerrors.FromError(err, source, filename).Error()
	}
	return err.Error()
}

var (
	evalExpr string
	dumpAST  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run an ECMAScript file or expression",
	Long: `Execute an ECMAScript program from a file or inline expression.

Examples:
  # Run a script file
  ecma run script.js

  # Evaluate an inline expression
  ecma run -e "console.log('Hello, World!');"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
}

func runScript(_ *cobra.Command, args []string) error {
	var input string
	var filename string

	switch {
	case evalExpr != "":
		input = evalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	if dumpAST {
		program, err := parser.Parse(input)
		if err != nil {
			return cerrors.FromError(err, input, filename)
		}
		fmt.Printf("%#v\n", program)
		return nil
	}

	e, err := engine.New()
	if err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}

	result, err := e.RunScript(filename, input)
	if err != nil {
		exitWithError("%s", formatRunError(err, input, filename))
		return nil
	}
	if result != nil {
		fmt.Println(result.GoString())
	}
	return nil
}
