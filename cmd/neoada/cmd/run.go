package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/solarix95/neoada/internal/errors"
	"github.com/solarix95/neoada/internal/interp"
	"github.com/solarix95/neoada/internal/lexer"
	"github.com/solarix95/neoada/internal/parser"
	"github.com/spf13/cobra"
)

var (
	evalExpr string
	dumpAST  bool
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a NeoAda file, an inline expression, or stdin",
	Long: `Execute a NeoAda program from a file, an inline expression, or,
absent both, from standard input (grounded on the reference CLI's
file-or-stdin behavior).

Examples:
  # Run a script file
  neoada run script.ada

  # Evaluate inline code
  neoada run -e "declare n : natural := 1;"

  # Run with AST dump (for debugging)
  neoada run --dump-ast script.ada

  # Read from stdin
  cat script.ada | neoada run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace execution (for debugging)")
}

func runScript(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	input, filename, err := readInput(args)
	if err != nil {
		return err
	}
	if input == "" {
		return nil
	}

	l := lexer.New(input)
	p := parser.New(l)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		compilerErrors := errors.FromErrors(errs, input, filename)
		fmt.Fprint(os.Stderr, errors.FormatErrors(compilerErrors, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if dumpAST {
		fmt.Println("AST:")
		fmt.Println(program.String())
		fmt.Println()
	}

	rt := interp.New()
	registerHostProcs(rt.State())

	if trace {
		fmt.Fprintf(os.Stderr, "[Trace mode enabled - executing %s]\n", filename)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Running %s (%d top-level statement(s))\n", filename, len(program.Children))
	}

	it := interp.NewInterpreter(rt.State())
	if runErr := it.Run(program); runErr != nil {
		fmt.Fprintf(os.Stderr, "%s\n", runErr.Error())
		return fmt.Errorf("execution failed")
	}

	return nil
}

// registerHostProcs binds the reference CLI's one host procedure: "print",
// writing its argument's string form followed by a newline, grounded on
// original_source/neoada/main.cc.
func registerHostProcs(st *interp.State) {
	st.BindPrc("", "print", []interp.Formal{{Name: "message", TypeName: "any", Mode: interp.ModeIn}}, func(args map[string]*interp.Variant) error {
		msg := args["message"]
		if msg == nil {
			fmt.Println()
			return nil
		}
		fmt.Println(msg.String())
		return nil
	})
}

func readInput(args []string) (input, filename string, err error) {
	switch {
	case evalExpr != "":
		return evalExpr, "<eval>", nil
	case len(args) == 1:
		filename = args[0]
		content, rerr := os.ReadFile(filename)
		if rerr != nil {
			return "", filename, fmt.Errorf("failed to read file %s: %w", filename, rerr)
		}
		return string(content), filename, nil
	default:
		content, rerr := io.ReadAll(os.Stdin)
		if rerr != nil {
			return "", "<stdin>", fmt.Errorf("failed to read stdin: %w", rerr)
		}
		return string(content), "<stdin>", nil
	}
}
