package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"smol/internal/ast"
	"smol/internal/compiler"
	"smol/internal/errors"
	"smol/internal/parser"
	"smol/internal/riscv"
	"smol/internal/tir"
)

// Output representations accepted by --out.
var ValidOutputs = []string{"tokens", "ast", "tir", "asm"}

// SmolcOptions holds the smolc flags.
type SmolcOptions struct {
	Optimize bool
	Out      string
	Stats    bool
	Verbose  bool
}

// NewSmolcCommand creates the smolc root command.
func NewSmolcCommand() *cobra.Command {
	opts := &SmolcOptions{}

	cmd := &cobra.Command{
		Use:   "smolc <file.smol>",
		Short: "Compile smol programs",
		Long: `Compile a smol program and write the requested representation to stdout.

Without -O the lowered tiny IR is used as is; with -O it is optimized to a
fixpoint first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidOutputs, opts.Out) {
				return NewExitError(ExitFailure, fmt.Sprintf("invalid output %q: must be one of %v", opts.Out, ValidOutputs))
			}
			configureLogging(opts.Verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSmolc(opts, args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVarP(&opts.Optimize, "optimize", "O", false, "optimize the tiny IR")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "asm", "output representation (tokens|ast|tir|asm)")
	cmd.Flags().BoolVar(&opts.Stats, "stats", false, "print optimizer statistics to stderr")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose logging to stderr")

	return cmd
}

func configureLogging(verbose bool) {
	if verbose {
		commonlog.Configure(2, nil)
	} else {
		commonlog.Configure(0, nil)
	}
}

func runSmolc(opts *SmolcOptions, path string, stdout, stderr io.Writer) error {
	start := time.Now()

	content, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read file", err)
	}
	source := string(content)
	reporter := errors.NewErrorReporter(path, source)

	fail := func(err error) error {
		if se, ok := errors.AsSyntaxError(err); ok {
			fmt.Fprint(stderr, reporter.FormatError(se.Diagnostic()))
			return WrapExitError(ExitFailure, fmt.Sprintf("compilation failed after %s", formatDuration(time.Since(start))), err)
		}
		var internal *compiler.InternalError
		if stderrors.As(err, &internal) {
			return WrapExitError(ExitInternal, "compilation aborted", err)
		}
		return WrapExitError(ExitFailure, "compilation failed", err)
	}

	switch opts.Out {
	case "tokens":
		tokens, err := parser.ScanTokens(path, source)
		for _, tok := range tokens {
			fmt.Fprintln(stdout, tok)
		}
		if err != nil {
			return fail(err)
		}
		return nil

	case "ast":
		program, err := parser.ParseSource(path, source)
		if err != nil {
			return fail(err)
		}
		fmt.Fprint(stdout, ast.Dump(program))
		return nil
	}

	result, err := compiler.Compile(path, source, compiler.Options{Optimize: opts.Optimize})
	if err != nil {
		return fail(err)
	}
	for _, warning := range result.Warnings {
		fmt.Fprint(stderr, reporter.FormatError(warning))
	}
	if opts.Stats {
		writeStats(stderr, result.Stats)
	}

	if opts.Out == "tir" {
		fmt.Fprint(stdout, tir.Format(result.Program))
		return nil
	}
	if err := riscv.NewGenerator(stdout).Generate(result.Program); err != nil {
		return WrapExitError(ExitFailure, "failed to write assembly", err)
	}
	return nil
}

// writeStats renders one row per pass. Without -O there is nothing to show.
func writeStats(w io.Writer, stats *tir.Stats) {
	if stats == nil {
		fmt.Fprintln(w, "optimizer disabled; pass -O for statistics")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("Optimizer (%d sweeps)", stats.Iterations))
	t.AppendHeader(table.Row{"Pass", "Sweeps with changes"})
	for _, name := range stats.Passes {
		t.AppendRow(table.Row{name, stats.Changes[name]})
	}
	t.Render()
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
