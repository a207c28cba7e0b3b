package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"smol/internal/errors"
	"smol/internal/tir"
	"smol/internal/vm"
)

// NewTIRVMCommand creates the tir-vm root command.
func NewTIRVMCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "tir-vm <file.tir>",
		Short: "Run a tiny IR program",
		Long: `Parse, verify and interpret a tiny IR program.

$read takes whitespace-separated integers from stdin; $print writes one
integer per line to stdout.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTIRVM(args[0], cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging to stderr")

	return cmd
}

func runTIRVM(path string, stdin io.Reader, stdout, stderr io.Writer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read file", err)
	}

	program, err := tir.Parse(path, string(content))
	if err != nil {
		if se, ok := errors.AsSyntaxError(err); ok {
			fmt.Fprint(stderr, errors.NewErrorReporter(path, string(content)).FormatError(se.Diagnostic()))
		}
		return WrapExitError(ExitFailure, "invalid tiny IR", err)
	}

	// Output printed before a failure must still reach stdout. A caller
	// that passes a *bufio.Writer gets it back from NewWriter unchanged.
	out := bufio.NewWriter(stdout)
	defer out.Flush()

	if err := vm.Execute(program, stdin, out); err != nil {
		return WrapExitError(ExitFailure, "execution failed", err)
	}
	return nil
}
