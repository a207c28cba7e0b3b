// SPDX-License-Identifier: Apache-2.0
package main

import (
	"bufio"
	"os"

	"github.com/fatih/color"
	"github.com/tebeka/atexit"
	_ "github.com/tliron/commonlog/simple"
	"smol/internal/cli"
)

func main() {
	// flushed once, on every exit path
	out := bufio.NewWriter(os.Stdout)
	atexit.Register(func() { _ = out.Flush() })

	cmd := cli.NewTIRVMCommand()
	cmd.SetOut(out)
	if err := cmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		atexit.Exit(cli.GetExitCode(err))
	}
	atexit.Exit(cli.ExitSuccess)
}
