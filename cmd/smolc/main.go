// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/fatih/color"
	_ "github.com/tliron/commonlog/simple"
	"smol/internal/cli"
)

func main() {
	if err := cli.NewSmolcCommand().Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
