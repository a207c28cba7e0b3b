// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"os/user"

	"smol/repl"
)

func main() {
	name := "there"
	if currentUser, err := user.Current(); err == nil {
		name = currentUser.Username
	}

	fmt.Printf("Welcome to the smol REPL, %s! Type :tir to toggle IR listings, :quit to leave.\n", name)
	repl.Start(os.Stdout)
}
