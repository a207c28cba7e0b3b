// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"smol/internal/compiler"
	"smol/internal/errors"
	"smol/internal/parser"
	"smol/internal/tir"
	"smol/internal/vm"
	"smol/token"
)

const (
	PROMPT       = ">> "
	CONTINUATION = ".. "
	READ_PROMPT  = "? "
	historyFile  = ".smol_history"
)

// Session compiles and runs one program per entry. Programs do not share
// variables.
type Session struct {
	ShowTIR bool
}

// Eval compiles source with the optimizer and runs it, reading $read values
// from in and writing $print output to out. Diagnostics go to errOut.
func (s *Session) Eval(source string, in io.Reader, out, errOut io.Writer) error {
	result, err := compiler.Compile("<repl>", source, compiler.Options{Optimize: true})
	if err != nil {
		if se, ok := errors.AsSyntaxError(err); ok {
			fmt.Fprint(errOut, errors.NewErrorReporter("<repl>", source).FormatError(se.Diagnostic()))
		}
		return err
	}
	for _, warning := range result.Warnings {
		fmt.Fprint(errOut, errors.NewErrorReporter("<repl>", source).FormatError(warning))
	}

	if s.ShowTIR {
		fmt.Fprint(out, color.New(color.Faint).Sprint(tir.Format(result.Program)))
	}
	return vm.Execute(result.Program, in, out)
}

// Command handles a ":" line and reports whether the session should end.
func (s *Session) Command(line string, out io.Writer) bool {
	switch strings.TrimSpace(strings.ToLower(line)) {
	case ":quit", ":q":
		return true
	case ":tir":
		s.ShowTIR = !s.ShowTIR
		state := "off"
		if s.ShowTIR {
			state = "on"
		}
		fmt.Fprintf(out, "tiny IR listing %s\n", state)
	default:
		fmt.Fprintln(out, "unknown command. Commands: :tir, :quit")
	}
	return false
}

// incomplete reports whether src has more '{' than '}', so an $if is still
// open and the entry continues on the next line.
func incomplete(src string) bool {
	tokens, err := parser.ScanTokens("<repl>", src)
	if err != nil {
		return false
	}
	depth := 0
	for _, tok := range tokens {
		switch tok.Type {
		case token.LBRACE:
			depth++
		case token.RBRACE:
			depth--
		}
	}
	return depth > 0
}

// promptReader feeds the VM one prompted line at a time.
type promptReader struct {
	ln  *liner.State
	buf []byte
}

func (r *promptReader) Read(p []byte) (int, error) {
	if len(r.buf) == 0 {
		line, err := r.ln.Prompt(READ_PROMPT)
		if err != nil {
			return 0, io.EOF
		}
		r.buf = []byte(line + "\n")
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

// Start runs the interactive loop until EOF or :quit.
func Start(out io.Writer) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	session := &Session{}
	red := color.New(color.FgRed).SprintFunc()

	for {
		src, ok := readEntry(ln)
		if !ok {
			fmt.Fprintln(out)
			return
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			if session.Command(src, out) {
				return
			}
			continue
		}

		// a fresh reader per entry drops input left over from the last run
		err := session.Eval(src, &promptReader{ln: ln}, out, os.Stderr)
		if err != nil {
			if _, ok := errors.AsSyntaxError(err); !ok {
				fmt.Fprintln(os.Stderr, red(err.Error()))
			}
		}
	}
}

func readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := PROMPT
		if b.Len() > 0 {
			prompt = CONTINUATION
		}
		line, err := ln.Prompt(prompt)
		if stderrors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl-C drops the current entry
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}
