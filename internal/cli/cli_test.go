package cli

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

const maxSource = "$read a $read b $if < a b { $print b } { $print a }\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type execution struct {
	stdout string
	stderr string
	err    error
}

func runSmolcArgs(args ...string) execution {
	var stdout, stderr bytes.Buffer
	cmd := NewSmolcCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return execution{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func runTIRVMArgs(input string, args ...string) execution {
	var stdout, stderr bytes.Buffer
	cmd := NewTIRVMCommand()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return execution{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestSmolcTokens(t *testing.T) {
	path := writeFile(t, "a.smol", ":= x 42 // answer\n$print x")
	res := runSmolcArgs("-o", "tokens", path)

	require.NoError(t, res.err)
	assert.Equal(t, "kind: ':=', part of input: ':='\n"+
		"kind: 'id', part of input: 'x'\n"+
		"kind: 'num', part of input: '42'\n"+
		"kind: '$print', part of input: '$print'\n"+
		"kind: 'id', part of input: 'x'\n", res.stdout)
}

func TestSmolcAST(t *testing.T) {
	path := writeFile(t, "max.smol", maxSource)
	res := runSmolcArgs("--out", "ast", path)

	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "(program\n  (read a)\n"))
}

func TestSmolcOptimizedTIR(t *testing.T) {
	path := writeFile(t, "a.smol", ":= x + 40 2\n$print x\n")
	res := runSmolcArgs("-O", "-o", "tir", path)

	require.NoError(t, res.err)
	assert.Equal(t, "$t0 $t1 x;\n$entry:\n  $const x 42\n  $print x\n  $exit\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestSmolcDefaultsToAssembly(t *testing.T) {
	path := writeFile(t, "max.smol", maxSource)
	res := runSmolcArgs(path)

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "\t.globl main\n")
	assert.Contains(t, res.stdout, "call _smol_read_int")
}

func TestSmolcStats(t *testing.T) {
	path := writeFile(t, "a.smol", ":= x + 40 2\n$print x\n")
	res := runSmolcArgs("-O", "--stats", "-o", "tir", path)

	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Constant Propagation")
	assert.Contains(t, res.stderr, "Block Merging")
}

func TestSmolcReportsSyntaxErrors(t *testing.T) {
	path := writeFile(t, "bad.smol", "$print 1\n:= x\n$print x\n")
	res := runSmolcArgs("-o", "tir", path)

	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, GetExitCode(res.err))
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "error[E0100]")
	assert.Contains(t, res.stderr, "bad.smol:3:1")
}

func TestSmolcPrintsWarnings(t *testing.T) {
	path := writeFile(t, "w.smol", "$print y\n")
	res := runSmolcArgs("-o", "tir", path)

	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "warning[W0001]")
	assert.Contains(t, res.stderr, "variable 'y' is never assigned")
}

func TestSmolcRejectsUnknownOutput(t *testing.T) {
	path := writeFile(t, "a.smol", "")
	res := runSmolcArgs("-o", "wasm", path)

	assert.EqualError(t, res.err, `invalid output "wasm": must be one of [tokens ast tir asm]`)
	assert.Equal(t, ExitFailure, GetExitCode(res.err))
}

func TestSmolcMissingFile(t *testing.T) {
	res := runSmolcArgs(filepath.Join(t.TempDir(), "missing.smol"))
	assert.ErrorContains(t, res.err, "failed to read file")
	assert.Equal(t, ExitFailure, GetExitCode(res.err))
}

const maxTIR = `a b c;
$entry:
  $read a
  $read b
  $arith < c a b
  $branch c $then $else
$then:
  $print b
  $jump $join
$else:
  $print a
  $jump $join
$join:
  $exit
`

func TestTIRVMRunsProgram(t *testing.T) {
	path := writeFile(t, "max.tir", maxTIR)

	res := runTIRVMArgs("3 9", path)
	require.NoError(t, res.err)
	assert.Equal(t, "9\n", res.stdout)

	res = runTIRVMArgs("-5\n-7\n", path)
	require.NoError(t, res.err)
	assert.Equal(t, "-5\n", res.stdout)
}

func TestTIRVMFlushesOutputBeforeFailure(t *testing.T) {
	path := writeFile(t, "echo.tir", "x;\n$entry:\n  $const x 1\n  $print x\n  $read x\n  $print x\n  $exit\n")

	res := runTIRVMArgs("", path)
	require.Error(t, res.err)
	assert.Equal(t, ExitFailure, GetExitCode(res.err))
	assert.Equal(t, "1\n", res.stdout)
}

func TestTIRVMRejectsCycles(t *testing.T) {
	path := writeFile(t, "loop.tir", ";\n$entry:\n  $jump $entry\n")

	res := runTIRVMArgs("", path)
	require.Error(t, res.err)
	assert.ErrorContains(t, res.err, "tir verification failed")
	assert.Empty(t, res.stdout)
}

func TestTIRVMReportsSyntaxErrors(t *testing.T) {
	path := writeFile(t, "bad.tir", "x;\n$entry:\n  $const x\n  $exit\n")

	res := runTIRVMArgs("", path)
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "error[E0100]")
}

func TestExitErrorUnwraps(t *testing.T) {
	inner := NewExitError(ExitInternal, "boom")
	err := WrapExitError(ExitFailure, "outer", inner)

	assert.Equal(t, "outer: boom", err.Error())
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitInternal, GetExitCode(inner))
}

func TestTIRVMWritesThroughCallerBuffer(t *testing.T) {
	path := writeFile(t, "echo.tir", "x;\n$entry:\n  $const x 1\n  $print x\n  $read x\n  $print x\n  $exit\n")

	var stdout bytes.Buffer
	out := bufio.NewWriter(&stdout)
	for i := 0; i < 2; i++ {
		cmd := NewTIRVMCommand()
		cmd.SetArgs([]string{path})
		cmd.SetIn(strings.NewReader(""))
		cmd.SetOut(out)
		cmd.SetErr(&bytes.Buffer{})
		require.Error(t, cmd.Execute())
	}

	assert.Equal(t, "1\n1\n", stdout.String())
	assert.Zero(t, out.Buffered())
}
