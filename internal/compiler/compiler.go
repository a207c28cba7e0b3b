package compiler

import (
	"fmt"

	"github.com/tliron/commonlog"
	"smol/internal/ast"
	"smol/internal/errors"
	"smol/internal/lower"
	"smol/internal/parser"
	"smol/internal/tir"
)

var log = commonlog.GetLogger("smol.compiler")

// Options selects the optional compilation stages.
type Options struct {
	Optimize bool
}

// Result holds every stage's output. Program is the optimized program when
// Options.Optimize is set and the lowered program otherwise.
type Result struct {
	AST      *ast.Program
	Lowered  *tir.Program
	Program  *tir.Program
	Stats    *tir.Stats
	Warnings []errors.CompilerError
}

// InternalError reports a compiler bug: lowering or optimization produced a
// program the verifier rejects. It never describes a problem in the input.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal compiler error: %v", e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Compile runs parse, lower, verify and, if requested, optimize. Problems in
// the source are returned as *errors.SyntaxError; anything after parsing
// that fails is an *InternalError.
func Compile(filename, source string, opts Options) (*Result, error) {
	program, err := parser.ParseSource(filename, source)
	if err != nil {
		return nil, err
	}
	log.Debugf("parsed %s: %d statements", filename, len(program.Statements))

	result := &Result{
		AST:      program,
		Warnings: lower.Check(program),
	}

	lowered, err := lower.Lower(program)
	if err != nil {
		return nil, &InternalError{Err: err}
	}
	if err := tir.Verify(lowered); err != nil {
		return nil, &InternalError{Err: err}
	}
	log.Debugf("lowered %s: %d variables, %d blocks", filename, len(lowered.Vars), len(lowered.Blocks))
	result.Lowered = lowered
	result.Program = lowered

	if opts.Optimize {
		optimized, stats, err := tir.OptimizeWithStats(lowered)
		if err != nil {
			return nil, &InternalError{Err: err}
		}
		log.Infof("optimized %s in %d sweeps", filename, stats.Iterations)
		result.Program = optimized
		result.Stats = stats
	}

	return result, nil
}
