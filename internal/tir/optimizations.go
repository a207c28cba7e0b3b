package tir

// This file contains the tiny IR optimization passes.
//
// Every pass rewrites a program in place and reports whether it changed
// anything. The pipeline repeats the whole pass list until a sweep changes
// nothing. Passes only analyze and rewrite blocks reachable from $entry;
// unreachable blocks are left alone until pruning drops them.
//
// Because the CFG is a DAG, each forward analysis is a single walk in reverse
// postorder and each backward analysis a single walk in postorder.

import (
	"fmt"

	"github.com/tliron/commonlog"

	"smol/internal/symbol"
)

var log = commonlog.GetLogger("smol.tir")

// MaxIterations bounds the number of pipeline sweeps.
const MaxIterations = 64

// OptimizationPass represents a single optimization transformation
type OptimizationPass interface {
	Name() string
	Apply(program *Program) bool // Returns true if changes were made
	Description() string
}

// OptimizationPipeline manages the sequence of optimization passes
type OptimizationPipeline struct {
	passes        []OptimizationPass
	maxIterations int
}

// Stats summarizes a pipeline run.
type Stats struct {
	Iterations int
	Passes     []string       // pass names in pipeline order
	Changes    map[string]int // sweeps in which each pass changed the program
}

// NewOptimizationPipeline creates a new optimization pipeline with default passes
func NewOptimizationPipeline() *OptimizationPipeline {
	pipeline := &OptimizationPipeline{maxIterations: MaxIterations}

	// Propagation feeds branch simplification, which feeds pruning and merging.
	pipeline.AddPass(&ConstantPropagation{})
	pipeline.AddPass(&CopyPropagation{})
	pipeline.AddPass(&DeadInstructionElimination{})
	pipeline.AddPass(&BranchSimplification{})
	pipeline.AddPass(&UnreachableBlockPruning{})
	pipeline.AddPass(&BlockMerging{})

	return pipeline
}

// AddPass adds an optimization pass to the pipeline
func (p *OptimizationPipeline) AddPass(pass OptimizationPass) {
	p.passes = append(p.passes, pass)
}

// Run applies the passes to program until a full sweep makes no change.
func (p *OptimizationPipeline) Run(program *Program) (*Stats, error) {
	stats := &Stats{Changes: make(map[string]int)}
	for _, pass := range p.passes {
		stats.Passes = append(stats.Passes, pass.Name())
	}

	for stats.Iterations < p.maxIterations {
		stats.Iterations++
		changed := false
		for _, pass := range p.passes {
			if pass.Apply(program) {
				log.Debugf("sweep %d: %s changed the program", stats.Iterations, pass.Name())
				stats.Changes[pass.Name()]++
				changed = true
			}
		}
		if !changed {
			log.Debugf("fixpoint reached after %d sweeps", stats.Iterations)
			return stats, nil
		}
	}

	return stats, fmt.Errorf("tir: no fixpoint after %d optimization sweeps", p.maxIterations)
}

// Optimize returns an optimized copy of program. The input is not modified.
// The result is verified; a verification failure means a pass is broken.
func Optimize(program *Program) (*Program, error) {
	optimized, _, err := OptimizeWithStats(program)
	return optimized, err
}

// OptimizeWithStats is Optimize that also reports pipeline statistics.
func OptimizeWithStats(program *Program) (*Program, *Stats, error) {
	if err := Verify(program); err != nil {
		return nil, nil, err
	}

	optimized := program.Clone()
	stats, err := NewOptimizationPipeline().Run(optimized)
	if err != nil {
		return nil, stats, err
	}
	if err := Verify(optimized); err != nil {
		return nil, stats, fmt.Errorf("tir: optimizer produced an invalid program: %w", err)
	}
	return optimized, stats, nil
}

// Constant facts

// constFacts maps variables to the constant they are known to hold.
type constFacts map[symbol.ID]int64

func (f constFacts) clone() constFacts {
	c := make(constFacts, len(f))
	for k, v := range f {
		c[k] = v
	}
	return c
}

// meetConstants keeps the facts every predecessor agrees on.
func meetConstants(facts []constFacts) constFacts {
	if len(facts) == 0 {
		return constFacts{}
	}
	result := facts[0].clone()
	for _, other := range facts[1:] {
		for v, c := range result {
			if oc, ok := other[v]; !ok || oc != c {
				delete(result, v)
			}
		}
	}
	return result
}

func transferConstant(facts constFacts, inst Instruction) {
	switch i := inst.(type) {
	case *Const:
		facts[i.Dst] = i.Value
	case *Copy:
		if v, ok := facts[i.Src]; ok {
			facts[i.Dst] = v
		} else {
			delete(facts, i.Dst)
		}
	case *Arith:
		lhs, lok := facts[i.Lhs]
		rhs, rok := facts[i.Rhs]
		if lok && rok {
			facts[i.Dst] = Eval(i.Op, lhs, rhs)
		} else {
			delete(facts, i.Dst)
		}
	case *Read:
		delete(facts, i.Dst)
	}
}

// analyzeConstants returns the reachable blocks in reverse postorder and the
// constants known on entry to and exit from each of them. Every variable
// holds 0 when the program starts.
func analyzeConstants(program *Program) (order []symbol.ID, in, out map[symbol.ID]constFacts) {
	order = reversePostorder(program)
	preds := predecessors(program, order)
	in = make(map[symbol.ID]constFacts, len(order))
	out = make(map[symbol.ID]constFacts, len(order))

	for _, name := range order {
		var facts constFacts
		if name == Entry {
			facts = make(constFacts, len(program.Vars))
			for v := range program.Vars {
				facts[v] = 0
			}
		} else {
			var incoming []constFacts
			for _, pred := range preds[name] {
				incoming = append(incoming, out[pred])
			}
			facts = meetConstants(incoming)
		}

		in[name] = facts.clone()
		for _, inst := range program.Blocks[name].Instructions {
			transferConstant(facts, inst)
		}
		out[name] = facts
	}
	return order, in, out
}

// ConstantPropagation folds instructions whose value is known at compile time
type ConstantPropagation struct{}

func (cp *ConstantPropagation) Name() string {
	return "Constant Propagation"
}

func (cp *ConstantPropagation) Description() string {
	return "Replaces copies and arithmetic on known constants with $const"
}

func (cp *ConstantPropagation) Apply(program *Program) bool {
	changed := false
	order, in, _ := analyzeConstants(program)

	for _, name := range order {
		facts := in[name]
		block := program.Blocks[name]
		for idx, inst := range block.Instructions {
			if folded := cp.fold(inst, facts); folded != nil {
				block.Instructions[idx] = folded
				changed = true
			}
			transferConstant(facts, block.Instructions[idx])
		}
	}

	return changed
}

// fold returns the $const replacing inst, or nil when inst cannot be folded
func (cp *ConstantPropagation) fold(inst Instruction, facts constFacts) Instruction {
	switch i := inst.(type) {
	case *Copy:
		if v, ok := facts[i.Src]; ok {
			return &Const{Dst: i.Dst, Value: v}
		}
	case *Arith:
		lhs, lok := facts[i.Lhs]
		rhs, rok := facts[i.Rhs]
		if lok && rok {
			return &Const{Dst: i.Dst, Value: Eval(i.Op, lhs, rhs)}
		}
	}
	return nil
}

// Copy facts

// copyFacts maps a variable to another variable it is known to equal,
// established by a $copy that neither side has been redefined since.
type copyFacts map[symbol.ID]symbol.ID

func (f copyFacts) clone() copyFacts {
	c := make(copyFacts, len(f))
	for k, v := range f {
		c[k] = v
	}
	return c
}

// kill forgets every fact mentioning v
func (f copyFacts) kill(v symbol.ID) {
	delete(f, v)
	for dst, src := range f {
		if src == v {
			delete(f, dst)
		}
	}
}

func meetCopies(facts []copyFacts) copyFacts {
	if len(facts) == 0 {
		return copyFacts{}
	}
	result := facts[0].clone()
	for _, other := range facts[1:] {
		for dst, src := range result {
			if osrc, ok := other[dst]; !ok || osrc != src {
				delete(result, dst)
			}
		}
	}
	return result
}

func transferCopy(facts copyFacts, inst Instruction) {
	if dst, ok := inst.GetResult(); ok {
		facts.kill(dst)
	}
	if c, ok := inst.(*Copy); ok && c.Dst != c.Src {
		facts[c.Dst] = c.Src
	}
}

// CopyPropagation forwards the sources of $copy instructions to later uses
type CopyPropagation struct{}

func (cp *CopyPropagation) Name() string {
	return "Copy Propagation"
}

func (cp *CopyPropagation) Description() string {
	return "Rewrites uses of a copied variable to its source while neither is redefined"
}

func (cp *CopyPropagation) Apply(program *Program) bool {
	changed := false
	order := reversePostorder(program)
	preds := predecessors(program, order)
	in := cp.analyze(program, order, preds)

	for _, name := range order {
		facts := in[name]
		block := program.Blocks[name]

		newInstructions := make([]Instruction, 0, len(block.Instructions))
		for _, inst := range block.Instructions {
			if cp.rewriteInstruction(inst, facts) {
				changed = true
			}
			if c, ok := inst.(*Copy); ok && c.Dst == c.Src {
				changed = true
				continue
			}
			transferCopy(facts, inst)
			newInstructions = append(newInstructions, inst)
		}
		block.Instructions = newInstructions

		if br, ok := block.Terminator.(*Branch); ok {
			if src, ok := facts[br.Cond]; ok {
				br.Cond = src
				changed = true
			}
		}
	}

	return changed
}

// analyze computes the copy facts holding on entry to each reachable block
func (cp *CopyPropagation) analyze(program *Program, order []symbol.ID, preds map[symbol.ID][]symbol.ID) map[symbol.ID]copyFacts {
	in := make(map[symbol.ID]copyFacts, len(order))
	out := make(map[symbol.ID]copyFacts, len(order))

	for _, name := range order {
		var incoming []copyFacts
		for _, pred := range preds[name] {
			incoming = append(incoming, out[pred])
		}
		facts := meetCopies(incoming)

		in[name] = facts.clone()
		for _, inst := range program.Blocks[name].Instructions {
			transferCopy(facts, inst)
		}
		out[name] = facts
	}
	return in
}

// rewriteInstruction replaces operands that are known copies of another variable
func (cp *CopyPropagation) rewriteInstruction(inst Instruction, facts copyFacts) bool {
	replace := func(v *symbol.ID) bool {
		if src, ok := facts[*v]; ok {
			*v = src
			return true
		}
		return false
	}

	switch i := inst.(type) {
	case *Copy:
		return replace(&i.Src)
	case *Arith:
		l := replace(&i.Lhs)
		r := replace(&i.Rhs)
		return l || r
	case *Print:
		return replace(&i.Src)
	}
	return false
}

// DeadInstructionElimination removes pure instructions whose result is never read
type DeadInstructionElimination struct{}

func (dce *DeadInstructionElimination) Name() string {
	return "Dead Instruction Elimination"
}

func (dce *DeadInstructionElimination) Description() string {
	return "Removes $copy, $const and $arith whose destination is dead; keeps $read and $print"
}

func (dce *DeadInstructionElimination) Apply(program *Program) bool {
	changed := false
	order := reversePostorder(program)
	liveIn := make(map[symbol.ID]map[symbol.ID]bool, len(order))

	// Postorder visits every successor before its predecessors.
	for i := len(order) - 1; i >= 0; i-- {
		block := program.Blocks[order[i]]

		live := make(map[symbol.ID]bool)
		for _, succ := range distinctSuccessors(block.Terminator) {
			for v := range liveIn[succ] {
				live[v] = true
			}
		}
		for _, v := range block.Terminator.GetOperands() {
			live[v] = true
		}

		kept := make([]Instruction, 0, len(block.Instructions))
		for j := len(block.Instructions) - 1; j >= 0; j-- {
			inst := block.Instructions[j]
			if dst, ok := inst.GetResult(); ok {
				if !live[dst] && IsPure(inst) {
					changed = true
					continue
				}
				delete(live, dst)
			}
			for _, v := range inst.GetOperands() {
				live[v] = true
			}
			kept = append(kept, inst)
		}

		// kept was built back to front
		for l, r := 0, len(kept)-1; l < r; l, r = l+1, r-1 {
			kept[l], kept[r] = kept[r], kept[l]
		}
		block.Instructions = kept
		liveIn[order[i]] = live
	}

	return changed
}

// BranchSimplification turns branches with a known outcome into jumps
type BranchSimplification struct{}

func (bs *BranchSimplification) Name() string {
	return "Branch Simplification"
}

func (bs *BranchSimplification) Description() string {
	return "Rewrites $branch on a constant guard or with identical targets to $jump"
}

func (bs *BranchSimplification) Apply(program *Program) bool {
	changed := false
	order, _, out := analyzeConstants(program)

	for _, name := range order {
		block := program.Blocks[name]
		br, ok := block.Terminator.(*Branch)
		if !ok {
			continue
		}

		switch cond, known := out[name][br.Cond]; {
		case br.True == br.False:
			block.Terminator = &Jump{Target: br.True}
		case known && cond != 0:
			block.Terminator = &Jump{Target: br.True}
		case known:
			block.Terminator = &Jump{Target: br.False}
		default:
			continue
		}
		changed = true
	}

	return changed
}

// UnreachableBlockPruning removes blocks that cannot be reached from $entry
type UnreachableBlockPruning struct{}

func (ubp *UnreachableBlockPruning) Name() string {
	return "Unreachable Block Pruning"
}

func (ubp *UnreachableBlockPruning) Description() string {
	return "Drops blocks not reachable from $entry"
}

func (ubp *UnreachableBlockPruning) Apply(program *Program) bool {
	if _, ok := program.Blocks[Entry]; !ok {
		return false
	}

	reachable := Reachable(program)
	changed := false
	for name := range program.Blocks {
		if !reachable[name] {
			delete(program.Blocks, name)
			changed = true
		}
	}
	return changed
}

// BlockMerging folds a block into its only predecessor when that
// predecessor ends in an unconditional jump to it.
type BlockMerging struct{}

func (bm *BlockMerging) Name() string {
	return "Block Merging"
}

func (bm *BlockMerging) Description() string {
	return "Appends a jump target with a single predecessor to that predecessor"
}

func (bm *BlockMerging) Apply(program *Program) bool {
	changed := false
	order := reversePostorder(program)
	// Unreachable blocks count as predecessors so their targets are kept.
	preds := predecessors(program, program.SortedBlocks())

	for _, name := range order {
		block, ok := program.Blocks[name]
		if !ok {
			continue // already merged into a predecessor
		}

		for {
			jump, ok := block.Terminator.(*Jump)
			if !ok {
				break
			}
			target := jump.Target
			if target == Entry || target == name || len(preds[target]) != 1 {
				break
			}

			succ := program.Blocks[target]
			block.Instructions = append(block.Instructions, succ.Instructions...)
			block.Terminator = succ.Terminator
			delete(program.Blocks, target)

			for _, next := range distinctSuccessors(succ.Terminator) {
				for i, pred := range preds[next] {
					if pred == target {
						preds[next][i] = name
					}
				}
			}
			changed = true
		}
	}

	return changed
}
