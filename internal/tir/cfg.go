package tir

import "smol/internal/symbol"

// reversePostorder returns the blocks reachable from $entry in reverse
// postorder. On a DAG this is a topological order: every block comes after
// all of its reachable predecessors.
func reversePostorder(program *Program) []symbol.ID {
	if _, ok := program.Blocks[Entry]; !ok {
		return nil
	}

	type frame struct {
		name symbol.ID
		next int
	}

	visited := map[symbol.ID]bool{Entry: true}
	stack := []frame{{name: Entry}}
	var postorder []symbol.ID

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		succs := successors(program, top.name)
		if top.next == len(succs) {
			postorder = append(postorder, top.name)
			stack = stack[:len(stack)-1]
			continue
		}

		succ := succs[top.next]
		top.next++
		if visited[succ] {
			continue
		}
		if _, ok := program.Blocks[succ]; !ok {
			continue
		}
		visited[succ] = true
		stack = append(stack, frame{name: succ})
	}

	order := make([]symbol.ID, len(postorder))
	for i, name := range postorder {
		order[len(postorder)-1-i] = name
	}
	return order
}

// predecessors maps each block in order to its distinct predecessors among
// the blocks in order, listed in order.
func predecessors(program *Program, order []symbol.ID) map[symbol.ID][]symbol.ID {
	preds := make(map[symbol.ID][]symbol.ID, len(order))
	for _, name := range order {
		for _, succ := range distinctSuccessors(program.Blocks[name].Terminator) {
			preds[succ] = append(preds[succ], name)
		}
	}
	return preds
}

func distinctSuccessors(term Terminator) []symbol.ID {
	if term == nil {
		return nil
	}
	succs := term.GetSuccessors()
	if len(succs) == 2 && succs[0] == succs[1] {
		return succs[:1]
	}
	return succs
}

// Reachable returns the set of blocks reachable from $entry.
func Reachable(program *Program) map[symbol.ID]bool {
	reachable := make(map[symbol.ID]bool)
	for _, name := range reversePostorder(program) {
		reachable[name] = true
	}
	return reachable
}
