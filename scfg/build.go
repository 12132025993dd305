package scfg

import (
	"fmt"
	"os"

	"github.com/icftl/icftl/gast"
)

// Build constructs an SCFG from an ordered statement list. Typically
// stmts is a whole function body, but any statement list will do.
func Build(stmts []gast.Stmt) *SCFG {
	var arena []*SymbolicState
	root := newState(&arena, Empty, nil, nil)
	buildBlock(&arena, root, stmts)
	return &SCFG{root: root, nodes: arena}
}

// buildBlock walks stmts in source order, threading "prev" (the node
// the next statement must be reachable from) through each one, and
// returns the terminal node of the sequence — the node every
// statement *after* this block, if any, must flow from. An empty
// block's terminal is simply parent, so that a conditional/loop/try
// with an empty body edges its entry directly to its exit (spec.md
// §9's pinned Open Question 2, and the empty-for-loop boundary case).
func buildBlock(arena *[]*SymbolicState, parent *SymbolicState, stmts []gast.Stmt) *SymbolicState {
	prev := parent
	for _, s := range stmts {
		prev = buildStmt(arena, prev, s)
	}
	return prev
}

func buildStmt(arena *[]*SymbolicState, prev *SymbolicState, s gast.Stmt) *SymbolicState {
	switch stmt := s.(type) {
	case *gast.AssignStmt, *gast.CallStmt:
		node := newState(arena, Statement, stmt, symbolsChanged(stmt))
		link(prev, node)
		return node
	case *gast.IfStmt:
		return buildIf(arena, prev, stmt)
	case *gast.ForStmt:
		return buildFor(arena, prev, stmt)
	case *gast.WhileStmt:
		return buildWhile(arena, prev, stmt)
	case *gast.TryStmt:
		return buildTry(arena, prev, stmt)
	default:
		// spec.md §4.1 "Failure semantics": an unrecognized statement
		// kind gets a single diagnostic and is treated as a
		// straight-line Statement with an empty effect set.
		fmt.Fprintf(os.Stderr, "scfg: unrecognized statement kind %T at %s; treating as a no-op statement\n",
			s, s.Position())
		node := newState(arena, Statement, s, map[string]struct{}{})
		link(prev, node)
		return node
	}
}

func buildIf(arena *[]*SymbolicState, prev *SymbolicState, s *gast.IfStmt) *SymbolicState {
	entry := newState(arena, ConditionalEntry, s, nil)
	link(prev, entry)
	exit := newState(arena, ConditionalExit, nil, nil)

	thenTerm := buildBlock(arena, entry, s.Body)
	link(thenTerm, exit)

	if s.Else != nil {
		elseTerm := buildBlock(arena, entry, s.Else)
		link(elseTerm, exit)
	} else {
		link(entry, exit)
	}
	return exit
}

func buildFor(arena *[]*SymbolicState, prev *SymbolicState, s *gast.ForStmt) *SymbolicState {
	entry := newState(arena, ForLoopEntry, s, forLoopSymbols(s))
	link(prev, entry)
	exit := newState(arena, ForLoopExit, nil, nil)

	bodyTerm := buildBlock(arena, entry, s.Body)
	link(bodyTerm, exit)
	link(bodyTerm, entry) // back-edge
	return exit
}

func buildWhile(arena *[]*SymbolicState, prev *SymbolicState, s *gast.WhileStmt) *SymbolicState {
	entry := newState(arena, WhileLoopEntry, s, nil)
	link(prev, entry)
	exit := newState(arena, WhileLoopExit, nil, nil)

	bodyTerm := buildBlock(arena, entry, s.Body)
	link(bodyTerm, exit)
	link(bodyTerm, entry) // back-edge
	return exit
}

func buildTry(arena *[]*SymbolicState, prev *SymbolicState, s *gast.TryStmt) *SymbolicState {
	entry := newState(arena, TryEntry, s, nil)
	link(prev, entry)
	exit := newState(arena, TryExit, nil, nil)

	mainTerm := buildBlock(arena, entry, s.Body)
	link(mainTerm, exit)

	for _, h := range s.Handlers {
		handlerTerm := buildBlock(arena, entry, h)
		link(handlerTerm, exit)
	}
	return exit
}
