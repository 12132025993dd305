// Package scfg builds and queries the Symbolic Control-Flow Graph
// (SCFG) described in spec.md §3–§4.1: a labeled directed graph whose
// nodes are symbolic program points (SymbolicState) and whose edges
// encode possible successor flow.
//
// Construction is a single-pass, recursive-descent walk over a
// statement list that tracks the "current predecessor" and wires
// each new node to it, building the tagged SymbolicState sum type
// spec.md §3 requires rather than a flat vertex map.
package scfg

import "github.com/icftl/icftl/gast"

// Kind tags the variant of a SymbolicState, per spec.md §3's table.
type Kind int

const (
	Empty Kind = iota
	Statement
	ConditionalEntry
	ConditionalExit
	ForLoopEntry
	ForLoopExit
	WhileLoopEntry
	WhileLoopExit
	TryEntry
	TryExit
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Statement:
		return "Statement"
	case ConditionalEntry:
		return "ConditionalEntry"
	case ConditionalExit:
		return "ConditionalExit"
	case ForLoopEntry:
		return "ForLoopEntry"
	case ForLoopExit:
		return "ForLoopExit"
	case WhileLoopEntry:
		return "WhileLoopEntry"
	case WhileLoopExit:
		return "WhileLoopExit"
	case TryEntry:
		return "TryEntry"
	case TryExit:
		return "TryExit"
	default:
		return "Unknown"
	}
}

// SymbolicState is a single SCFG node. id is a stable arena index
// assigned at construction time, used by the bitset-backed traversals
// in queries.go; it has no meaning outside a single SCFG.
type SymbolicState struct {
	id     int
	kind   Kind
	source gast.Stmt // nil for Empty and the pure control-boundary kinds
	// symbolsChanged is populated only for Statement and ForLoopEntry
	// nodes, per spec.md §3.
	symbolsChanged map[string]struct{}

	children []*SymbolicState
	parents  []*SymbolicState
}

// Kind returns the node's variant.
func (s *SymbolicState) Kind() Kind { return s.kind }

// Source returns the AST node this state represents running, or nil
// for control-boundary/sentinel states.
func (s *SymbolicState) Source() gast.Stmt { return s.source }

// Children returns this state's immediate successors. The slice is
// owned by the SCFG; callers must not mutate it.
func (s *SymbolicState) Children() []*SymbolicState { return s.children }

// Parents returns this state's immediate predecessors. The slice is
// owned by the SCFG; callers must not mutate it.
func (s *SymbolicState) Parents() []*SymbolicState { return s.parents }

// IsStatement reports whether s represents a straight-line statement
// running (Statement or ForLoopEntry, the latter because a for-loop
// head also mutates its counters — spec.md §3).
func (s *SymbolicState) IsStatement() bool {
	return s.kind == Statement || s.kind == ForLoopEntry
}

// Changes reports whether symbol v is in this state's symbols-changed
// set. Always false for non-statement kinds.
func (s *SymbolicState) Changes(v string) bool {
	if s.symbolsChanged == nil {
		return false
	}
	_, ok := s.symbolsChanged[v]
	return ok
}

// SymbolsChanged returns the set of symbols this state mutates. Callers
// must not mutate the returned map.
func (s *SymbolicState) SymbolsChanged() map[string]struct{} {
	return s.symbolsChanged
}

func newState(arena *[]*SymbolicState, kind Kind, source gast.Stmt, symbols map[string]struct{}) *SymbolicState {
	s := &SymbolicState{
		id:             len(*arena),
		kind:           kind,
		source:         source,
		symbolsChanged: symbols,
	}
	*arena = append(*arena, s)
	return s
}

func link(parent, child *SymbolicState) {
	parent.children = append(parent.children, child)
	child.parents = append(child.parents, parent)
}

// SCFG is a symbolic control-flow graph built from one function's
// statement list. It satisfies the invariants of spec.md §3: exactly
// one root, reachable from nothing and reaching every other node, and
// child/parent membership is always mutually consistent (link is the
// only way an edge is created, and it always updates both sides).
type SCFG struct {
	root  *SymbolicState
	nodes []*SymbolicState
}

// Root returns the SCFG's single root sentinel.
func (g *SCFG) Root() *SymbolicState { return g.root }

// Nodes returns every state in the graph, in construction order. The
// slice is owned by the SCFG; callers must not mutate it.
func (g *SCFG) Nodes() []*SymbolicState { return g.nodes }
