package scfg

import "github.com/bits-and-blooms/bitset"

// StatesChanging returns every state in g whose symbols-changed set
// contains v, in arena order. Duplicates are impossible since each
// state appears in the arena exactly once.
func (g *SCFG) StatesChanging(v string) []*SymbolicState {
	var out []*SymbolicState
	for _, s := range g.nodes {
		if s.Changes(v) {
			out = append(out, s)
		}
	}
	return out
}

// Reachable returns every state reachable from s, excluding s itself,
// in BFS order. The visited set is a bitset.BitSet indexed by each
// state's arena id, the same fixed-universe indexing trick a
// dataflow live-variables pass uses over variable positions instead
// of SCFG nodes.
func (g *SCFG) Reachable(s *SymbolicState) []*SymbolicState {
	visited := bitset.New(uint(len(g.nodes)))
	visited.Set(uint(s.id))

	var out []*SymbolicState
	var queue []*SymbolicState
	for _, c := range s.children {
		if !visited.Test(uint(c.id)) {
			visited.Set(uint(c.id))
			queue = append(queue, c)
		}
	}
	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		out = append(out, cur)
		for _, child := range cur.children {
			if !visited.Test(uint(child.id)) {
				visited.Set(uint(child.id))
				queue = append(queue, child)
			}
		}
	}
	return out
}

// IsReachableFrom reports whether t is reachable from s (excluding s
// itself).
func (g *SCFG) IsReachableFrom(t, s *SymbolicState) bool {
	for _, r := range g.Reachable(s) {
		if r == t {
			return true
		}
	}
	return false
}

// ReachableStatesChanging returns the intersection of Reachable(s)
// and StatesChanging(v).
func (g *SCFG) ReachableStatesChanging(v string, s *SymbolicState) []*SymbolicState {
	var out []*SymbolicState
	for _, r := range g.Reachable(s) {
		if r.Changes(v) {
			out = append(out, r)
		}
	}
	return out
}

// NextStatesChanging performs a DFS from s, terminating descent at
// every Statement node whose symbols-changed set contains v. Those
// terminal nodes are collected and returned; the DFS does not descend
// past them, so a back-edge-induced cycle can never cause it to
// revisit a collected node's own successors. A global "encountered"
// bitset (again indexed by arena id) guarantees termination on
// back-edges regardless.
func (g *SCFG) NextStatesChanging(v string, s *SymbolicState) []*SymbolicState {
	encountered := bitset.New(uint(len(g.nodes)))
	encountered.Set(uint(s.id))

	var out []*SymbolicState
	var visit func(n *SymbolicState)
	visit = func(n *SymbolicState) {
		for _, child := range n.children {
			if encountered.Test(uint(child.id)) {
				continue
			}
			encountered.Set(uint(child.id))
			if child.IsStatement() && child.Changes(v) {
				out = append(out, child)
				continue // do not descend past a qualifying node
			}
			visit(child)
		}
	}
	visit(s)
	return out
}
