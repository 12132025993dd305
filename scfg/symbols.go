package scfg

import "github.com/icftl/icftl/gast"

// symbolsChanged computes the "symbols changed" set for a straight-line
// statement per spec.md §3: for an assignment, the LHS names union the
// function names called on the RHS; for a bare call expression, the
// set of all name-bearing sub-ASTs walked in pre-order.
func symbolsChanged(s gast.Stmt) map[string]struct{} {
	switch stmt := s.(type) {
	case *gast.AssignStmt:
		out := make(map[string]struct{})
		for _, lhs := range stmt.Lhs {
			for n := range gast.Idents(lhs) {
				out[n] = struct{}{}
			}
		}
		for _, rhs := range stmt.Rhs {
			for n := range gast.CallNames(rhs) {
				out[n] = struct{}{}
			}
		}
		return out
	case *gast.CallStmt:
		return gast.AllNames(stmt.Call)
	default:
		return map[string]struct{}{}
	}
}

// forLoopSymbols computes the symbols-changed set for a ForLoopEntry:
// the loop's iterator/counter variables, per spec.md §4.1 step 4.
func forLoopSymbols(s *gast.ForStmt) map[string]struct{} {
	out := make(map[string]struct{}, len(s.Counters))
	for _, c := range s.Counters {
		out[c] = struct{}{}
	}
	return out
}
