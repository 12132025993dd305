package scfg

import (
	"testing"

	"github.com/icftl/icftl/gast"
	"github.com/icftl/icftl/pos"
)

func assign(line int, lhs string, rhs gast.Expr) *gast.AssignStmt {
	return &gast.AssignStmt{
		Pos: pos.Position{Module: "f", Line: line},
		Lhs: []gast.Expr{&gast.Ident{Name: lhs}},
		Rhs: []gast.Expr{rhs},
	}
}

func TestBuildStraightLine(t *testing.T) {
	stmts := []gast.Stmt{
		assign(1, "a", &gast.Ident{Name: "0"}),
		assign(2, "b", &gast.Ident{Name: "a"}),
	}
	g := Build(stmts)

	if len(g.Nodes()) != 3 { // root + 2 statements
		t.Fatalf("len(Nodes()) = %d, want 3", len(g.Nodes()))
	}
	if g.Root().Kind() != Empty {
		t.Fatalf("Root().Kind() = %v, want Empty", g.Root().Kind())
	}
	changing := g.StatesChanging("a")
	if len(changing) != 1 || changing[0].Source() != stmts[0] {
		t.Fatalf("StatesChanging(a) = %v, want [stmts[0]]", changing)
	}
}

func TestBuildIfWithElseJoinsAtExit(t *testing.T) {
	stmts := []gast.Stmt{
		&gast.IfStmt{
			Pos:  pos.Position{Module: "f", Line: 1},
			Body: []gast.Stmt{assign(2, "a", &gast.Ident{Name: "1"})},
			Else: []gast.Stmt{assign(3, "a", &gast.Ident{Name: "2"})},
		},
		assign(4, "b", &gast.Ident{Name: "a"}),
	}
	g := Build(stmts)

	var entry, exit *SymbolicState
	for _, n := range g.Nodes() {
		switch n.Kind() {
		case ConditionalEntry:
			entry = n
		case ConditionalExit:
			exit = n
		}
	}
	if entry == nil || exit == nil {
		t.Fatal("expected a ConditionalEntry and ConditionalExit node")
	}
	if !g.IsReachableFrom(exit, entry) {
		t.Fatal("exit not reachable from entry")
	}
	b := g.StatesChanging("b")
	if len(b) != 1 {
		t.Fatalf("StatesChanging(b) = %v, want one state", b)
	}
	if !g.IsReachableFrom(b[0], exit) {
		t.Fatal("b's assignment must be reachable from the conditional's join")
	}
}

func TestBuildIfWithoutElseEdgesEntryDirectlyToExit(t *testing.T) {
	stmts := []gast.Stmt{
		&gast.IfStmt{
			Pos:  pos.Position{Module: "f", Line: 1},
			Body: []gast.Stmt{assign(2, "a", &gast.Ident{Name: "1"})},
		},
	}
	g := Build(stmts)

	var entry *SymbolicState
	for _, n := range g.Nodes() {
		if n.Kind() == ConditionalEntry {
			entry = n
		}
	}
	found := false
	for _, c := range entry.Children() {
		if c.Kind() == ConditionalExit {
			found = true
		}
	}
	if !found {
		t.Fatal("ConditionalEntry has no direct edge to ConditionalExit for the missing-else case")
	}
}

func TestBuildForLoopBackEdgeAndEmptyBody(t *testing.T) {
	stmts := []gast.Stmt{
		&gast.ForStmt{
			Pos:      pos.Position{Module: "f", Line: 1},
			Counters: []string{"i"},
		},
	}
	g := Build(stmts)

	var entry, exit *SymbolicState
	for _, n := range g.Nodes() {
		switch n.Kind() {
		case ForLoopEntry:
			entry = n
		case ForLoopExit:
			exit = n
		}
	}
	if entry == nil || exit == nil {
		t.Fatal("expected a ForLoopEntry and ForLoopExit node")
	}
	if !entry.Changes("i") {
		t.Fatal("ForLoopEntry must record its counter as a changed symbol")
	}
	found, backEdge := false, false
	for _, c := range entry.Children() {
		if c == exit {
			found = true
		}
		if c == entry {
			backEdge = true
		}
	}
	if !found {
		t.Fatal("an empty for-loop body must edge entry directly to exit")
	}
	if !backEdge {
		t.Fatal("an empty for-loop body must give entry a back-edge to itself")
	}
}

func TestReachableExcludesSelf(t *testing.T) {
	stmts := []gast.Stmt{
		assign(1, "a", &gast.Ident{Name: "0"}),
	}
	g := Build(stmts)
	reachable := g.Reachable(g.Root())
	for _, r := range reachable {
		if r == g.Root() {
			t.Fatal("Reachable must not include the starting state itself")
		}
	}
}

func TestNextStatesChangingStopsAtFirstQualifyingDescendant(t *testing.T) {
	stmts := []gast.Stmt{
		assign(1, "a", &gast.Ident{Name: "0"}),
		assign(2, "a", &gast.Ident{Name: "1"}),
		assign(3, "b", &gast.Ident{Name: "a"}),
	}
	g := Build(stmts)
	first := g.StatesChanging("a")[0]

	next := g.NextStatesChanging("a", first)
	if len(next) != 1 || next[0] != g.StatesChanging("a")[1] {
		t.Fatalf("NextStatesChanging(a, first) = %v, want [second assignment]", next)
	}
}
