// Package gast defines the minimal statement-level abstract syntax
// tree surface that the rest of the module consumes. The concrete
// parser for the target language is an external collaborator (see
// spec.md §1); this package only fixes the shape a parser's output
// must have for scfg.Build to consume it.
package gast

import "github.com/icftl/icftl/pos"

// Stmt is implemented by every statement node. Position is the
// statement's source line, used later to label instrumentation
// points.
type Stmt interface {
	stmtNode()
	Position() pos.Position
}

// Expr is implemented by the handful of expression shapes the
// symbol-extraction algorithm (spec.md §4.1, "Symbol extraction")
// needs to walk: identifiers (program variables) and calls (function
// names). Both are "name-bearing" nodes in the sense spec.md uses the
// term.
type Expr interface {
	exprNode()
}

// Ident is a bare program-variable reference, e.g. "a" or "x[i]"
// (indexing is not modeled separately; the base name is what §3's
// symbol set records).
type Ident struct {
	Name string
}

func (*Ident) exprNode() {}

// CallExpr is a function call, e.g. "g(a, b)". Func is the called
// function's name; Args are its argument expressions, which may
// themselves contain identifiers or further calls.
type CallExpr struct {
	Func string
	Args []Expr
}

func (*CallExpr) exprNode() {}

// AssignStmt is "lhs1, lhs2, ... = rhs1, rhs2, ...".
type AssignStmt struct {
	Pos pos.Position
	Lhs []Expr
	Rhs []Expr
}

func (*AssignStmt) stmtNode()                {}
func (s *AssignStmt) Position() pos.Position { return s.Pos }

// CallStmt is a bare call expression used as a statement, e.g. "g()".
type CallStmt struct {
	Pos  pos.Position
	Call *CallExpr
}

func (*CallStmt) stmtNode()                {}
func (s *CallStmt) Position() pos.Position { return s.Pos }

// IfStmt is a conditional. Else is nil when there is no else-branch.
type IfStmt struct {
	Pos  pos.Position
	Body []Stmt
	Else []Stmt
}

func (*IfStmt) stmtNode()                {}
func (s *IfStmt) Position() pos.Position { return s.Pos }

// ForStmt is a counted/iterator loop. Counters names the loop-control
// variables (e.g. "i" in "for i in range(2)"), which §4.1 requires be
// recorded as the ForLoopEntry's symbols changed.
type ForStmt struct {
	Pos      pos.Position
	Counters []string
	Body     []Stmt
}

func (*ForStmt) stmtNode()                {}
func (s *ForStmt) Position() pos.Position { return s.Pos }

// WhileStmt is a condition-only loop; unlike ForStmt it mutates no
// symbols of its own.
type WhileStmt struct {
	Pos  pos.Position
	Body []Stmt
}

func (*WhileStmt) stmtNode()                {}
func (s *WhileStmt) Position() pos.Position { return s.Pos }

// TryStmt is a try/handlers block. Handlers holds one statement list
// per handler (catch) clause, in source order.
type TryStmt struct {
	Pos      pos.Position
	Body     []Stmt
	Handlers [][]Stmt
}

func (*TryStmt) stmtNode()                {}
func (s *TryStmt) Position() pos.Position { return s.Pos }

// UnknownStmt represents a statement kind the host parser emitted
// that this package does not recognize. Build treats it as a
// straight-line statement with an empty effect set and a single
// diagnostic, per spec.md §4.1's "Failure semantics".
type UnknownStmt struct {
	Pos  pos.Position
	Kind string
}

func (*UnknownStmt) stmtNode()                {}
func (s *UnknownStmt) Position() pos.Position { return s.Pos }

// Inspect walks e and its descendants in pre-order, invoking visit for
// each node. If visit returns false, Inspect does not descend into
// that node's children. Mirrors go/ast.Inspect's contract, generalized
// to the small Expr surface above.
func Inspect(e Expr, visit func(Expr) bool) {
	if e == nil || !visit(e) {
		return
	}
	if call, ok := e.(*CallExpr); ok {
		for _, a := range call.Args {
			Inspect(a, visit)
		}
	}
}

// Idents returns the set of identifier names referenced anywhere
// within e (pre-order, deduplicated).
func Idents(e Expr) map[string]struct{} {
	names := make(map[string]struct{})
	Inspect(e, func(n Expr) bool {
		if id, ok := n.(*Ident); ok {
			names[id.Name] = struct{}{}
		}
		return true
	})
	return names
}

// CallNames returns the set of function names called anywhere within
// e (pre-order, deduplicated).
func CallNames(e Expr) map[string]struct{} {
	names := make(map[string]struct{})
	Inspect(e, func(n Expr) bool {
		if c, ok := n.(*CallExpr); ok {
			names[c.Func] = struct{}{}
		}
		return true
	})
	return names
}

// AllNames returns every name-bearing sub-expression's name within e:
// both identifiers and called-function names, pre-order and
// deduplicated. This is the "set of all name-bearing sub-ASTs walked
// in pre-order" spec.md §4.1 calls for when extracting symbols from a
// bare expression statement.
func AllNames(e Expr) map[string]struct{} {
	names := make(map[string]struct{})
	Inspect(e, func(n Expr) bool {
		switch v := n.(type) {
		case *Ident:
			names[v.Name] = struct{}{}
		case *CallExpr:
			names[v.Func] = struct{}{}
		}
		return true
	})
	return names
}
