package analyzer

import (
	"testing"

	"github.com/icftl/icftl/gast"
	"github.com/icftl/icftl/pos"
	"github.com/icftl/icftl/scfg"
	"github.com/icftl/icftl/searcher"
	"github.com/icftl/icftl/spec"
)

func assign(line int, lhs, rhs string) *gast.AssignStmt {
	return &gast.AssignStmt{
		Pos: pos.Position{Module: "f", Line: line},
		Lhs: []gast.Expr{&gast.Ident{Name: lhs}},
		Rhs: []gast.Expr{&gast.Ident{Name: rhs}},
	}
}

func call(line int, fn, arg string) *gast.CallStmt {
	return &gast.CallStmt{
		Pos:  pos.Position{Module: "f", Line: line},
		Call: &gast.CallExpr{Func: fn, Args: []gast.Expr{&gast.Ident{Name: arg}}},
	}
}

func buildGraphs() map[string]*scfg.SCFG {
	f := scfg.Build([]gast.Stmt{
		assign(1, "v", "0"),
		call(2, "g", "v"),
	})
	return map[string]*scfg.SCFG{"f": f}
}

func buildSpec(t *testing.T) *spec.Specification {
	t.Helper()
	sp, err := spec.New().
		Forall("a", spec.Changes("v").During("f")).
		Forall("b", spec.Future(spec.Calls("g").During("f"))).
		Check(func(vars spec.Vars) spec.ConstraintNode {
			return vars.Get("a").Value("v").LessThan(spec.Number(100))
		})
	if err != nil {
		t.Fatalf("building test specification: %v", err)
	}
	return sp
}

func TestAnalyzeProducesOneBindingForStraightLineProgram(t *testing.T) {
	sp := buildSpec(t)
	search := searcher.New(buildGraphs())

	bindings, tree, err := Analyze(sp, search)
	if err != nil {
		t.Fatalf("Analyze() = %v", err)
	}
	if len(bindings) != 1 {
		t.Fatalf("len(bindings) = %d, want 1", len(bindings))
	}
	if _, ok := bindings[0].States["a"]; !ok {
		t.Fatal("binding missing variable a")
	}
	if _, ok := bindings[0].States["b"]; !ok {
		t.Fatal("binding missing variable b")
	}
	if len(tree) != 1 || len(tree[0]) != 1 {
		t.Fatalf("unexpected instrumentation tree shape: %v", tree)
	}
}

func TestAnalyzeReportsResolutionFailureUpFront(t *testing.T) {
	sp, err := spec.New().
		Forall("a", spec.Changes("v").During("missing")).
		Check(func(vars spec.Vars) spec.ConstraintNode {
			return vars.Get("a").Value("v").LessThan(spec.Number(1))
		})
	if err != nil {
		t.Fatalf("building test specification: %v", err)
	}
	search := searcher.New(buildGraphs())

	if _, _, err := Analyze(sp, search); err == nil {
		t.Fatal("Analyze() with an unresolvable function = nil error, want one")
	}
}
