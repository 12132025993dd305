package planner

import (
	"testing"

	"github.com/icftl/icftl/analyzer"
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

func TestPlanEmitsTriggersAndValueInstruments(t *testing.T) {
	sp := buildSpec(t)
	search := searcher.New(buildGraphs())
	bindings, tree, err := analyzer.Analyze(sp, search)
	if err != nil {
		t.Fatalf("Analyze() = %v", err)
	}

	instruments, warnings := Plan(sp, bindings, tree, search)
	if len(warnings) != 0 {
		t.Fatalf("Plan() warnings = %v, want none", warnings)
	}

	var triggers, values int
	for _, in := range instruments {
		switch in.Kind {
		case Trigger:
			triggers++
		case Value:
			values++
		}
	}
	if triggers != 2 {
		t.Fatalf("trigger count = %d, want 2 (one per quantifier)", triggers)
	}
	if values != 1 {
		t.Fatalf("value count = %d, want 1", values)
	}
}

func TestPlanSortsByLineDescending(t *testing.T) {
	sp := buildSpec(t)
	search := searcher.New(buildGraphs())
	bindings, tree, _ := analyzer.Analyze(sp, search)

	instruments, _ := Plan(sp, bindings, tree, search)
	for i := 1; i < len(instruments); i++ {
		if instruments[i].Line > instruments[i-1].Line {
			t.Fatalf("instruments not sorted descending by line: %v", instruments)
		}
	}
}

func TestDedupeReportsDuplicateAndKeepsOthers(t *testing.T) {
	in := []Instrument{
		{Function: "f", Line: 1, Kind: Trigger, BindingIndex: 0, Variable: "a"},
		{Function: "f", Line: 1, Kind: Trigger, BindingIndex: 0, Variable: "a"},
		{Function: "f", Line: 2, Kind: Trigger, BindingIndex: 0, Variable: "b"},
	}
	out, warnings := dedupe(in)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if len(warnings) != 1 {
		t.Fatalf("len(warnings) = %d, want 1", len(warnings))
	}
	if _, ok := warnings[0].(*InconsistentInstrumentationError); !ok {
		t.Fatalf("warnings[0] = %T, want *InconsistentInstrumentationError", warnings[0])
	}
}
