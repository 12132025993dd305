package spec

import "testing"

func TestBaseVariableAndOpsOrdersNearestBaseFirst(t *testing.T) {
	a := Var("a", ConcreteState)
	e := a.Next(Calls("g").During("f")).Before()

	base, ops := baseVariableAndOps(e)
	if base != "a" {
		t.Fatalf("base = %q, want \"a\"", base)
	}
	if len(ops) != 2 {
		t.Fatalf("len(ops) = %d, want 2", len(ops))
	}
	if _, ok := ops[0].(NextOp); !ok {
		t.Fatalf("ops[0] = %T, want NextOp (nearest the base variable)", ops[0])
	}
	if _, ok := ops[1].(BeforeOp); !ok {
		t.Fatalf("ops[1] = %T, want BeforeOp", ops[1])
	}
}

func TestBaseVariableAndOpsBareVariable(t *testing.T) {
	a := Var("a", ConcreteState)
	base, ops := baseVariableAndOps(a)
	if base != "a" || len(ops) != 0 {
		t.Fatalf("baseVariableAndOps(bare var) = (%q, %v), want (\"a\", [])", base, ops)
	}
}

func TestExpressionKindPropagation(t *testing.T) {
	a := Var("a", ConcreteState)
	transition := a.Next(Calls("g").During("f"))
	if transition.Kind() != Transition {
		t.Fatalf("Next(calls).Kind() = %v, want Transition", transition.Kind())
	}
	if transition.Before().Kind() != ConcreteState {
		t.Fatalf("Before().Kind() = %v, want ConcreteState", transition.Before().Kind())
	}
}
