package spec

import "testing"

func TestBuilderCheckRequiresAtLeastOneQuantifier(t *testing.T) {
	_, err := New().Check(func(vars Vars) ConstraintNode {
		return nil
	})
	if err == nil {
		t.Fatal("Check() with no quantifiers = nil error, want MalformedSpecificationError")
	}
}

func TestBuilderCheckRejectsIncompletePredicate(t *testing.T) {
	_, err := New().Forall("a", Changes("v")).Check(func(vars Vars) ConstraintNode {
		return vars.Get("a").Value("v").LessThan(Number(1))
	})
	if err == nil {
		t.Fatal("Check() with incomplete predicate (no During) = nil error, want one")
	}
}

func TestBuilderCheckRejectsFutureOuterQuantifier(t *testing.T) {
	_, err := New().Forall("a", Future(Changes("v").During("f"))).Check(func(vars Vars) ConstraintNode {
		return vars.Get("a").Value("v").LessThan(Number(1))
	})
	if err == nil {
		t.Fatal("Check() with future() outermost = nil error, want one")
	}
}

func TestBuilderCheckRejectsNonFutureInnerQuantifier(t *testing.T) {
	_, err := New().
		Forall("a", Changes("v").During("f")).
		Forall("b", Calls("g").During("f")).
		Check(func(vars Vars) ConstraintNode {
			return vars.Get("a").Value("v").LessThan(Number(1))
		})
	if err == nil {
		t.Fatal("Check() with non-future second quantifier = nil error, want one")
	}
}

func TestBuilderCheckBuildsValidSpecification(t *testing.T) {
	sp, err := New().
		Forall("a", Changes("v").During("f")).
		Forall("b", Future(Calls("g").During("f"))).
		Check(func(vars Vars) ConstraintNode {
			return vars.Get("a").Value("v").LessThan(Number(1))
		})
	if err != nil {
		t.Fatalf("Check() = %v, want success", err)
	}
	if got := GetVariables(sp); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("GetVariables() = %v, want [a b]", got)
	}
}

func TestBuilderCheckRejectsTimeBetweenWithTransitionOperand(t *testing.T) {
	_, err := New().
		Forall("a", Changes("v").During("f")).
		Forall("b", Future(Calls("g").During("f"))).
		Check(func(vars Vars) ConstraintNode {
			a := vars.Get("a")
			b := vars.Get("b") // a transition-kind expression
			return TimeBetween(a, b).LessThan(Number(1))
		})
	if err == nil {
		t.Fatal("Check() with a timeBetween transition operand = nil error, want MalformedSpecificationError")
	}
}

func TestVarsGetPanicsOnUnboundVariable(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Vars.Get(unbound) did not panic")
		}
	}()
	Vars{}.Get("nope")
}
