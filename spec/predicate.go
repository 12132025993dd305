// Package spec implements the iCFTL specification model of spec.md
// §3–§4.3: an immutable tree of Specification -> Forall+ -> Constraint,
// together with the predicate, expression, measurement and atomic-
// constraint vocabulary a Constraint's factory composes, and the
// traversal/introspection queries the static analyzer drives from.
//
// The fluent authoring surface (spec.md §6) is grounded on the
// combinator style seen in the retrieval pack's kripke-ctl example
// (free functions like kripke.AG(kripke.Not(kripke.Atom(...))) compose
// into a formula), adapted to iCFTL's quantifier/predicate/measurement
// vocabulary instead of CTL's path operators.
package spec

import "fmt"

// Predicate identifies symbolic states or transitions within a target
// function, per spec.md §3.
type Predicate interface {
	predicateNode()
	// ScopeFunction returns the function this predicate is scoped to
	// (supplied via During) and whether one has been supplied yet.
	// A predicate is "complete" (spec.md §4.3 Validation) iff ok is
	// true.
	ScopeFunction() (fn string, ok bool)
}

// ChangesPredicate is "changes(v).during(f)": states mutating program
// variable Variable in function Function.
type ChangesPredicate struct {
	Variable string
	Function string
	complete bool
}

// Changes begins a changes(v) predicate; it is incomplete until
// During is called.
func Changes(variable string) *ChangesPredicate {
	return &ChangesPredicate{Variable: variable}
}

// During completes the predicate, scoping it to function fn.
func (p *ChangesPredicate) During(fn string) *ChangesPredicate {
	p.Function = fn
	p.complete = true
	return p
}

func (p *ChangesPredicate) predicateNode() {}

func (p *ChangesPredicate) ScopeFunction() (string, bool) { return p.Function, p.complete }

func (p *ChangesPredicate) String() string {
	return fmt.Sprintf("changes(%q).during(%q)", p.Variable, p.Function)
}

// CallsPredicate is "calls(g).during(f)": states that call function
// Called within function Function.
type CallsPredicate struct {
	Called   string
	Function string
	complete bool
}

// Calls begins a calls(g) predicate; it is incomplete until During is
// called.
func Calls(called string) *CallsPredicate {
	return &CallsPredicate{Called: called}
}

// During completes the predicate, scoping it to function fn.
func (p *CallsPredicate) During(fn string) *CallsPredicate {
	p.Function = fn
	p.complete = true
	return p
}

func (p *CallsPredicate) predicateNode() {}

func (p *CallsPredicate) ScopeFunction() (string, bool) { return p.Function, p.complete }

func (p *CallsPredicate) String() string {
	return fmt.Sprintf("calls(%q).during(%q)", p.Called, p.Function)
}

// FuturePredicate wraps a changes/calls predicate for a non-outermost
// quantifier, imposing the reachability constraint from the previous
// binding's state that spec.md §3/§4.2 describe. It is transparent
// for scope/completeness purposes: it defers to Inner.
type FuturePredicate struct {
	Inner Predicate
}

// Future wraps p for use as a second-or-later quantifier's predicate.
func Future(p Predicate) *FuturePredicate {
	return &FuturePredicate{Inner: p}
}

func (p *FuturePredicate) predicateNode() {}

func (p *FuturePredicate) ScopeFunction() (string, bool) { return p.Inner.ScopeFunction() }

func (p *FuturePredicate) String() string {
	return fmt.Sprintf("future(%v)", p.Inner)
}

// Kind classifies the "expression kind" of a variable bound by a
// predicate, per spec.md §4.3's get-variable-to-expression-kind: a
// changes(...) predicate binds a concrete-state variable; a
// calls(...) predicate binds a transition variable; future(...)
// defers transparently to its inner predicate.
type Kind int

const (
	ConcreteState Kind = iota
	Transition
)

func (k Kind) String() string {
	if k == Transition {
		return "transition"
	}
	return "concrete state"
}

// KindOf returns the expression kind bound by p, or an error if p is
// not one of the recognized predicate shapes.
func KindOf(p Predicate) (Kind, error) {
	switch pr := p.(type) {
	case *ChangesPredicate:
		return ConcreteState, nil
	case *CallsPredicate:
		return Transition, nil
	case *FuturePredicate:
		return KindOf(pr.Inner)
	default:
		return 0, &MalformedSpecificationError{
			Node:   fmt.Sprintf("%T", p),
			Reason: "predicate type not supported",
		}
	}
}
