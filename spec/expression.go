package spec

import "fmt"

type exprOp int

const (
	opVariable exprOp = iota
	opNext
	opBefore
	opAfter
)

// Expression is a concrete-state or transition expression built from
// a quantified variable and the temporal operators next/before/after
// (spec.md §3). Unlike Predicate, Expression is a single concrete
// type rather than an interface: every shape it can take (a bare
// variable, .Next(p), .Before(), .After()) is a node in the same
// small recursive structure, which keeps the fluent chain
// (q.Next(p).Before()) expressible as ordinary Go methods.
type Expression struct {
	kind Kind
	op   exprOp
	name string      // for opVariable
	base *Expression // for opNext/opBefore/opAfter
	pred Predicate   // for opNext
}

// Var constructs the base expression for quantified variable name,
// bound at the given expression Kind (as determined by its
// quantifier's predicate — see KindOf). Specification wiring calls
// this once per quantifier when building the Vars map a Constraint's
// factory receives; callers outside this package should not normally
// need it directly.
func Var(name string, kind Kind) *Expression {
	return &Expression{kind: kind, op: opVariable, name: name}
}

// Kind returns whether e denotes a concrete state or a transition.
func (e *Expression) Kind() Kind { return e.kind }

// Next returns E.next(p): the next symbolic state or transition
// (depending on p) reachable from e. Its Kind is p's Kind (future()
// defers transparently).
func (e *Expression) Next(p Predicate) *Expression {
	k, err := KindOf(p)
	if err != nil {
		// A malformed predicate here is caught properly when the
		// specification is validated (Check); fall back to e's own
		// kind so construction never panics mid-chain.
		k = e.kind
	}
	return &Expression{kind: k, op: opNext, base: e, pred: p}
}

// Before returns T.before(): the concrete state just before
// transition e. e must be a Transition-kind expression.
func (e *Expression) Before() *Expression {
	return &Expression{kind: ConcreteState, op: opBefore, base: e}
}

// After returns T.after(): the concrete state just after transition
// e. e must be a Transition-kind expression.
func (e *Expression) After() *Expression {
	return &Expression{kind: ConcreteState, op: opAfter, base: e}
}

// Value returns the measurement X(v): the value of program variable
// variable in concrete state e.
func (e *Expression) Value(variable string) *Measurement {
	return &Measurement{kind: measureValue, state: e, variable: variable}
}

// Duration returns the measurement T.duration(): the elapsed time
// along transition e.
func (e *Expression) Duration() *Measurement {
	return &Measurement{kind: measureDuration, transition: e}
}

// TimeBetween returns the measurement timeBetween(a, b): the elapsed
// time between two concrete states.
func TimeBetween(a, b *Expression) *Measurement {
	return &Measurement{kind: measureTimeBetween, state: a, other: b}
}

func (e *Expression) String() string {
	switch e.op {
	case opVariable:
		return e.name
	case opNext:
		return fmt.Sprintf("%v.next(%v)", e.base, e.pred)
	case opBefore:
		return fmt.Sprintf("%v.before()", e.base)
	case opAfter:
		return fmt.Sprintf("%v.after()", e.base)
	default:
		return "<expr>"
	}
}

// TemporalOp is one step in the composition sequence spec.md §4.3
// derives from a measurement down to its base variable: next, before
// or after.
type TemporalOp interface {
	temporalOpNode()
}

// NextOp is a "next(p)" step.
type NextOp struct {
	Predicate Predicate
}

func (NextOp) temporalOpNode() {}

// BeforeOp is a "before()" step.
type BeforeOp struct{}

func (BeforeOp) temporalOpNode() {}

// AfterOp is an "after()" step.
type AfterOp struct{}

func (AfterOp) temporalOpNode() {}

// baseVariableAndOps walks e from the measurement's root expression
// down to its base quantified variable, recording each next/before/
// after in the outer-to-base order it meets them and then reversing,
// so the returned sequence is in application order:
// the operator nearest the base variable comes first, matching how
// the static analyzer's traversal (spec.md §4.4 step 3) must apply
// them — walk outward from the binding's own state.
func baseVariableAndOps(e *Expression) (baseVar string, ops []TemporalOp) {
	var seq []TemporalOp
	cur := e
	for {
		switch cur.op {
		case opVariable:
			for i, j := 0, len(seq)-1; i < j; i, j = i+1, j-1 {
				seq[i], seq[j] = seq[j], seq[i]
			}
			return cur.name, seq
		case opNext:
			seq = append(seq, NextOp{Predicate: cur.pred})
			cur = cur.base
		case opBefore:
			seq = append(seq, BeforeOp{})
			cur = cur.base
		case opAfter:
			seq = append(seq, AfterOp{})
			cur = cur.base
		default:
			panic("spec: expression node with unrecognized op")
		}
	}
}
