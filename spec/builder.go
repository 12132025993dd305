package spec

import "fmt"

// Vars is the variable environment a Constraint's factory receives:
// one Expression per quantified variable, keyed by name.
type Vars map[string]*Expression

// Get returns the expression bound to name. It panics if name was
// never quantified, since a factory referencing an unbound variable
// is a programming error in the specification itself, not a runtime
// condition.
func (v Vars) Get(name string) *Expression {
	e, ok := v[name]
	if !ok {
		panic(fmt.Sprintf("spec: variable %q was not quantified", name))
	}
	return e
}

type quantifierSpec struct {
	variable  string
	predicate Predicate
}

// Builder assembles a Specification from an ordered list of Forall
// quantifiers and a constraint factory, validating the result the
// way spec.md §4.3 "Validation" describes: fields accumulate through
// a fluent chain, and a single terminal call validates everything at
// once and reports the first problem found.
type Builder struct {
	quantifiers []quantifierSpec
}

// New starts an empty Builder.
func New() *Builder {
	return &Builder{}
}

// Forall adds "forall variable such that predicate" as the next
// quantifier in the chain.
func (b *Builder) Forall(variable string, predicate Predicate) *Builder {
	b.quantifiers = append(b.quantifiers, quantifierSpec{variable: variable, predicate: predicate})
	return b
}

// Check validates the accumulated quantifiers and builds the
// Constraint from factory, which receives a Vars environment with
// one Expression per quantified variable. It returns a
// *MalformedSpecificationError if validation fails.
func (b *Builder) Check(factory func(Vars) ConstraintNode) (*Specification, error) {
	if len(b.quantifiers) == 0 {
		return nil, &MalformedSpecificationError{Node: "specification", Reason: "at least one forall quantifier is required"}
	}

	vars := make(Vars, len(b.quantifiers))
	kinds := make([]Kind, len(b.quantifiers))
	for i, q := range b.quantifiers {
		fn, ok := q.predicate.ScopeFunction()
		if !ok || fn == "" {
			return nil, &MalformedSpecificationError{
				Node:   fmt.Sprintf("forall %s", q.variable),
				Reason: "predicate is incomplete: During(function) was never called",
			}
		}
		_, isFuture := q.predicate.(*FuturePredicate)
		if i == 0 && isFuture {
			return nil, &MalformedSpecificationError{
				Node:   fmt.Sprintf("forall %s", q.variable),
				Reason: "the outermost quantifier's predicate must not be wrapped in future()",
			}
		}
		if i > 0 && !isFuture {
			return nil, &MalformedSpecificationError{
				Node:   fmt.Sprintf("forall %s", q.variable),
				Reason: "every quantifier after the first must wrap its predicate in future()",
			}
		}
		k, err := KindOf(q.predicate)
		if err != nil {
			return nil, err
		}
		kinds[i] = k
		vars[q.variable] = Var(q.variable, k)
	}

	root := factory(vars)
	if root == nil {
		return nil, &MalformedSpecificationError{Node: "constraint", Reason: "factory returned a nil constraint"}
	}
	constraint := NewConstraint(root)
	for _, atom := range constraint.AtomicConstraints() {
		if err := atom.validateTimeBetweenOperands(); err != nil {
			return nil, err
		}
	}

	var child quantifierChild = constraint
	for i := len(b.quantifiers) - 1; i >= 0; i-- {
		child = &Forall{Variable: b.quantifiers[i].variable, Predicate: b.quantifiers[i].predicate, Child: child}
	}

	return &Specification{outer: child.(*Forall)}, nil
}
