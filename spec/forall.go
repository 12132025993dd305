package spec

// quantifierChild is what a Forall nests: either another Forall (a
// further quantifier) or the Constraint that terminates the
// quantifier chain (spec.md §3 "Specification -> Forall+ ->
// Constraint").
type quantifierChild interface {
	quantifierChildNode()
}

// Forall is a single "forall v such that p" quantifier (spec.md §3).
type Forall struct {
	Variable  string
	Predicate Predicate
	Child     quantifierChild
}

func (f *Forall) quantifierChildNode() {}
