// Package searcher resolves predicates and temporal operators against
// a family of SCFGs, per spec.md §4.2. It is the layer between the
// pure specification model (package spec) and the pure graph queries
// (package scfg): the static analyzer drives binding search entirely
// through the two methods this package exposes.
package searcher

import (
	"github.com/icftl/icftl/scfg"
	"github.com/icftl/icftl/spec"
)

// Searcher wraps a fully-qualified function name -> SCFG map.
type Searcher struct {
	scfgs map[string]*scfg.SCFG
}

// New builds a Searcher over scfgs. The map is retained, not copied;
// callers must not mutate it afterward.
func New(scfgs map[string]*scfg.SCFG) *Searcher {
	return &Searcher{scfgs: scfgs}
}

func (s *Searcher) scfgFor(function string) (*scfg.SCFG, error) {
	g, ok := s.scfgs[function]
	if !ok {
		return nil, &ResolutionFailureError{Function: function}
	}
	return g, nil
}

// Lookup resolves function to its SCFG, or a *ResolutionFailureError
// if none is registered. The static analyzer calls this up front, for
// every function name the specification mentions, so resolution
// failures are raised once at initialization rather than partway
// through binding search.
func (s *Searcher) Lookup(function string) (*scfg.SCFG, error) {
	return s.scfgFor(function)
}

// FunctionOf is the reverse lookup from a symbolic state to the
// function whose SCFG contains it, implemented as a linear scan over
// every registered SCFG (spec.md §9 design note 3 accepts either this
// or an O(1) index; the simpler scanning form is kept since no
// analyzer path calls it often enough to need a reverse index).
func (s *Searcher) FunctionOf(state *scfg.SymbolicState) (function string, ok bool) {
	for fn, g := range s.scfgs {
		for _, n := range g.Nodes() {
			if n == state {
				return fn, true
			}
		}
	}
	return "", false
}

// variableAndFunction unwraps p (transparently through future()) to
// the symbol name it constrains (a changed variable or a called
// function name) and the function it is scoped to.
func variableAndFunction(p spec.Predicate) (variable, function string, err error) {
	switch pred := p.(type) {
	case *spec.ChangesPredicate:
		return pred.Variable, pred.Function, nil
	case *spec.CallsPredicate:
		return pred.Called, pred.Function, nil
	case *spec.FuturePredicate:
		return variableAndFunction(pred.Inner)
	default:
		return "", "", &spec.MalformedSpecificationError{
			Node:   "predicate",
			Reason: "predicate type not supported by searcher",
		}
	}
}

// FindStates implements find_states(p, base) (spec.md §4.2): it
// resolves predicate p to the symbolic states it identifies, using
// base's reachability when p is a future() predicate scoped to
// base's own function.
func (s *Searcher) FindStates(p spec.Predicate, base *scfg.SymbolicState) ([]*scfg.SymbolicState, error) {
	if future, ok := p.(*spec.FuturePredicate); ok {
		x, f, err := variableAndFunction(future.Inner)
		if err != nil {
			return nil, err
		}
		g, err := s.scfgFor(f)
		if err != nil {
			return nil, err
		}
		if baseFn, ok := s.FunctionOf(base); ok && baseFn == f {
			return g.ReachableStatesChanging(x, base), nil
		}
		return g.StatesChanging(x), nil
	}

	x, f, err := variableAndFunction(p)
	if err != nil {
		return nil, err
	}
	g, err := s.scfgFor(f)
	if err != nil {
		return nil, err
	}
	return g.StatesChanging(x), nil
}

// StatesFromTemporalOperator implements
// states-from-temporal-operator(T, base) (spec.md §4.2): next(p)
// resolves to the next states changing p's symbol after base
// (NextStatesChanging) when p's function is base's own, and to every
// state changing it in p's function otherwise; before()/after() are
// resolved later by the planner, so here they simply pass base
// through unchanged.
func (s *Searcher) StatesFromTemporalOperator(op spec.TemporalOp, base *scfg.SymbolicState) ([]*scfg.SymbolicState, error) {
	switch o := op.(type) {
	case spec.NextOp:
		x, f, err := variableAndFunction(o.Predicate)
		if err != nil {
			return nil, err
		}
		g, err := s.scfgFor(f)
		if err != nil {
			return nil, err
		}
		if baseFn, ok := s.FunctionOf(base); ok && baseFn == f {
			return g.NextStatesChanging(x, base), nil
		}
		return g.StatesChanging(x), nil
	case spec.BeforeOp, spec.AfterOp:
		return []*scfg.SymbolicState{base}, nil
	default:
		return nil, &spec.MalformedSpecificationError{
			Node:   "temporal operator",
			Reason: "unrecognized temporal operator kind",
		}
	}
}
