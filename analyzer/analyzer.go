package analyzer

import (
	"github.com/icftl/icftl/scfg"
	"github.com/icftl/icftl/searcher"
	"github.com/icftl/icftl/spec"
)

// Analyze runs the static analyzer over sp using search, returning
// the bindings list and instrumentation tree of spec.md §4.4.
// Resolution failures (a predicate naming a function absent from
// search's map) are reported once, up front, rather than partway
// through binding search.
func Analyze(sp *spec.Specification, search *searcher.Searcher) ([]Binding, InstrumentationTree, error) {
	for fn := range spec.GetFunctionNamesUsed(sp) {
		if _, err := search.Lookup(fn); err != nil {
			return nil, nil, err
		}
	}

	bindings, err := buildBindings(sp, search)
	if err != nil {
		return nil, nil, err
	}

	tree, err := buildInstrumentationTree(sp, search, bindings)
	if err != nil {
		return nil, nil, err
	}
	return bindings, tree, nil
}

// buildBindings performs the "quantifier inspection" walk: at level
// i it asks the searcher for every state satisfying quantifier i's
// predicate given the previous level's bound state, and recurses for
// each, in order, until every quantifier has been bound.
func buildBindings(sp *spec.Specification, search *searcher.Searcher) ([]Binding, error) {
	quantifiers := sp.Quantifiers()
	variables := spec.GetVariables(sp)

	var out []Binding
	var recurse func(level int, partial Binding) error
	recurse = func(level int, partial Binding) error {
		if level == len(quantifiers) {
			out = append(out, partial.clone())
			return nil
		}
		q := quantifiers[level]
		var base *scfg.SymbolicState
		if level > 0 {
			base = partial.States[variables[level-1]]
		}
		states, err := search.FindStates(q.Predicate, base)
		if err != nil {
			return err
		}
		for _, s := range states {
			next := partial.clone()
			next.States[q.Variable] = s
			if err := recurse(level+1, next); err != nil {
				return err
			}
		}
		return nil
	}

	if err := recurse(0, Binding{States: map[string]*scfg.SymbolicState{}}); err != nil {
		return nil, err
	}
	return out, nil
}

// buildInstrumentationTree performs the "constraint inspection" walk
// of spec.md §4.4: for every binding, every atomic constraint, and
// every subatom of that atom, it derives the temporal-operator
// composition sequence and walks it from the binding's own bound
// state outward.
func buildInstrumentationTree(sp *spec.Specification, search *searcher.Searcher, bindings []Binding) (InstrumentationTree, error) {
	atoms := spec.GetConstraint(sp).AtomicConstraints()
	tree := make(InstrumentationTree, len(bindings))

	for bi, b := range bindings {
		tree[bi] = make([][][]*scfg.SymbolicState, len(atoms))
		for ai, atom := range atoms {
			measurements := atom.Measurements()
			tree[bi][ai] = make([][]*scfg.SymbolicState, len(measurements))
			for si := range measurements {
				baseVar, ops := atom.SubatomSequence(si)
				current := []*scfg.SymbolicState{b.States[baseVar]}
				for _, op := range ops {
					var next []*scfg.SymbolicState
					seen := make(map[*scfg.SymbolicState]bool)
					for _, s := range current {
						states, err := search.StatesFromTemporalOperator(op, s)
						if err != nil {
							return nil, err
						}
						for _, x := range states {
							if !seen[x] {
								seen[x] = true
								next = append(next, x)
							}
						}
					}
					current = next
				}
				tree[bi][ai][si] = current
			}
		}
	}
	return tree, nil
}
