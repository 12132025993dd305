// Package analyzer implements the static analyzer of spec.md §4.4: it
// walks a specification's quantifier chain against a searcher to
// produce bindings, then walks each atomic constraint's temporal-
// operator composition sequence to locate the further instrumentation
// sites each subatom needs.
package analyzer

import "github.com/icftl/icftl/scfg"

// Binding is one concrete tuple of symbolic states satisfying a
// specification's quantifier chain, keyed by variable name. Order
// is recovered from the originating Specification's variable list
// (spec.GetVariables), not stored redundantly here.
type Binding struct {
	States map[string]*scfg.SymbolicState
}

func (b Binding) clone() Binding {
	cp := make(map[string]*scfg.SymbolicState, len(b.States))
	for k, v := range b.States {
		cp[k] = v
	}
	return Binding{States: cp}
}

// InstrumentationTree is the nested binding_index -> atom_index ->
// subatom_index -> states mapping spec.md §4.4 describes.
type InstrumentationTree [][][][]*scfg.SymbolicState
