package spec

// GetVariables returns the quantified variable names of s, outermost
// first, as the static analyzer's binding search (spec.md §4.4)
// drives off of.
func GetVariables(s *Specification) []string {
	qs := s.Quantifiers()
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.Variable
	}
	return out
}

// GetVariableToExpressionKind maps each quantified variable to the
// expression kind (concrete state or transition) its predicate binds.
func GetVariableToExpressionKind(s *Specification) map[string]Kind {
	out := make(map[string]Kind)
	for _, q := range s.Quantifiers() {
		k, err := KindOf(q.Predicate)
		if err != nil {
			continue
		}
		out[q.Variable] = k
	}
	return out
}

// GetFunctionNamesUsed returns the set of target-language function
// names referenced anywhere in s: in each quantifier's predicate (via
// During), and in every atomic constraint's subatoms, including an
// embedded next(p).during(f) predicate and both operands of a
// timeBetween atom. The static analyzer looks up every returned name
// before binding search begins and fails on any without a registered
// SCFG, so it must see every function a specification touches, not
// just the ones named by its quantifiers.
func GetFunctionNamesUsed(s *Specification) map[string]struct{} {
	out := make(map[string]struct{})
	for _, q := range s.Quantifiers() {
		if fn, ok := q.Predicate.ScopeFunction(); ok {
			out[fn] = struct{}{}
		}
	}
	for _, atom := range s.Constraint().AtomicConstraints() {
		for si := range atom.Measurements() {
			_, ops := atom.SubatomSequence(si)
			for _, op := range ops {
				next, ok := op.(NextOp)
				if !ok {
					continue
				}
				if fn, ok := next.Predicate.ScopeFunction(); ok {
					out[fn] = struct{}{}
				}
			}
		}
	}
	return out
}

// GetConstraint returns the constraint s terminates in.
func GetConstraint(s *Specification) *Constraint {
	return s.Constraint()
}
