package spec

// Configuration is a per-binding instantiation of a Constraint's
// formula tree (spec.md §4.5/§4.6): each AtomicConstraint leaf
// becomes a mutable AtomConfig the monitor updates as observations
// arrive, and each connective combines its children under the
// monotone three-valued lattice (pending < true, pending < false;
// true and false never meet).
type Configuration interface {
	configNode()
	// Value returns the connective's or atom's current verdict,
	// recomputed from its children on every call.
	Value() Verdict
}

// AtomConfig is a leaf configuration: one AtomicConstraint, and the
// most recent Verdict it was updated to.
type AtomConfig struct {
	Atom    *AtomicConstraint
	verdict Verdict
}

func (a *AtomConfig) configNode() {}

func (a *AtomConfig) Value() Verdict { return a.verdict }

// SetVerdict overwrites the atom's current verdict. Monitor code
// calls this after AtomicConstraint.Check produces a non-pending
// result; spec.md §4.6 treats the lattice as monotone, so callers
// should not move a resolved atom back to pending, though this type
// does not itself enforce that (the monitor's single-writer event
// loop is what makes the guarantee hold in practice).
func (a *AtomConfig) SetVerdict(v Verdict) { a.verdict = v }

// AndConfig mirrors AndNode.
type AndConfig struct {
	Left, Right Configuration
}

func (c *AndConfig) configNode() {}

func (c *AndConfig) Value() Verdict {
	l, r := c.Left.Value(), c.Right.Value()
	if l == VerdictFalse || r == VerdictFalse {
		return VerdictFalse
	}
	if l == VerdictTrue && r == VerdictTrue {
		return VerdictTrue
	}
	return VerdictPending
}

// OrConfig mirrors OrNode.
type OrConfig struct {
	Left, Right Configuration
}

func (c *OrConfig) configNode() {}

func (c *OrConfig) Value() Verdict {
	l, r := c.Left.Value(), c.Right.Value()
	if l == VerdictTrue || r == VerdictTrue {
		return VerdictTrue
	}
	if l == VerdictFalse && r == VerdictFalse {
		return VerdictFalse
	}
	return VerdictPending
}

// NotConfig mirrors NotNode.
type NotConfig struct {
	Inner Configuration
}

func (c *NotConfig) configNode() {}

func (c *NotConfig) Value() Verdict {
	switch c.Inner.Value() {
	case VerdictTrue:
		return VerdictFalse
	case VerdictFalse:
		return VerdictTrue
	default:
		return VerdictPending
	}
}

// Instantiate deep-copies n's shape into a fresh Configuration tree
// for one binding, while every AtomConfig leaf shares pointer
// identity with the AtomicConstraint it was built from. The monitor
// addresses a binding's AtomConfigs by atom index, through the list
// Atoms returns, rather than re-walking the tree on every observation.
func Instantiate(n ConstraintNode) Configuration {
	switch x := n.(type) {
	case *AtomicConstraint:
		return &AtomConfig{Atom: x, verdict: VerdictPending}
	case *AndNode:
		return &AndConfig{Left: Instantiate(x.Left), Right: Instantiate(x.Right)}
	case *OrNode:
		return &OrConfig{Left: Instantiate(x.Left), Right: Instantiate(x.Right)}
	case *NotNode:
		return &NotConfig{Inner: Instantiate(x.Inner)}
	default:
		panic("spec: unrecognized constraint node in Instantiate")
	}
}

// CloneConfiguration deep-copies c, preserving each AtomConfig's
// current verdict and its shared AtomicConstraint identity. The
// runtime monitor calls this when a partial binding is extended
// (spec.md §9 Open Question 1): the new BindingState must not alias
// the binding it was extended from, or resolving one sibling's
// atoms would silently resolve every other sibling's too.
func CloneConfiguration(c Configuration) Configuration {
	switch x := c.(type) {
	case *AtomConfig:
		return &AtomConfig{Atom: x.Atom, verdict: x.verdict}
	case *AndConfig:
		return &AndConfig{Left: CloneConfiguration(x.Left), Right: CloneConfiguration(x.Right)}
	case *OrConfig:
		return &OrConfig{Left: CloneConfiguration(x.Left), Right: CloneConfiguration(x.Right)}
	case *NotConfig:
		return &NotConfig{Inner: CloneConfiguration(x.Inner)}
	default:
		panic("spec: unrecognized configuration node in CloneConfiguration")
	}
}

// Atoms returns every AtomConfig leaf in c, in the same stable order
// Constraint.AtomicConstraints() produces for the tree it was
// instantiated from.
func Atoms(c Configuration) []*AtomConfig {
	var out []*AtomConfig
	var visit func(Configuration)
	visit = func(cfg Configuration) {
		switch x := cfg.(type) {
		case *AtomConfig:
			out = append(out, x)
		case *AndConfig:
			visit(x.Left)
			visit(x.Right)
		case *OrConfig:
			visit(x.Left)
			visit(x.Right)
		case *NotConfig:
			visit(x.Inner)
		}
	}
	visit(c)
	return out
}
