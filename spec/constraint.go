package spec

import "fmt"

// ConstraintNode is a node of a Constraint's quantifier-free formula:
// an AtomicConstraint leaf or an And/Or/Not connective over other
// nodes (spec.md §3 "Constraints").
type ConstraintNode interface {
	constraintNode()
}

func (*AtomicConstraint) constraintNode() {}

// AndNode is the conjunction of two constraint nodes.
type AndNode struct {
	Left, Right ConstraintNode
}

func (*AndNode) constraintNode() {}

// OrNode is the disjunction of two constraint nodes.
type OrNode struct {
	Left, Right ConstraintNode
}

func (*OrNode) constraintNode() {}

// NotNode is the negation of a constraint node. By construction
// (see NotTrue) a NotNode's Inner is always an *AtomicConstraint:
// negating an And or Or pushes the negation down via De Morgan
// instead of wrapping it, and double negation is eliminated, so a
// NotNode never wraps another NotNode or an And/Or.
type NotNode struct {
	Inner ConstraintNode
}

func (*NotNode) constraintNode() {}

// AllAreTrue conjoins nodes left to right. It panics if called with
// no arguments; a Constraint's factory is expected to always combine
// at least one atomic constraint.
func AllAreTrue(nodes ...ConstraintNode) ConstraintNode {
	if len(nodes) == 0 {
		panic("spec: AllAreTrue requires at least one node")
	}
	out := nodes[0]
	for _, n := range nodes[1:] {
		out = &AndNode{Left: out, Right: n}
	}
	return out
}

// OneIsTrue disjoins nodes left to right. It panics if called with no
// arguments.
func OneIsTrue(nodes ...ConstraintNode) ConstraintNode {
	if len(nodes) == 0 {
		panic("spec: OneIsTrue requires at least one node")
	}
	out := nodes[0]
	for _, n := range nodes[1:] {
		out = &OrNode{Left: out, Right: n}
	}
	return out
}

// NotTrue negates n, pushing the negation down to the atomic
// constraints it contains (De Morgan's laws) rather than wrapping n
// itself. This keeps NotNode.Inner always an atom, which simplifies
// both Instantiate (spec.md §4.6) and any future rendering of the
// formula.
func NotTrue(n ConstraintNode) ConstraintNode {
	switch x := n.(type) {
	case *AndNode:
		return OneIsTrue(NotTrue(x.Left), NotTrue(x.Right))
	case *OrNode:
		return AllAreTrue(NotTrue(x.Left), NotTrue(x.Right))
	case *NotNode:
		return x.Inner
	default:
		return &NotNode{Inner: n}
	}
}

// Constraint is the quantifier-free formula attached to the
// innermost Forall of a specification (spec.md §3/§4.3). It caches
// both the materialized node tree its factory produced and a flat,
// stably-ordered index of the atomic constraints within it, so the
// static analyzer can address "subatom i of atom j" without
// re-walking the tree for every binding.
type Constraint struct {
	built ConstraintNode
	atoms []*AtomicConstraint
}

// NewConstraint wraps a materialized formula tree as a Constraint.
// Builder.Check calls this once per specification; direct callers
// should rarely need it.
func NewConstraint(n ConstraintNode) *Constraint {
	c := &Constraint{built: n}
	c.atoms = collectAtoms(n, nil)
	return c
}

func collectAtoms(n ConstraintNode, out []*AtomicConstraint) []*AtomicConstraint {
	switch x := n.(type) {
	case *AtomicConstraint:
		return append(out, x)
	case *AndNode:
		out = collectAtoms(x.Left, out)
		return collectAtoms(x.Right, out)
	case *OrNode:
		out = collectAtoms(x.Left, out)
		return collectAtoms(x.Right, out)
	case *NotNode:
		return collectAtoms(x.Inner, out)
	default:
		return out
	}
}

// Root returns the constraint's formula tree.
func (c *Constraint) Root() ConstraintNode { return c.built }

// AtomicConstraints returns the atoms within c, in the stable order
// Instantiate and the static analyzer both rely on.
func (c *Constraint) AtomicConstraints() []*AtomicConstraint { return c.atoms }

func (c *Constraint) quantifierChildNode() {}

func (c *Constraint) String() string {
	return fmt.Sprintf("%v", renderNode(c.built))
}

func renderNode(n ConstraintNode) string {
	switch x := n.(type) {
	case *AtomicConstraint:
		return x.String()
	case *AndNode:
		return fmt.Sprintf("(%s and %s)", renderNode(x.Left), renderNode(x.Right))
	case *OrNode:
		return fmt.Sprintf("(%s or %s)", renderNode(x.Left), renderNode(x.Right))
	case *NotNode:
		return fmt.Sprintf("not(%s)", renderNode(x.Inner))
	default:
		return "<constraint>"
	}
}
