package spec

import "fmt"

// MalformedSpecificationError reports a construction-time problem in
// a specification tree (spec.md §7): too many quantified variables,
// an incomplete predicate, a non-future predicate in a non-outermost
// quantifier, and so on. It describes the offending node in plain
// text rather than a file/position, since specification errors have
// no source location — only the logical node they occurred at.
type MalformedSpecificationError struct {
	Node   string // description of the offending node
	Reason string
}

func (e *MalformedSpecificationError) Error() string {
	return fmt.Sprintf("malformed specification at %s: %s", e.Node, e.Reason)
}
