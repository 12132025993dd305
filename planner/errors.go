package planner

import "fmt"

// InconsistentInstrumentationError reports a duplicate instrument
// request at a site (spec.md §7): the planner records this and
// continues, omitting only the duplicate rather than the whole plan.
// It is raised only for exact duplicates; distinct instruments on one
// line are not compared.
type InconsistentInstrumentationError struct {
	Function string
	Line     int
	Reason   string
}

func (e *InconsistentInstrumentationError) Error() string {
	return fmt.Sprintf("planner: inconsistent instrumentation at %s:%d: %s", e.Function, e.Line, e.Reason)
}
