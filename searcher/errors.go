package searcher

import "fmt"

// ResolutionFailureError reports that a predicate refers to a
// function name absent from the searcher's function->SCFG map
// (spec.md §7 "Resolution failure"). The static analyzer raises this
// at initialization, before any binding search begins.
type ResolutionFailureError struct {
	Function string
}

func (e *ResolutionFailureError) Error() string {
	return fmt.Sprintf("searcher: no SCFG registered for function %q", e.Function)
}
