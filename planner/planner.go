// Package planner turns the static analyzer's bindings and
// instrumentation tree into an ordered list of (module, line,
// emit-kind) instrumentation sites, per spec.md §4.5: instruments are
// appended in discovery order and stable-sorted by line, descending,
// once at the end. Exact-duplicate instruments are dropped and
// reported; two different instruments on the same line are both kept,
// and no check is made for whether they are compatible.
package planner

import (
	"sort"

	"github.com/icftl/icftl/analyzer"
	"github.com/icftl/icftl/scfg"
	"github.com/icftl/icftl/searcher"
	"github.com/icftl/icftl/spec"
)

// Kind is the emit-kind of a single instrumentation site (spec.md §6
// "Instrumentation plan file/emission").
type Kind int

const (
	Trigger Kind = iota
	Value
	Length
	DurationStart
	DurationEnd
	TimestampBefore
	TimestampAfter
)

func (k Kind) String() string {
	switch k {
	case Trigger:
		return "trigger"
	case Value:
		return "value"
	case Length:
		return "length"
	case DurationStart:
		return "duration-start"
	case DurationEnd:
		return "duration-end"
	case TimestampBefore:
		return "timestamp-before"
	case TimestampAfter:
		return "timestamp-after"
	default:
		return "unknown"
	}
}

// Instrument is one planned instrumentation site: a function, a
// source line within it, an emit-kind, and the argument tuple the
// host must pass to emit_trigger/emit_measurement at runtime.
type Instrument struct {
	Function string
	Line     int
	Kind     Kind

	BindingIndex int

	Variable string // Trigger only

	AtomIndex    int // measurement kinds only
	SubatomIndex int // measurement kinds only
}

// Plan builds the ordered instrumentation plan for sp, given the
// analyzer's bindings and instrumentation tree. Inconsistent-
// instrumentation conditions are returned alongside the plan rather
// than aborting it: the offending duplicate is dropped and every
// other instrument is still emitted, per spec.md §7.
func Plan(sp *spec.Specification, bindings []analyzer.Binding, tree analyzer.InstrumentationTree, search *searcher.Searcher) ([]Instrument, []error) {
	var out []Instrument
	var warnings []error

	variables := spec.GetVariables(sp)
	for bi, b := range bindings {
		for _, v := range variables {
			s := b.States[v]
			fn, _ := search.FunctionOf(s)
			out = append(out, Instrument{
				Function:     fn,
				Line:         lineOf(s),
				Kind:         Trigger,
				BindingIndex: bi,
				Variable:     v,
			})
		}
	}

	atoms := spec.GetConstraint(sp).AtomicConstraints()
	for bi := range bindings {
		for ai, atom := range atoms {
			measurements := atom.Measurements()
			for si, m := range measurements {
				_, ops := atom.SubatomSequence(si)
				for _, s := range tree[bi][ai][si] {
					fn, _ := search.FunctionOf(s)
					line := lineOf(s)
					switch m.Shape() {
					case spec.ShapeValue:
						out = append(out, Instrument{Function: fn, Line: line, Kind: Value, BindingIndex: bi, AtomIndex: ai, SubatomIndex: si})
					case spec.ShapeLength:
						out = append(out, Instrument{Function: fn, Line: line, Kind: Length, BindingIndex: bi, AtomIndex: ai, SubatomIndex: si})
					case spec.ShapeDuration:
						out = append(out, Instrument{Function: fn, Line: line, Kind: DurationStart, BindingIndex: bi, AtomIndex: ai, SubatomIndex: si})
						out = append(out, Instrument{Function: fn, Line: line, Kind: DurationEnd, BindingIndex: bi, AtomIndex: ai, SubatomIndex: si})
					case spec.ShapeTimestamp:
						kind := TimestampAfter
						if len(ops) > 0 {
							if _, ok := ops[len(ops)-1].(spec.BeforeOp); ok {
								kind = TimestampBefore
							}
						}
						out = append(out, Instrument{Function: fn, Line: line, Kind: kind, BindingIndex: bi, AtomIndex: ai, SubatomIndex: si})
					}
				}
			}
		}
	}

	out, dups := dedupe(out)
	warnings = append(warnings, dups...)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Line > out[j].Line
	})

	return out, warnings
}

func lineOf(s *scfg.SymbolicState) int {
	if s == nil || s.Source() == nil {
		return 0
	}
	return s.Source().Position().Line
}

// dedupe drops exact-duplicate instrument requests (same site, same
// kind, same arguments), reporting one InconsistentInstrumentationError
// per duplicate found.
func dedupe(in []Instrument) ([]Instrument, []error) {
	seen := make(map[Instrument]bool, len(in))
	var out []Instrument
	var warnings []error
	for _, i := range in {
		if seen[i] {
			warnings = append(warnings, &InconsistentInstrumentationError{
				Function: i.Function,
				Line:     i.Line,
				Reason:   "duplicate instrument request: " + i.Kind.String(),
			})
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	return out, warnings
}
