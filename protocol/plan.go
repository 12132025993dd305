// Package protocol defines the wire representation of an
// instrumentation plan and of verdict snapshots (spec.md §6), so a
// host process can receive either over any io.Writer/io.Reader pair
// (a pipe, a file, a socket) without depending on the analyzer or
// monitor packages directly: small JSON-tagged structs plus a single
// reply-style envelope per payload kind.
package protocol

import "github.com/icftl/icftl/planner"

// InstrumentSite is the wire form of a planner.Instrument.
type InstrumentSite struct {
	Function     string `json:"function"`
	Line         int    `json:"line"`
	Kind         string `json:"kind"`
	BindingIndex int    `json:"bindingIndex"`
	Variable     string `json:"variable,omitempty"`
	AtomIndex    int    `json:"atomIndex,omitempty"`
	SubatomIndex int    `json:"subatomIndex,omitempty"`
}

// Plan is the wire form of an entire instrumentation plan.
type Plan struct {
	Sites []InstrumentSite `json:"sites"`
}

// FromInstruments converts a planner's output into a Plan.
func FromInstruments(instruments []planner.Instrument) Plan {
	sites := make([]InstrumentSite, len(instruments))
	for i, instr := range instruments {
		sites[i] = InstrumentSite{
			Function:     instr.Function,
			Line:         instr.Line,
			Kind:         instr.Kind.String(),
			BindingIndex: instr.BindingIndex,
			Variable:     instr.Variable,
			AtomIndex:    instr.AtomIndex,
			SubatomIndex: instr.SubatomIndex,
		}
	}
	return Plan{Sites: sites}
}
