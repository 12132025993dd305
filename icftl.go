// Package icftl ties the core components together: build an SCFG per
// target function, run the static analyzer against a specification,
// and turn its output into an instrumentation plan. It is the
// convenience entrypoint the cmd/icftldemo program and most host
// integrations use instead of wiring scfg/searcher/analyzer/planner
// by hand.
package icftl

import (
	"github.com/icftl/icftl/analyzer"
	"github.com/icftl/icftl/gast"
	"github.com/icftl/icftl/planner"
	"github.com/icftl/icftl/scfg"
	"github.com/icftl/icftl/searcher"
	"github.com/icftl/icftl/spec"
)

// BuildSCFGs constructs one SCFG per entry in functions, keyed by
// fully-qualified function name.
func BuildSCFGs(functions map[string][]gast.Stmt) map[string]*scfg.SCFG {
	out := make(map[string]*scfg.SCFG, len(functions))
	for name, stmts := range functions {
		out[name] = scfg.Build(stmts)
	}
	return out
}

// Result bundles everything the analyzer and planner produced for one
// specification run.
type Result struct {
	Bindings            []analyzer.Binding
	InstrumentationTree analyzer.InstrumentationTree
	Plan                []planner.Instrument
	Warnings            []error
}

// Compile runs the static analyzer and instrumentation planner for sp
// against scfgs, in one call.
func Compile(sp *spec.Specification, scfgs map[string]*scfg.SCFG) (*Result, error) {
	search := searcher.New(scfgs)

	bindings, tree, err := analyzer.Analyze(sp, search)
	if err != nil {
		return nil, err
	}

	plan, warnings := planner.Plan(sp, bindings, tree, search)
	return &Result{
		Bindings:            bindings,
		InstrumentationTree: tree,
		Plan:                plan,
		Warnings:            warnings,
	}, nil
}
