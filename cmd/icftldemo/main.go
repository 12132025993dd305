// Command icftldemo builds the loop/branch function from spec.md §8's
// worked scenarios, compiles three increasingly elaborate
// specifications against it (a duration bound, a next-operator bound,
// and a two-function timeBetween bound), prints each instrumentation
// plan, and finally feeds a simulated event stream into a
// monitor.Monitor to print the resulting verdict snapshot. Output is
// plain text or JSON, selected by -format: a flag-selected Response
// value whose String method branches on that format, and a handful of
// print* helpers rather than ad hoc fmt.Println calls scattered
// through main.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/icftl/icftl"
	"github.com/icftl/icftl/gast"
	"github.com/icftl/icftl/monitor"
	"github.com/icftl/icftl/planner"
	"github.com/icftl/icftl/pos"
	"github.com/icftl/icftl/protocol"
	"github.com/icftl/icftl/scfg"
	"github.com/icftl/icftl/spec"
)

var formatFlag = flag.String("format", "plain", "output format: plain or json")

const (
	loopBranchFn = "loopBranch"
	handlerFn    = "handler"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: icftldemo [-format plain|json]")
	fmt.Fprintln(os.Stderr, "\nBuilds the spec.md §8 worked scenarios, runs the static analyzer")
	fmt.Fprintln(os.Stderr, "and instrumentation planner against each, and simulates a monitor run.")
	flag.PrintDefaults()
}

// Response is the demo's output envelope: Plain lines for human
// consumption, JSON for tool consumption, selected by -format.
type Response struct {
	Plain []string
	JSON  map[string]interface{}
}

func (r Response) String() string {
	if *formatFlag == "json" {
		b, err := json.MarshalIndent(r.JSON, "", "  ")
		if err != nil {
			return fmt.Sprintf(`{"error": %q}`, err.Error())
		}
		return string(b)
	}
	out := ""
	for i, line := range r.Plain {
		if i > 0 {
			out += "\n"
		}
		out += line
	}
	return out
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *formatFlag != "plain" && *formatFlag != "json" {
		printError(fmt.Errorf("unrecognized -format %q (want plain or json)", *formatFlag))
		os.Exit(1)
	}

	scfgs := icftl.BuildSCFGs(scenarioFunctions())

	durationSpec, err := durationBoundSpecification()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	nextSpec, err := nextOperatorSpecification()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	timeBetweenSpec, err := timeBetweenSpecification()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	durationResult := compileAndPrint("duration bound", durationSpec, scfgs)
	_ = compileAndPrint("next operator", nextSpec, scfgs)
	_ = compileAndPrint("timeBetween across two functions", timeBetweenSpec, scfgs)

	if durationResult != nil {
		printVerdict(runMonitorDemo(durationSpec, durationResult))
	}
}

// scenarioFunctions returns the two target functions spec.md §8's
// scenarios run against: loopBranch is the combined loop/branch
// example ("for i in range(2): a = 10*(i+1); b = 20; if b>a: g()
// else: g(); h()"), and handler is a second, unrelated function whose
// sole statement calls g() — the second scope the timeBetween
// scenario needs, since its two quantifiers range over different
// functions.
func scenarioFunctions() map[string][]gast.Stmt {
	loopBranch := []gast.Stmt{
		&gast.ForStmt{
			Pos:      pos.Position{Module: loopBranchFn, Line: 1},
			Counters: []string{"i"},
			Body: []gast.Stmt{
				&gast.AssignStmt{
					Pos: pos.Position{Module: loopBranchFn, Line: 2},
					Lhs: []gast.Expr{&gast.Ident{Name: "a"}},
					Rhs: []gast.Expr{&gast.CallExpr{Func: "mul10", Args: []gast.Expr{&gast.Ident{Name: "i"}}}},
				},
				&gast.AssignStmt{
					Pos: pos.Position{Module: loopBranchFn, Line: 3},
					Lhs: []gast.Expr{&gast.Ident{Name: "b"}},
					Rhs: []gast.Expr{&gast.Ident{Name: "20"}},
				},
				&gast.IfStmt{
					Pos: pos.Position{Module: loopBranchFn, Line: 4},
					Body: []gast.Stmt{
						&gast.CallStmt{
							Pos:  pos.Position{Module: loopBranchFn, Line: 5},
							Call: &gast.CallExpr{Func: "g"},
						},
					},
					Else: []gast.Stmt{
						&gast.CallStmt{
							Pos:  pos.Position{Module: loopBranchFn, Line: 6},
							Call: &gast.CallExpr{Func: "g"},
						},
						&gast.CallStmt{
							Pos:  pos.Position{Module: loopBranchFn, Line: 7},
							Call: &gast.CallExpr{Func: "h"},
						},
					},
				},
			},
		},
	}
	handler := []gast.Stmt{
		&gast.CallStmt{
			Pos:  pos.Position{Module: handlerFn, Line: 1},
			Call: &gast.CallExpr{Func: "g"},
		},
	}
	return map[string][]gast.Stmt{loopBranchFn: loopBranch, handlerFn: handler}
}

// durationBoundSpecification is spec.md §8 scenario 2: forall c in
// calls(g).during(loopBranch), c.duration() < 1. Every call to g()
// inside loopBranch must return within a second.
func durationBoundSpecification() (*spec.Specification, error) {
	return spec.New().
		Forall("c", spec.Calls("g").During(loopBranchFn)).
		Check(func(vars spec.Vars) spec.ConstraintNode {
			c := vars.Get("c")
			return c.Duration().LessThan(spec.Number(1))
		})
}

// nextOperatorSpecification is spec.md §8 scenario 3: forall q in
// changes('a').during(loopBranch), q.next(calls('g').during(loopBranch)).
// duration() < 1 — the next call to g() reachable from each update of
// a must also return within a second.
func nextOperatorSpecification() (*spec.Specification, error) {
	return spec.New().
		Forall("q", spec.Changes("a").During(loopBranchFn)).
		Check(func(vars spec.Vars) spec.ConstraintNode {
			q := vars.Get("q")
			return q.Next(spec.Calls("g").During(loopBranchFn)).Duration().LessThan(spec.Number(1))
		})
}

// timeBetweenSpecification is spec.md §8 scenario 4: forall q in
// changes('a').during(loopBranch), forall t in
// future(calls('g').during(handler)): timeBetween(q, t.before()) <
// 4.2 — q and t are bound in two different functions, and the bound
// is on the elapsed time between q's state and the instant just
// before t's call.
func timeBetweenSpecification() (*spec.Specification, error) {
	return spec.New().
		Forall("q", spec.Changes("a").During(loopBranchFn)).
		Forall("t", spec.Future(spec.Calls("g").During(handlerFn))).
		Check(func(vars spec.Vars) spec.ConstraintNode {
			q := vars.Get("q")
			t := vars.Get("t")
			return spec.TimeBetween(q, t.Before()).LessThan(spec.Number(4.2))
		})
}

func printError(err error) {
	fmt.Println(Response{
		Plain: []string{"error: " + err.Error()},
		JSON:  map[string]interface{}{"error": err.Error()},
	})
}

// compileAndPrint runs the analyzer and planner for sp, prints the
// resulting plan under label, and returns the compile result (nil if
// compilation failed, after having already printed the error).
func compileAndPrint(label string, sp *spec.Specification, scfgs map[string]*scfg.SCFG) *icftl.Result {
	result, err := icftl.Compile(sp, scfgs)
	if err != nil {
		printError(fmt.Errorf("%s: %w", label, err))
		return nil
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning (%s): %v\n", label, w)
	}
	printPlan(label, sp, result)
	return result
}

func printPlan(label string, sp *spec.Specification, result *icftl.Result) {
	plan := protocol.FromInstruments(result.Plan)

	plain := make([]string, 0, len(plan.Sites)+2)
	plain = append(plain, fmt.Sprintf("=== %s ===", label))
	plain = append(plain, fmt.Sprintf("constraint: %v", spec.GetConstraint(sp)))
	for _, site := range plan.Sites {
		plain = append(plain, fmt.Sprintf("%s:%d  %-16s binding=%d var=%s atom=%d subatom=%d",
			site.Function, site.Line, site.Kind, site.BindingIndex, site.Variable, site.AtomIndex, site.SubatomIndex))
	}

	fmt.Println(Response{
		Plain: plain,
		JSON: map[string]interface{}{
			"scenario":   label,
			"constraint": spec.GetConstraint(sp).String(),
			"plan":       plan,
		},
	})
}

// runMonitorDemo feeds a scripted event stream into a monitor.Monitor
// built for sp and returns the final verdict snapshot. It plays back
// exactly the instruments result.Plan calls for: a trigger per
// binding, then a simulated elapsed duration per duration-bracketed
// atom, picking one value under the bound and one over it so the
// snapshot shows both a true and a false verdict.
func runMonitorDemo(sp *spec.Specification, result *icftl.Result) []monitor.BindingSnapshot {
	mon := monitor.New(sp, 16)

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- mon.Run(ctx) }()

	for _, inst := range result.Plan {
		if inst.Kind == planner.Trigger {
			mon.EmitTrigger(inst.BindingIndex, inst.Variable)
		}
	}

	simulatedElapsed := []time.Duration{400 * time.Millisecond, 1400 * time.Millisecond}
	seen := 0
	for _, inst := range result.Plan {
		if inst.Kind != planner.DurationStart {
			continue
		}
		elapsed := simulatedElapsed[seen%len(simulatedElapsed)]
		seen++
		mon.EmitMeasurement(inst.BindingIndex, inst.AtomIndex, inst.SubatomIndex, spec.NumberValue(elapsed.Seconds()))
	}

	snapshot, err := mon.Stop(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "monitor stop:", err)
	}
	cancel()
	<-runErr
	return snapshot
}

func printVerdict(snapshot []monitor.BindingSnapshot) {
	out := protocol.FromSnapshot(snapshot)

	plain := make([]string, 0, len(out.Entries)+1)
	plain = append(plain, "=== verdict snapshot (duration bound, simulated run) ===")
	for _, e := range out.Entries {
		plain = append(plain, fmt.Sprintf("binding=%d configuration=%-7s observations=%v",
			e.BindingIndex, e.Configuration, e.Observations))
	}

	fmt.Println(Response{
		Plain: plain,
		JSON:  map[string]interface{}{"verdict": out},
	})
}
