// Package monitor implements the runtime monitor of spec.md §4.6: a
// single-consumer event loop that maintains bindings, instantiates
// and updates formula configurations, and answers verdict-snapshot
// requests. A fixed set of event kinds is type-switched inside one
// loop, fed by any number of producer goroutines emitting triggers
// and measurements as instrumented code runs.
package monitor

import (
	"context"
	"sort"
	"time"

	"github.com/icftl/icftl/spec"
)

// BindingSnapshot is one binding_index's state at the moment a
// verdict snapshot was taken (spec.md §6 "Verdict snapshot").
type BindingSnapshot struct {
	BindingIndex int
	Timestamps   []time.Time
	Verdict      spec.Verdict
	Observations map[[2]int]spec.ObservedValue
}

// Monitor is the runtime monitor for one specification. The zero
// value is not usable; construct one with New.
type Monitor struct {
	sp         *spec.Specification
	variables  []string
	constraint *spec.Constraint
	atoms      []*spec.AtomicConstraint

	basePosition map[obsKey]int

	events chan Event
	done   chan struct{}

	bindings map[int][]*BindingState
}

// New builds a Monitor for sp. eventBuffer sizes the input event
// channel; producers block on a full channel rather than drop
// events, the way spec.md §5 describes suspension (a producer only
// ever blocks on enqueueing, never on verification logic).
func New(sp *spec.Specification, eventBuffer int) *Monitor {
	constraint := spec.GetConstraint(sp)
	atoms := constraint.AtomicConstraints()
	variables := spec.GetVariables(sp)

	basePosition := make(map[obsKey]int)
	for ai, atom := range atoms {
		for si := range atom.Measurements() {
			base, _ := atom.SubatomSequence(si)
			basePosition[obsKey{atom: ai, subatom: si}] = indexOf(variables, base)
		}
	}

	return &Monitor{
		sp:           sp,
		variables:    variables,
		constraint:   constraint,
		atoms:        atoms,
		basePosition: basePosition,
		events:       make(chan Event, eventBuffer),
		done:         make(chan struct{}),
		bindings:     make(map[int][]*BindingState),
	}
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

// Run is the monitor's single consumer; it drains m's event channel
// until a StopEvent is processed or ctx is cancelled. Callers
// typically run this in its own goroutine (the host package
// supervises it with an errgroup.Group).
func (m *Monitor) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-m.events:
			switch e := ev.(type) {
			case TriggerEvent:
				m.handleTrigger(e.BindingIndex, e.Variable)
			case MeasurementEvent:
				m.handleMeasurement(e.BindingIndex, e.AtomIndex, e.SubatomIndex, e.Value)
			case CollectEvent:
				e.reply <- m.snapshot()
			case StopEvent:
				e.reply <- m.snapshot()
				close(m.done)
				return nil
			}
		}
	}
}

func (m *Monitor) handleTrigger(bindingIndex int, variable string) {
	k := indexOf(m.variables, variable)
	if k < 0 {
		return
	}
	now := time.Now()

	if k == 0 {
		bs := newBindingState(spec.Instantiate(m.constraint.Root()), now)
		m.bindings[bindingIndex] = append(m.bindings[bindingIndex], bs)
		return
	}

	existing := m.bindings[bindingIndex]
	var extended []*BindingState
	for _, bs := range existing {
		if len(bs.Timestamps) != k {
			continue
		}
		ext := bs.extend(now, func(atom, subatom int) bool {
			return m.basePosition[obsKey{atom: atom, subatom: subatom}] < k
		})
		extended = append(extended, ext)
	}
	m.bindings[bindingIndex] = append(existing, extended...)
}

func (m *Monitor) handleMeasurement(bindingIndex, atomIndex, subatomIndex int, v spec.ObservedValue) {
	for _, bs := range m.bindings[bindingIndex] {
		bs.recordMeasurement(m.atoms, atomIndex, subatomIndex, v)
	}
}

func (m *Monitor) snapshot() []BindingSnapshot {
	indices := make([]int, 0, len(m.bindings))
	for i := range m.bindings {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	var out []BindingSnapshot
	for _, i := range indices {
		for _, bs := range m.bindings[i] {
			out = append(out, BindingSnapshot{
				BindingIndex: i,
				Timestamps:   append([]time.Time{}, bs.Timestamps...),
				Verdict:      bs.Configuration.Value(),
				Observations: bs.Observations(),
			})
		}
	}
	return out
}

// EmitTrigger enqueues a trigger event. It silently drops the event
// if the monitor has already stopped, per spec.md §5's cancellation
// policy.
func (m *Monitor) EmitTrigger(bindingIndex int, variable string) {
	select {
	case <-m.done:
	case m.events <- TriggerEvent{BindingIndex: bindingIndex, Variable: variable}:
	}
}

// EmitMeasurement enqueues a measurement event. It silently drops the
// event if the monitor has already stopped.
func (m *Monitor) EmitMeasurement(bindingIndex, atomIndex, subatomIndex int, value spec.ObservedValue) {
	select {
	case <-m.done:
	case m.events <- MeasurementEvent{BindingIndex: bindingIndex, AtomIndex: atomIndex, SubatomIndex: subatomIndex, Value: value}:
	}
}

// RequestIntermediateVerdicts blocks until the consumer has drained
// its queue up to this point, then returns a snapshot without
// stopping the monitor.
func (m *Monitor) RequestIntermediateVerdicts(ctx context.Context) ([]BindingSnapshot, error) {
	reply := make(chan []BindingSnapshot, 1)
	select {
	case <-m.done:
		return m.snapshot(), nil
	case m.events <- CollectEvent{reply: reply}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case s := <-reply:
		return s, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Stop blocks until the consumer has drained its queue, then returns
// a final snapshot and terminates Run.
func (m *Monitor) Stop(ctx context.Context) ([]BindingSnapshot, error) {
	reply := make(chan []BindingSnapshot, 1)
	select {
	case <-m.done:
		return m.snapshot(), nil
	case m.events <- StopEvent{reply: reply}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case s := <-reply:
		return s, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
