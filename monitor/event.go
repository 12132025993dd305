package monitor

import "github.com/icftl/icftl/spec"

// Event is one of the three event kinds the monitor's single consumer
// reads from its input channel, per spec.md §4.6: a trigger, a
// measurement, or a control event.
type Event interface {
	eventNode()
}

// TriggerEvent reports that binding_index's variable has been bound
// to the symbolic state currently executing.
type TriggerEvent struct {
	BindingIndex int
	Variable     string
}

func (TriggerEvent) eventNode() {}

// MeasurementEvent delivers one observed value for atom_index's
// subatom_index within binding_index.
type MeasurementEvent struct {
	BindingIndex int
	AtomIndex    int
	SubatomIndex int
	Value        spec.ObservedValue
}

func (MeasurementEvent) eventNode() {}

// CollectEvent requests a verdict snapshot without stopping the
// consumer.
type CollectEvent struct {
	reply chan []BindingSnapshot
}

func (CollectEvent) eventNode() {}

// StopEvent requests a final verdict snapshot and consumer shutdown.
type StopEvent struct {
	reply chan []BindingSnapshot
}

func (StopEvent) eventNode() {}
