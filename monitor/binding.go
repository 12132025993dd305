package monitor

import (
	"time"

	"github.com/icftl/icftl/spec"
)

// obsKey addresses one subatom's observed value within a
// BindingState's measurement dictionary.
type obsKey struct {
	atom    int
	subatom int
}

// BindingState is one binding_index's runtime instance (spec.md §3
// "Bindings", §4.6): the timestamp captured at each quantifier level
// reached so far, the instantiated formula configuration, and the
// measurements observed for it.
type BindingState struct {
	Timestamps    []time.Time
	Configuration spec.Configuration

	measurements map[obsKey]spec.ObservedValue
	atomConfigs  []*spec.AtomConfig // cache of Atoms(Configuration), indexed by atom_index
}

func newBindingState(configuration spec.Configuration, now time.Time) *BindingState {
	return &BindingState{
		Timestamps:    []time.Time{now},
		Configuration: configuration,
		measurements:  make(map[obsKey]spec.ObservedValue),
		atomConfigs:   spec.Atoms(configuration),
	}
}

// extend produces a new BindingState one quantifier level deeper than
// bs: it appends now to the timestamp tuple, deep-copies the formula
// configuration (so resolving one extension's atoms cannot leak into
// a sibling extension's), and copies only the subset of bs's
// measurements relevant to variables bound at a position below k
// (isRelevant reports that per (atom, subatom)).
func (bs *BindingState) extend(now time.Time, isRelevant func(atom, subatom int) bool) *BindingState {
	timestamps := make([]time.Time, len(bs.Timestamps)+1)
	copy(timestamps, bs.Timestamps)
	timestamps[len(bs.Timestamps)] = now

	configuration := spec.CloneConfiguration(bs.Configuration)
	measurements := make(map[obsKey]spec.ObservedValue)
	for k, v := range bs.measurements {
		if isRelevant(k.atom, k.subatom) {
			measurements[k] = v
		}
	}

	return &BindingState{
		Timestamps:    timestamps,
		Configuration: configuration,
		measurements:  measurements,
		atomConfigs:   spec.Atoms(configuration),
	}
}

// recordMeasurement applies an observed value to atom/subatom,
// idempotently (a subatom already recorded discards the new value),
// and re-checks that atom if enough subatoms are now present.
func (bs *BindingState) recordMeasurement(atoms []*spec.AtomicConstraint, atomIndex, subatomIndex int, v spec.ObservedValue) {
	key := obsKey{atom: atomIndex, subatom: subatomIndex}
	if _, ok := bs.measurements[key]; ok {
		return
	}
	bs.measurements[key] = v

	atom := atoms[atomIndex]
	obs := make(map[int]spec.ObservedValue, len(atom.Measurements()))
	for si := range atom.Measurements() {
		if val, ok := bs.measurements[obsKey{atom: atomIndex, subatom: si}]; ok {
			obs[si] = val
		}
	}
	if verdict := atom.Check(obs); verdict != spec.VerdictPending {
		bs.atomConfigs[atomIndex].SetVerdict(verdict)
	}
}

// Observations returns a shallow copy of bs's measurement dictionary,
// for building verdict snapshots.
func (bs *BindingState) Observations() map[[2]int]spec.ObservedValue {
	out := make(map[[2]int]spec.ObservedValue, len(bs.measurements))
	for k, v := range bs.measurements {
		out[[2]int{k.atom, k.subatom}] = v
	}
	return out
}
