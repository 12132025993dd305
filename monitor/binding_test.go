package monitor

import (
	"testing"
	"time"

	"github.com/icftl/icftl/spec"
)

func TestBindingStateExtendDeepCopiesConfiguration(t *testing.T) {
	a := spec.Var("a", spec.ConcreteState)
	atom := a.Value("x").LessThan(spec.Number(10))
	root := spec.Instantiate(atom)

	bs := newBindingState(root, time.Now())
	bs.recordMeasurement([]*spec.AtomicConstraint{atom}, 0, 0, spec.NumberValue(1))

	ext := bs.extend(time.Now(), func(atomIdx, subatomIdx int) bool { return false })

	if ext.atomConfigs[0].Value() == spec.VerdictPending {
		t.Fatal("extend should preserve the source binding's already-resolved verdict")
	}
	ext.atomConfigs[0].SetVerdict(spec.VerdictPending)
	if bs.atomConfigs[0].Value() == spec.VerdictPending {
		t.Fatal("extend must deep-copy the configuration: mutating the extension leaked into the source")
	}
}

func TestBindingStateExtendCopiesOnlyRelevantMeasurements(t *testing.T) {
	a := spec.Var("a", spec.ConcreteState)
	atom := a.Value("x").LessThan(spec.Number(10))
	root := spec.Instantiate(atom)

	bs := newBindingState(root, time.Now())
	bs.recordMeasurement([]*spec.AtomicConstraint{atom}, 0, 0, spec.NumberValue(1))

	relevant := bs.extend(time.Now(), func(atomIdx, subatomIdx int) bool { return true })
	if len(relevant.Observations()) != 1 {
		t.Fatalf("len(Observations()) = %d, want 1 when isRelevant always true", len(relevant.Observations()))
	}

	irrelevant := bs.extend(time.Now(), func(atomIdx, subatomIdx int) bool { return false })
	if len(irrelevant.Observations()) != 0 {
		t.Fatalf("len(Observations()) = %d, want 0 when isRelevant always false", len(irrelevant.Observations()))
	}
}

func TestBindingStateRecordMeasurementIsIdempotent(t *testing.T) {
	a := spec.Var("a", spec.ConcreteState)
	atom := a.Value("x").LessThan(spec.Number(10))
	root := spec.Instantiate(atom)
	atoms := []*spec.AtomicConstraint{atom}

	bs := newBindingState(root, time.Now())
	bs.recordMeasurement(atoms, 0, 0, spec.NumberValue(1))
	bs.recordMeasurement(atoms, 0, 0, spec.NumberValue(100))

	if bs.atomConfigs[0].Value() != spec.VerdictTrue {
		t.Fatalf("Value() = %v, want true (1 < 10, second write discarded)", bs.atomConfigs[0].Value())
	}
}
