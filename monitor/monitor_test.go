package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/icftl/icftl/spec"
	"go.uber.org/goleak"
)

func buildTestSpec(t *testing.T) *spec.Specification {
	t.Helper()
	sp, err := spec.New().
		Forall("a", spec.Changes("v").During("f")).
		Check(func(vars spec.Vars) spec.ConstraintNode {
			return vars.Get("a").Value("v").LessThan(spec.Number(10))
		})
	if err != nil {
		t.Fatalf("building test specification: %v", err)
	}
	return sp
}

func runMonitor(t *testing.T, sp *spec.Specification) (*Monitor, func()) {
	t.Helper()
	m := New(sp, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()
	return m, func() {
		cancel()
		<-done
	}
}

func TestMonitorTriggerThenMeasurementResolvesVerdict(t *testing.T) {
	defer goleak.VerifyNone(t)

	sp := buildTestSpec(t)
	m, stop := runMonitor(t, sp)
	defer stop()

	m.EmitTrigger(0, "a")
	m.EmitMeasurement(0, 0, 0, spec.NumberValue(5))

	snapshot, err := m.RequestIntermediateVerdicts(context.Background())
	if err != nil {
		t.Fatalf("RequestIntermediateVerdicts() = %v", err)
	}
	if len(snapshot) != 1 {
		t.Fatalf("len(snapshot) = %d, want 1", len(snapshot))
	}
	if snapshot[0].Verdict != spec.VerdictTrue {
		t.Fatalf("Verdict = %v, want true (5 < 10)", snapshot[0].Verdict)
	}
}

func TestMonitorMeasurementBeforeTriggerIsIgnored(t *testing.T) {
	defer goleak.VerifyNone(t)

	sp := buildTestSpec(t)
	m, stop := runMonitor(t, sp)
	defer stop()

	m.EmitMeasurement(0, 0, 0, spec.NumberValue(5))
	snapshot, err := m.RequestIntermediateVerdicts(context.Background())
	if err != nil {
		t.Fatalf("RequestIntermediateVerdicts() = %v", err)
	}
	if len(snapshot) != 0 {
		t.Fatalf("len(snapshot) = %d, want 0 (no binding exists yet)", len(snapshot))
	}
}

func TestMonitorStopReturnsFinalSnapshotAndTerminatesRun(t *testing.T) {
	defer goleak.VerifyNone(t)

	sp := buildTestSpec(t)
	m := New(sp, 8)
	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- m.Run(ctx) }()

	m.EmitTrigger(0, "a")
	snapshot, err := m.Stop(context.Background())
	if err != nil {
		t.Fatalf("Stop() = %v", err)
	}
	if len(snapshot) != 1 {
		t.Fatalf("len(snapshot) = %d, want 1", len(snapshot))
	}

	select {
	case <-runErr:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
	cancel()
}

func TestMonitorIdempotentMeasurement(t *testing.T) {
	defer goleak.VerifyNone(t)

	sp := buildTestSpec(t)
	m, stop := runMonitor(t, sp)
	defer stop()

	m.EmitTrigger(0, "a")
	m.EmitMeasurement(0, 0, 0, spec.NumberValue(50)) // would make the atom false
	m.EmitMeasurement(0, 0, 0, spec.NumberValue(5))  // discarded: already recorded

	snapshot, err := m.RequestIntermediateVerdicts(context.Background())
	if err != nil {
		t.Fatalf("RequestIntermediateVerdicts() = %v", err)
	}
	if snapshot[0].Verdict != spec.VerdictFalse {
		t.Fatalf("Verdict = %v, want false (first observation wins)", snapshot[0].Verdict)
	}
}
