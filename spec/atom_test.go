package spec

import (
	"testing"
	"time"
)

func TestAtomicConstraintCheckValueVsConstant(t *testing.T) {
	e := Var("a", ConcreteState)
	atom := e.Value("x").LessThan(Number(10))

	if got := atom.Check(map[int]ObservedValue{}); got != VerdictPending {
		t.Fatalf("Check with no observations = %v, want pending", got)
	}
	if got := atom.Check(map[int]ObservedValue{0: NumberValue(5)}); got != VerdictTrue {
		t.Fatalf("Check(5 < 10) = %v, want true", got)
	}
	if got := atom.Check(map[int]ObservedValue{0: NumberValue(15)}); got != VerdictFalse {
		t.Fatalf("Check(15 < 10) = %v, want false", got)
	}
}

func TestAtomicConstraintMeasurementsTimeBetweenDecomposesToTwoSubatoms(t *testing.T) {
	a := Var("a", ConcreteState)
	b := Var("b", ConcreteState)
	atom := TimeBetween(a, b).LessThan(Number(5))

	ms := atom.Measurements()
	if len(ms) != 2 {
		t.Fatalf("len(Measurements()) = %d, want 2", len(ms))
	}
	if ms[0].Shape() != ShapeTimestamp || ms[1].Shape() != ShapeTimestamp {
		t.Fatalf("timeBetween subatoms have shapes %v, %v, want Timestamp, Timestamp", ms[0].Shape(), ms[1].Shape())
	}
}

func TestAtomicConstraintCheckTimeBetween(t *testing.T) {
	a := Var("a", ConcreteState)
	b := Var("b", ConcreteState)
	atom := TimeBetween(a, b).LessThan(Number(2))

	base := time.Now()
	obs := map[int]ObservedValue{
		0: TimestampValue(base),
		1: TimestampValue(base.Add(1)),
	}
	if got := atom.Check(obs); got != VerdictTrue {
		t.Fatalf("Check(1ns elapsed < 2s) = %v, want true", got)
	}
}

func TestAtomicConstraintCheckMeasurementVsMeasurement(t *testing.T) {
	a := Var("a", ConcreteState)
	b := Var("b", ConcreteState)
	atom := a.Value("x").Length().LessThanMeasurement(b.Value("y").Length())

	obs := map[int]ObservedValue{0: NumberValue(2), 1: NumberValue(3)}
	if got := atom.Check(obs); got != VerdictTrue {
		t.Fatalf("Check(2 < 3) = %v, want true", got)
	}
}

func TestAtomicConstraintSubatomSequence(t *testing.T) {
	a := Var("a", ConcreteState)
	atom := a.Next(Calls("g").During("f")).Before().Value("x").LessThan(Number(1))

	base, ops := atom.SubatomSequence(0)
	if base != "a" {
		t.Fatalf("SubatomSequence base = %q, want \"a\"", base)
	}
	if len(ops) != 2 {
		t.Fatalf("len(ops) = %d, want 2", len(ops))
	}
	if _, ok := ops[0].(NextOp); !ok {
		t.Fatalf("ops[0] = %T, want NextOp", ops[0])
	}
	if _, ok := ops[1].(BeforeOp); !ok {
		t.Fatalf("ops[1] = %T, want BeforeOp", ops[1])
	}
}
