package spec

import (
	"fmt"
	"math"
	"time"
)

// CompareOp is the comparison an atomic constraint evaluates.
type CompareOp int

const (
	OpLessThan CompareOp = iota
	OpGreaterThan
	OpEquals
)

func (op CompareOp) String() string {
	switch op {
	case OpLessThan:
		return "<"
	case OpGreaterThan:
		return ">"
	default:
		return "=="
	}
}

// Form classifies an AtomicConstraint by how many measurements it
// observes and what the second operand is, per spec.md §3's
// Normal/Mixed distinction.
type Form int

const (
	// FormValueVsConstant is a Normal atom: one measurement compared
	// against a literal constant.
	FormValueVsConstant Form = iota
	// FormTimeBetween is a Mixed atom built from timeBetween(a, b):
	// a single Measurement value spanning two concrete states, which
	// Measurements decomposes into two timestamp subatoms.
	FormTimeBetween
	// FormMeasurementVsMeasurement is a Mixed atom comparing two
	// independent measurements directly, with no constant operand.
	FormMeasurementVsMeasurement
)

// AtomicConstraint is a single comparison between measurement(s) and
// either a constant or another measurement (spec.md §3 "Atomic
// constraints"). It is the leaf of a Constraint's formula tree.
type AtomicConstraint struct {
	form     Form
	op       CompareOp
	lhs      *Measurement
	rhs      *Measurement // FormMeasurementVsMeasurement only
	constant Constant     // FormValueVsConstant, FormTimeBetween only
}

func newValueVsConstant(m *Measurement, op CompareOp, c Constant) *AtomicConstraint {
	form := FormValueVsConstant
	if m.kind == measureTimeBetween {
		form = FormTimeBetween
	}
	return &AtomicConstraint{form: form, op: op, lhs: m, constant: c}
}

func newMeasurementVsMeasurement(lhs *Measurement, op CompareOp, rhs *Measurement) *AtomicConstraint {
	return &AtomicConstraint{form: FormMeasurementVsMeasurement, op: op, lhs: lhs, rhs: rhs}
}

// Form reports which shape this atom has.
func (a *AtomicConstraint) Form() Form { return a.form }

// validateTimeBetweenOperands reports a MalformedSpecificationError if
// a is a timeBetween atom whose two operands are not both
// concrete-state expressions (spec.md §7 "timeBetween arguments not
// both state expressions"). Every other form is always valid here.
func (a *AtomicConstraint) validateTimeBetweenOperands() error {
	if a.form != FormTimeBetween {
		return nil
	}
	if a.lhs.state.Kind() != ConcreteState || a.lhs.other.Kind() != ConcreteState {
		return &MalformedSpecificationError{
			Node:   a.String(),
			Reason: "timeBetween arguments must both be concrete-state expressions",
		}
	}
	return nil
}

// Measurements returns the one or two measurements this atom
// observes, in subatom index order. A timeBetween atom is Mixed with
// two subatoms even though it was built from a single Measurement
// value: each subatom is the timestamp of one of the two concrete
// states timeBetween spans.
func (a *AtomicConstraint) Measurements() []*Measurement {
	if a.rhs != nil {
		return []*Measurement{a.lhs, a.rhs}
	}
	if a.lhs.kind == measureTimeBetween {
		return []*Measurement{
			{kind: measureTimestamp, state: a.lhs.state},
			{kind: measureTimestamp, state: a.lhs.other},
		}
	}
	return []*Measurement{a.lhs}
}

// SubatomSequence returns the base quantified variable and the
// ordered temporal operators (nearest-base-first) that locate the
// symbolic state or transition subatom i's measurement is taken
// against. i indexes into Measurements().
func (a *AtomicConstraint) SubatomSequence(i int) (baseVar string, ops []TemporalOp) {
	ms := a.Measurements()
	m := ms[i]
	switch m.kind {
	case measureValue, measureTimestamp:
		return baseVariableAndOps(m.state)
	case measureDuration:
		return baseVariableAndOps(m.transition)
	default:
		panic("spec: measurement with unrecognized kind")
	}
}

func (a *AtomicConstraint) String() string {
	switch a.form {
	case FormMeasurementVsMeasurement:
		return fmt.Sprintf("%v %s %v", a.lhs, a.op, a.rhs)
	default:
		return fmt.Sprintf("%v %s %v", a.lhs, a.op, a.constant)
	}
}

// Verdict is the three-valued outcome of evaluating an atomic
// constraint (spec.md §4.5/§4.6): it is pending until every subatom
// it needs has been observed.
type Verdict int

const (
	VerdictPending Verdict = iota
	VerdictTrue
	VerdictFalse
)

func (v Verdict) String() string {
	switch v {
	case VerdictTrue:
		return "true"
	case VerdictFalse:
		return "false"
	default:
		return "pending"
	}
}

// ObservedValue is a single runtime observation fed into an
// AtomicConstraint's Check: a variable's value (number, bool or
// string), an already-computed duration in seconds (a number), or a
// timestamp a timeBetween measurement is computed from. Timestamps
// are carried as time.Time rather than a raw duration so Check can
// use time.Time.Sub, whose monotonic-clock reading gives timeBetween
// a monotonic difference.
type ObservedValue struct {
	kind constantKind
	num  float64
	b    bool
	str  string
	ts   time.Time
	isTs bool
}

func NumberValue(v float64) ObservedValue { return ObservedValue{kind: constantNumber, num: v} }
func BoolValue(v bool) ObservedValue      { return ObservedValue{kind: constantBool, b: v} }
func StringValue(v string) ObservedValue  { return ObservedValue{kind: constantString, str: v} }
func TimestampValue(t time.Time) ObservedValue {
	return ObservedValue{kind: constantNumber, ts: t, isTs: true}
}

func (v ObservedValue) String() string {
	if v.isTs {
		return v.ts.Format(time.RFC3339Nano)
	}
	switch v.kind {
	case constantNumber:
		return fmt.Sprintf("%g", v.num)
	case constantBool:
		return fmt.Sprintf("%t", v.b)
	default:
		return v.str
	}
}

// Check evaluates a against the supplied observations, keyed by
// subatom index (0 for a Normal atom's single measurement, 0 and 1
// for a Mixed atom's two). It returns VerdictPending if an
// observation this atom needs is absent.
func (a *AtomicConstraint) Check(obs map[int]ObservedValue) Verdict {
	switch a.form {
	case FormValueVsConstant:
		v, ok := obs[0]
		if !ok {
			return VerdictPending
		}
		return compareToConstant(v, a.op, a.constant)
	case FormTimeBetween:
		before, ok1 := obs[0]
		after, ok2 := obs[1]
		if !ok1 || !ok2 {
			return VerdictPending
		}
		elapsed := after.ts.Sub(before.ts)
		return compareToConstant(NumberValue(math.Abs(elapsed.Seconds())), a.op, a.constant)
	case FormMeasurementVsMeasurement:
		lhs, ok1 := obs[0]
		rhs, ok2 := obs[1]
		if !ok1 || !ok2 {
			return VerdictPending
		}
		return compareValues(lhs, a.op, rhs)
	default:
		return VerdictPending
	}
}

func compareToConstant(v ObservedValue, op CompareOp, c Constant) Verdict {
	switch c.kind {
	case constantNumber:
		return compareNumbers(v.num, op, c.num)
	case constantBool:
		if op != OpEquals {
			return VerdictFalse
		}
		return boolVerdict(v.b == c.b)
	default:
		if op != OpEquals {
			return VerdictFalse
		}
		return boolVerdict(v.str == c.str)
	}
}

func compareValues(lhs ObservedValue, op CompareOp, rhs ObservedValue) Verdict {
	if lhs.isTs && rhs.isTs {
		return compareNumbers(lhs.ts.Sub(rhs.ts).Seconds(), op, 0)
	}
	switch lhs.kind {
	case constantNumber:
		return compareNumbers(lhs.num, op, rhs.num)
	case constantBool:
		if op != OpEquals {
			return VerdictFalse
		}
		return boolVerdict(lhs.b == rhs.b)
	default:
		if op != OpEquals {
			return VerdictFalse
		}
		return boolVerdict(lhs.str == rhs.str)
	}
}

func compareNumbers(a float64, op CompareOp, b float64) Verdict {
	switch op {
	case OpLessThan:
		return boolVerdict(a < b)
	case OpGreaterThan:
		return boolVerdict(a > b)
	default:
		return boolVerdict(a == b)
	}
}

func boolVerdict(b bool) Verdict {
	if b {
		return VerdictTrue
	}
	return VerdictFalse
}
