package spec

import "fmt"

type measureKind int

const (
	measureValue measureKind = iota
	measureDuration
	measureTimeBetween
	// measureTimestamp is an internal subatom kind: the timestamp of a
	// single concrete state, used as one of timeBetween's two
	// decomposed subatoms (see AtomicConstraint.Measurements). It is
	// never constructed directly by specification authors.
	measureTimestamp
)

// Measurement is a concrete quantity extracted from one or two
// expressions: X(v) (a program variable's value in a concrete
// state), T.duration() (a transition's elapsed time), or
// timeBetween(a, b) (elapsed time between two concrete states),
// per spec.md §3.
type Measurement struct {
	kind       measureKind
	state      *Expression // measureValue, measureTimeBetween (first state)
	variable   string      // measureValue
	transition *Expression // measureDuration
	other      *Expression // measureTimeBetween (second state)
	length     bool        // measureValue: report len(value) instead of value
}

// MeasurementShape classifies what a Measurement's subatom ultimately
// resolves to at an instrumentation site, for the planner's benefit
// (spec.md §4.5): a value, a value's length, a transition's duration,
// or a concrete state's raw timestamp (the decomposed form of a
// timeBetween operand).
type MeasurementShape int

const (
	ShapeValue MeasurementShape = iota
	ShapeLength
	ShapeDuration
	ShapeTimestamp
)

// Shape reports m's MeasurementShape.
func (m *Measurement) Shape() MeasurementShape {
	switch m.kind {
	case measureDuration:
		return ShapeDuration
	case measureTimestamp:
		return ShapeTimestamp
	default:
		if m.length {
			return ShapeLength
		}
		return ShapeValue
	}
}

// Length returns X(v).length(): the length of the value m measures,
// rather than the value itself. Valid only on a value measurement
// (X.Value(v)); it is the accessor spec.md §3/§4.3 says is unwrapped
// without being recorded in a temporal-operator composition sequence.
func (m *Measurement) Length() *Measurement {
	cp := *m
	cp.length = true
	return &cp
}

func (m *Measurement) String() string {
	switch m.kind {
	case measureValue:
		if m.length {
			return fmt.Sprintf("%v(%s).length()", m.state, m.variable)
		}
		return fmt.Sprintf("%v(%s)", m.state, m.variable)
	case measureDuration:
		return fmt.Sprintf("%v.duration()", m.transition)
	case measureTimeBetween:
		return fmt.Sprintf("timeBetween(%v, %v)", m.state, m.other)
	case measureTimestamp:
		return fmt.Sprintf("timestamp(%v)", m.state)
	default:
		return "<measurement>"
	}
}

// LessThan builds an atomic constraint comparing m against a
// constant.
func (m *Measurement) LessThan(c Constant) *AtomicConstraint {
	return newValueVsConstant(m, OpLessThan, c)
}

// GreaterThan builds an atomic constraint comparing m against a
// constant.
func (m *Measurement) GreaterThan(c Constant) *AtomicConstraint {
	return newValueVsConstant(m, OpGreaterThan, c)
}

// Equals builds an atomic constraint comparing m against a constant.
func (m *Measurement) Equals(c Constant) *AtomicConstraint {
	return newValueVsConstant(m, OpEquals, c)
}

// LessThanMeasurement builds a Mixed atomic constraint comparing m
// against another measurement directly (e.g. a length against a
// duration), with no constant involved.
func (m *Measurement) LessThanMeasurement(other *Measurement) *AtomicConstraint {
	return newMeasurementVsMeasurement(m, OpLessThan, other)
}

// GreaterThanMeasurement builds a Mixed atomic constraint comparing m
// against another measurement directly.
func (m *Measurement) GreaterThanMeasurement(other *Measurement) *AtomicConstraint {
	return newMeasurementVsMeasurement(m, OpGreaterThan, other)
}

// Constant is a literal value an observed measurement is compared
// against: a number, a boolean, or a string.
type Constant struct {
	kind constantKind
	num  float64
	b    bool
	str  string
}

type constantKind int

const (
	constantNumber constantKind = iota
	constantBool
	constantString
)

func Number(v float64) Constant { return Constant{kind: constantNumber, num: v} }
func Bool(v bool) Constant      { return Constant{kind: constantBool, b: v} }
func String(v string) Constant  { return Constant{kind: constantString, str: v} }

func (c Constant) String() string {
	switch c.kind {
	case constantNumber:
		return fmt.Sprintf("%g", c.num)
	case constantBool:
		return fmt.Sprintf("%t", c.b)
	default:
		return fmt.Sprintf("%q", c.str)
	}
}
