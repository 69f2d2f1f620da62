// Package units implements the unit-conversion layer applied only at model
// ingress and simulation construction; the dynamics core itself runs in one
// canonical system throughout (§6, §9).
package units

// Quantity identifies a physical quantity whose scale factor can differ
// between unit systems.
type Quantity int

const (
	Length Quantity = iota
	Mass
	MassMomentOfInertia
	Force
	Torque
	Acceleration
)

// Converter exposes scalar conversion factors between named unit systems
// for the quantities the engine cares about. Implementations are consumed
// only at model construction time (§6).
type Converter interface {
	Convert(quantity Quantity, from, to string, value float64) (float64, error)
}

// System is a named table of SI scale factors: value_in_SI = value * Scale.
type System struct {
	Name   string
	Scale  map[Quantity]float64
}

// SI is the canonical system the dynamics core always runs in: every scale
// factor is 1.
var SI = System{
	Name: "si",
	Scale: map[Quantity]float64{
		Length:              1,
		Mass:                1,
		MassMomentOfInertia: 1,
		Force:               1,
		Torque:              1,
		Acceleration:        1,
	},
}

// Imperial converts feet/slugs-based quantities into SI.
var Imperial = System{
	Name: "imperial",
	Scale: map[Quantity]float64{
		Length:              0.3048,     // feet -> meters
		Mass:                14.5939029, // slugs -> kilograms
		MassMomentOfInertia: 1.3558179619, // slug*ft^2 -> kg*m^2
		Force:               4.4482216153, // pound-force -> newtons
		Torque:              1.3558179619, // pound-foot -> newton-meters
		Acceleration:        0.3048,       // ft/s^2 -> m/s^2
	},
}

// Table is a Converter backed by a set of named Systems, each expressing
// its scale factors relative to SI.
type Table struct {
	systems map[string]System
}

// NewTable builds a Table from the given systems, always including SI.
func NewTable(systems ...System) *Table {
	t := &Table{systems: map[string]System{SI.Name: SI}}
	for _, s := range systems {
		t.systems[s.Name] = s
	}
	return t
}

// Convert converts value of the given quantity from one named system to
// another, routing through SI.
func (t *Table) Convert(quantity Quantity, from, to string, value float64) (float64, error) {
	if from == to {
		return value, nil
	}
	fromSys, ok := t.systems[from]
	if !ok {
		return 0, &UnknownSystemError{Name: from}
	}
	toSys, ok := t.systems[to]
	if !ok {
		return 0, &UnknownSystemError{Name: to}
	}
	fromScale, ok := fromSys.Scale[quantity]
	if !ok {
		return 0, &UnknownQuantityError{System: from, Quantity: quantity}
	}
	toScale, ok := toSys.Scale[quantity]
	if !ok {
		return 0, &UnknownQuantityError{System: to, Quantity: quantity}
	}
	si := value * fromScale
	return si / toScale, nil
}

// UnknownSystemError reports a request for a unit system the Table does not
// know about.
type UnknownSystemError struct{ Name string }

func (e *UnknownSystemError) Error() string { return "units: unknown system " + e.Name }

// UnknownQuantityError reports a system missing a scale factor for a
// requested quantity.
type UnknownQuantityError struct {
	System   string
	Quantity Quantity
}

func (e *UnknownQuantityError) Error() string {
	return "units: system " + e.System + " has no scale factor for this quantity"
}
