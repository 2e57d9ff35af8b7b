package mathexpr

import (
	"math"
)

// unitDef describes a unit: the quantity it measures and its scale
// relative to the base unit of that quantity.
type unitDef struct {
	name  string
	base  string
	scale float64
}

// unitTable lists the units known to the default host, keyed by name.
// Aliases share a definition.
var unitTable = map[string]*unitDef{}

func defineUnit(base string, scale float64, names ...string) {
	d := &unitDef{name: names[0], base: base, scale: scale}
	for _, n := range names {
		unitTable[n] = d
	}
}

func init() {
	defineUnit("m", 1, "m", "meter")
	defineUnit("m", 0.01, "cm")
	defineUnit("m", 0.001, "mm")
	defineUnit("m", 1000, "km")
	defineUnit("m", 0.0254, "inch", "in")
	defineUnit("m", 0.3048, "ft", "foot")
	defineUnit("m", 1609.344, "mi", "mile")
	defineUnit("g", 1, "g", "gram")
	defineUnit("g", 1000, "kg")
	defineUnit("g", 453.59237, "lb", "lbs")
	defineUnit("s", 1, "s", "second")
	defineUnit("s", 0.001, "ms")
	defineUnit("s", 60, "minute")
	defineUnit("s", 3600, "h", "hour")
	defineUnit("rad", 1, "rad")
	defineUnit("rad", math.Pi/180, "deg")
}

// Unit is a number with a unit attached, such as 5.08 cm.
type Unit struct {
	// Value is the magnitude in the named unit.
	Value float64
	// Name is the unit name as written.
	Name string
	def  *unitDef
}

// LookupUnit returns the unit with magnitude v and the named unit, or
// false if the name is not a known unit.
func LookupUnit(v float64, name string) (*Unit, bool) {
	d, ok := unitTable[name]
	if !ok {
		return nil, false
	}
	return &Unit{Value: v, Name: name, def: d}, true
}

func (u *Unit) String() string {
	return formatNumber(u.Value) + " " + u.Name
}

// base returns the magnitude in the base unit of the quantity.
func (u *Unit) base() float64 {
	return u.Value * u.def.scale
}

// to converts the unit to the target unit. The units must measure the
// same quantity.
func (u *Unit) to(target *Unit) (*Unit, error) {
	if u.def.base != target.def.base {
		return nil, &DimensionError{A: u.Name, B: target.Name}
	}
	return &Unit{Value: u.base() / target.def.scale, Name: target.Name, def: target.def}, nil
}

// addUnits adds two units, keeping the left operand's unit.
func addUnits(a, b *Unit) (*Unit, error) {
	if a.def.base != b.def.base {
		return nil, &DimensionError{A: a.Name, B: b.Name}
	}
	return &Unit{Value: a.Value + b.base()/a.def.scale, Name: a.Name, def: a.def}, nil
}

func subUnits(a, b *Unit) (*Unit, error) {
	if a.def.base != b.def.base {
		return nil, &DimensionError{A: a.Name, B: b.Name}
	}
	return &Unit{Value: a.Value - b.base()/a.def.scale, Name: a.Name, def: a.def}, nil
}

// scaleUnit multiplies the unit's magnitude by a plain number.
func scaleUnit(u *Unit, f float64) *Unit {
	return &Unit{Value: u.Value * f, Name: u.Name, def: u.def}
}
