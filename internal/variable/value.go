package variable

import "fmt"

// Kind is the resolved primitive type of a variable.
type Kind string

const (
	KindColor   Kind = "COLOR"
	KindFloat   Kind = "FLOAT"
	KindBoolean Kind = "BOOLEAN"
	KindString  Kind = "STRING"
)

// Valid reports whether k is one of the four resolved kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindColor, KindFloat, KindBoolean, KindString:
		return true
	}
	return false
}

// HasScopes reports whether variables of this kind carry an applicable-scope
// list. Strings and booleans do not.
func (k Kind) HasScopes() bool {
	return k == KindColor || k == KindFloat
}

// Value is a sealed interface for a single mode value.
// Only Color, Float, Bool, String and Alias implement it.
type Value interface {
	variableValue()
}

// Color is an RGBA color with channels normalised to 0..1.
// A is 1 for opaque colors.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

func (Color) variableValue() {}

// Hex formats the color as #rrggbb, or #rrggbbaa when it is translucent.
func (c Color) Hex() string {
	if c.A < 1 {
		return fmt.Sprintf("#%02x%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B), channel(c.A))
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(f float64) int {
	n := int(f*0xff + 0.5)
	return max(0, min(0xff, n))
}

// Float is a numeric value.
type Float float64

func (Float) variableValue() {}

// Bool is a boolean value.
type Bool bool

func (Bool) variableValue() {}

// String is a string value.
type String string

func (String) variableValue() {}

// Alias binds a mode value to another variable, by that variable's ID.
type Alias struct {
	ID string `json:"id"`
}

func (Alias) variableValue() {}

// KindOf returns the resolved kind a scalar value satisfies.
// Aliases have no kind of their own and report false.
func KindOf(v Value) (Kind, bool) {
	switch v.(type) {
	case Color:
		return KindColor, true
	case Float:
		return KindFloat, true
	case Bool:
		return KindBoolean, true
	case String:
		return KindString, true
	default:
		return "", false
	}
}

// Format renders a value for human-readable output.
func Format(v Value) string {
	switch val := v.(type) {
	case Color:
		return val.Hex()
	case Float:
		return fmt.Sprintf("%g", float64(val))
	case Bool:
		return fmt.Sprintf("%t", bool(val))
	case String:
		return fmt.Sprintf("%q", string(val))
	case Alias:
		return "→ " + val.ID
	case nil:
		return "(unset)"
	default:
		return fmt.Sprintf("%v", v)
	}
}
