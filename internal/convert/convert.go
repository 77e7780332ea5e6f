// Package convert turns DTCG token values into variable store values.
//
// Every converter is a pure, total function: bad user input yields an
// "invalid" signal, never a panic. A Table maps token types onto resolved
// variable kinds; a type missing from the table is unsupported, which
// callers treat as an expected, non-fatal condition.
package convert

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/microsoft/figma-variables-import/internal/variable"
)

// Token types with a conversion.
const (
	TypeColor         = "color"
	TypeDimension     = "dimension"
	TypeDuration      = "duration"
	TypeNumber        = "number"
	TypeFontSize      = "fontSize"
	TypeBorderRadius  = "borderRadius"
	TypeLineHeight    = "lineHeight"
	TypeLetterSpacing = "letterSpacing"
	TypeBoolean       = "boolean"
	TypeString        = "string"
	TypeFontFamily    = "fontFamily"
	TypeFontWeight    = "fontWeight"
)

var (
	// ErrUnsupportedType means the token type has no entry in the table.
	ErrUnsupportedType = errors.New("unsupported token type")

	// ErrInvalidValue means the type is supported but the literal could not
	// be converted.
	ErrInvalidValue = errors.New("invalid token value")

	// ErrNoConversion means the table accepted a type that no converter
	// handles, or the converter produced a value of another kind. The table
	// and the converters are out of sync; this is a programming error.
	ErrNoConversion = errors.New("conversion table out of sync")
)

// InvalidValueError reports a literal that could not be converted.
type InvalidValueError struct {
	Type  string
	Value any
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Type, Literal(e.Value))
}

// Is makes errors.Is(err, ErrInvalidValue) match.
func (e *InvalidValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

// Table maps token types to resolved variable kinds.
type Table struct {
	kinds map[string]variable.Kind
}

// NewTable creates a table from a type → kind mapping. The map is copied.
func NewTable(kinds map[string]variable.Kind) Table {
	return Table{kinds: maps.Clone(kinds)}
}

// Standard returns the table of every type this package converts.
func Standard() Table {
	return NewTable(map[string]variable.Kind{
		TypeColor:         variable.KindColor,
		TypeDimension:     variable.KindFloat,
		TypeDuration:      variable.KindFloat,
		TypeNumber:        variable.KindFloat,
		TypeFontSize:      variable.KindFloat,
		TypeBorderRadius:  variable.KindFloat,
		TypeLineHeight:    variable.KindFloat,
		TypeLetterSpacing: variable.KindFloat,
		TypeBoolean:       variable.KindBoolean,
		TypeString:        variable.KindString,
		TypeFontFamily:    variable.KindString,
		TypeFontWeight:    variable.KindString,
	})
}

// KindOf returns the resolved kind for a token type.
func (t Table) KindOf(typ string) (variable.Kind, bool) {
	k, ok := t.kinds[typ]
	return k, ok
}

// Convert converts a token value of the given type.
//
// Errors:
//   - ErrUnsupportedType if typ is not in the table
//   - *InvalidValueError (matches ErrInvalidValue) if v cannot be converted
//   - ErrNoConversion if the table and the converters disagree
func (t Table) Convert(typ string, v any) (variable.Value, error) {
	kind, ok := t.KindOf(typ)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, typ)
	}

	var (
		out   variable.Value
		valid bool
	)
	switch typ {
	case TypeColor:
		out, valid = Color(v)
	case TypeDimension, TypeDuration, TypeNumber, TypeBorderRadius, TypeLetterSpacing:
		out, valid = Number(v)
	case TypeFontSize:
		out, valid = FontSize(v)
	case TypeLineHeight:
		out, valid = LineHeight(v)
	case TypeBoolean:
		out, valid = Boolean(v)
	case TypeString:
		out, valid = String(v), true
	case TypeFontFamily:
		out, valid = FontFamily(v), true
	case TypeFontWeight:
		out, valid = FontWeight(v), true
	default:
		return nil, fmt.Errorf("%w: %s tokens resolve to %s but have no converter", ErrNoConversion, typ, kind)
	}

	if !valid {
		return nil, &InvalidValueError{Type: typ, Value: v}
	}
	if got, _ := variable.KindOf(out); got != kind {
		return nil, fmt.Errorf("%w: %s tokens resolve to %s but convert to %s", ErrNoConversion, typ, kind, got)
	}
	return out, nil
}

// Literal renders a token value as JSON text, for messages.
func Literal(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
