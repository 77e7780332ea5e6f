package store

import (
	"encoding/json"
	"fmt"

	"github.com/microsoft/figma-variables-import/internal/variable"
)

// valueAlias is the stored type tag of an alias binding.
const valueAlias = "VARIABLE_ALIAS"

// storedValue is the JSON form of a variable.Value in variable_values.value.
// Exactly one payload field is set, matching Type.
type storedValue struct {
	Type   string     `json:"type"`
	Color  *colorJSON `json:"color,omitempty"`
	Float  *float64   `json:"float,omitempty"`
	Bool   *bool      `json:"bool,omitempty"`
	String *string    `json:"string,omitempty"`
	Alias  string     `json:"alias,omitempty"`
}

type colorJSON struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// marshalValue converts a value to JSON TEXT for storage.
func marshalValue(v variable.Value) (string, error) {
	var sv storedValue
	switch v := v.(type) {
	case variable.Color:
		sv = storedValue{Type: string(variable.KindColor), Color: &colorJSON{R: v.R, G: v.G, B: v.B, A: v.A}}
	case variable.Float:
		f := float64(v)
		sv = storedValue{Type: string(variable.KindFloat), Float: &f}
	case variable.Bool:
		b := bool(v)
		sv = storedValue{Type: string(variable.KindBoolean), Bool: &b}
	case variable.String:
		s := string(v)
		sv = storedValue{Type: string(variable.KindString), String: &s}
	case variable.Alias:
		sv = storedValue{Type: valueAlias, Alias: v.ID}
	default:
		return "", fmt.Errorf("marshal value: unsupported value %T", v)
	}

	data, err := json.Marshal(sv)
	if err != nil {
		return "", fmt.Errorf("marshal value: %w", err)
	}
	return string(data), nil
}

// unmarshalValue parses JSON TEXT written by marshalValue.
func unmarshalValue(data string) (variable.Value, error) {
	var sv storedValue
	if err := json.Unmarshal([]byte(data), &sv); err != nil {
		return nil, fmt.Errorf("unmarshal value: %w", err)
	}

	switch {
	case sv.Type == string(variable.KindColor) && sv.Color != nil:
		return variable.Color{R: sv.Color.R, G: sv.Color.G, B: sv.Color.B, A: sv.Color.A}, nil
	case sv.Type == string(variable.KindFloat) && sv.Float != nil:
		return variable.Float(*sv.Float), nil
	case sv.Type == string(variable.KindBoolean) && sv.Bool != nil:
		return variable.Bool(*sv.Bool), nil
	case sv.Type == string(variable.KindString) && sv.String != nil:
		return variable.String(*sv.String), nil
	case sv.Type == valueAlias && sv.Alias != "":
		return variable.Alias{ID: sv.Alias}, nil
	default:
		return nil, fmt.Errorf("unmarshal value: malformed %q value", sv.Type)
	}
}

func marshalScopes(scopes []string) (string, error) {
	if scopes == nil {
		scopes = []string{}
	}
	data, err := json.Marshal(scopes)
	if err != nil {
		return "", fmt.Errorf("marshal scopes: %w", err)
	}
	return string(data), nil
}

func unmarshalScopes(data string) ([]string, error) {
	var scopes []string
	if err := json.Unmarshal([]byte(data), &scopes); err != nil {
		return nil, fmt.Errorf("unmarshal scopes: %w", err)
	}
	if len(scopes) == 0 {
		return nil, nil
	}
	return scopes, nil
}
