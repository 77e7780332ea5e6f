package token

import (
	"bytes"
	"encoding/json"
)

// Object is a JSON object whose members keep the order they were written in.
type Object []Member

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Array is a JSON array.
type Array []any

// Get returns the value stored under key. Parse never produces an Object
// with repeated keys; for hand-built ones the last occurrence wins.
func (o Object) Get(key string) (any, bool) {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].Key == key {
			return o[i].Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (o Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// String returns the string stored under key, if there is one.
func (o Object) String(key string) (string, bool) {
	v, ok := o.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Object returns the object stored under key, if there is one.
func (o Object) Object(key string) (Object, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	obj, ok := v.(Object)
	return obj, ok
}

// Plain converts a tree into maps and slices, for consumers that need
// neither member order nor the Object type.
func Plain(v any) any {
	switch v := v.(type) {
	case Object:
		m := make(map[string]any, len(v))
		for _, member := range v {
			m[member.Key] = Plain(member.Value)
		}
		return m
	case Array:
		s := make([]any, len(v))
		for i, elem := range v {
			s[i] = Plain(elem)
		}
		return s
	default:
		return v
	}
}

// MarshalJSON writes the object with its members in document order.
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
