package token

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotDocument is returned when JSON text is valid but its top-level value
// is not an object.
var ErrNotDocument = errors.New("tokens must be in the Design Token Community Group format")

// Parse reads JSON text into the generic tree: nil, bool, float64, string,
// Array or Object.
//
// Object members keep the order they were written in. A key written twice
// keeps the position of its first occurrence and the value of its last.
// Every key is an ordinary member name, including ones starting with "#".
func Parse(filename string, data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	v, err := parseValue(dec)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = fmt.Errorf("unexpected %v after top-level value", tok)
		}
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	return v, nil
}

// Decode parses JSON text into a document tree.
// Returns ErrNotDocument unless the top-level value is an object.
func Decode(filename string, data []byte) (Object, error) {
	v, err := Parse(filename, data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(Object)
	if !ok {
		return nil, ErrNotDocument
	}
	return obj, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		return parseObject(dec)
	case '[':
		arr := Array{}
		for dec.More() {
			elem, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, elem)
		}
		return arr, closeDelim(dec)
	default:
		return nil, fmt.Errorf("unexpected %v", delim)
	}
}

func parseObject(dec *json.Decoder) (Object, error) {
	obj := Object{}
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected %v as object key", tok)
		}
		value, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		if i, seen := index[key]; seen {
			obj[i].Value = value
			continue
		}
		index[key] = len(obj)
		obj = append(obj, Member{Key: key, Value: value})
	}
	return obj, closeDelim(dec)
}

// closeDelim consumes the '}' or ']' ending the current object or array.
func closeDelim(dec *json.Decoder) error {
	_, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
