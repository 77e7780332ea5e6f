package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/microsoft/figma-variables-import/internal/result"
)

// AssertionError is returned when an assertion fails.
// It includes the full result log to help debug the failure.
type AssertionError struct {
	Type     string         // Assertion type for categorization
	Expected string         // Human-readable expected outcome
	Actual   string         // Human-readable actual outcome
	Log      []result.Entry // Full result log for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nResult log:\n")
	for i, entry := range e.Log {
		fmt.Fprintf(&buf, "  [%d] %s: %s\n", i+1, entry.Kind, entry.Text)
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion against res and returns the
// failure messages, in assertion order.
func EvaluateAssertions(res *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertLogContains:
			err = assertLogContains(res.Log, a)
		case AssertLogCount:
			err = assertLogCount(res.Log, a)
		case AssertCollection:
			err = assertCollection(res, a)
		case AssertVariable:
			err = assertVariable(res, a)
		case AssertVariableAbsent:
			err = assertVariableAbsent(res, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return failures
}

// assertLogContains checks that the log has an entry with the given result
// kind and exact text.
func assertLogContains(log []result.Entry, a Assertion) error {
	want := result.Entry{Kind: a.Result, Text: a.Text}
	if slices.Contains(log, want) {
		return nil
	}
	return &AssertionError{
		Type:     AssertLogContains,
		Expected: fmt.Sprintf("%s entry %q", a.Result, a.Text),
		Actual:   "not found in result log",
		Log:      log,
	}
}

// assertLogCount checks the number of entries of one result kind.
func assertLogCount(log []result.Entry, a Assertion) error {
	count := 0
	for _, e := range log {
		if e.Kind == a.Result {
			count++
		}
	}
	if count == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertLogCount,
		Expected: fmt.Sprintf("%d %s entries", a.Count, a.Result),
		Actual:   fmt.Sprintf("%d %s entries", count, a.Result),
		Log:      log,
	}
}

func findCollection(state []CollectionState, name string) (CollectionState, bool) {
	for _, c := range state {
		if c.Name == name {
			return c, true
		}
	}
	return CollectionState{}, false
}

// findVariable looks for a variable in the named collection, or in any
// collection when collection is empty.
func findVariable(state []CollectionState, collection, name string) (VariableState, bool) {
	for _, c := range state {
		if collection != "" && c.Name != collection {
			continue
		}
		for _, v := range c.Variables {
			if v.Name == name {
				return v, true
			}
		}
	}
	return VariableState{}, false
}

func collectionNames(state []CollectionState) []string {
	names := make([]string, len(state))
	for i, c := range state {
		names[i] = c.Name
	}
	return names
}

// assertCollection checks that a collection exists and, when modes are
// given, that it has exactly those modes in that order.
func assertCollection(res *Result, a Assertion) error {
	c, ok := findCollection(res.State, a.Collection)
	if !ok {
		return &AssertionError{
			Type:     AssertCollection,
			Expected: fmt.Sprintf("collection %q", a.Collection),
			Actual:   fmt.Sprintf("collections %v", collectionNames(res.State)),
			Log:      res.Log,
		}
	}
	if a.Modes != nil && !slices.Equal(c.Modes, a.Modes) {
		return &AssertionError{
			Type:     AssertCollection,
			Expected: fmt.Sprintf("collection %q with modes %v", a.Collection, a.Modes),
			Actual:   fmt.Sprintf("modes %v", c.Modes),
			Log:      res.Log,
		}
	}
	return nil
}

// assertVariable checks a variable's kind and the listed mode values
// (subset match: modes not listed are not checked).
func assertVariable(res *Result, a Assertion) error {
	v, ok := findVariable(res.State, a.Collection, a.Variable)
	if !ok {
		return &AssertionError{
			Type:     AssertVariable,
			Expected: fmt.Sprintf("variable %q in collection %q", a.Variable, a.Collection),
			Actual:   "not found",
			Log:      res.Log,
		}
	}
	if a.Kind != "" && string(v.Kind) != a.Kind {
		return &AssertionError{
			Type:     AssertVariable,
			Expected: fmt.Sprintf("variable %q of kind %s", a.Variable, a.Kind),
			Actual:   fmt.Sprintf("kind %s", v.Kind),
			Log:      res.Log,
		}
	}
	for mode, want := range a.Values {
		got, ok := v.Values[mode]
		if !ok {
			got = "(unset)"
		}
		if got != want {
			return &AssertionError{
				Type:     AssertVariable,
				Expected: fmt.Sprintf("variable %q mode %s = %s", a.Variable, mode, want),
				Actual:   got,
				Log:      res.Log,
			}
		}
	}
	return nil
}

// assertVariableAbsent checks that no collection holds the variable.
func assertVariableAbsent(res *Result, a Assertion) error {
	if _, ok := findVariable(res.State, a.Collection, a.Variable); !ok {
		return nil
	}
	return &AssertionError{
		Type:     AssertVariableAbsent,
		Expected: fmt.Sprintf("no variable %q", a.Variable),
		Actual:   "variable exists",
		Log:      res.Log,
	}
}
