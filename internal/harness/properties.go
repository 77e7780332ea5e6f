package harness

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
)

// createdCount matches the summary entry of a run.
var createdCount = regexp.MustCompile(`^(\d+) variables were created`)

// PropertyError is returned when a scenario violates a property that must
// hold for every input.
type PropertyError struct {
	Property string
	Scenario string
	Message  string
}

// Error implements the error interface.
func (e *PropertyError) Error() string {
	return fmt.Sprintf("scenario %q violates %s: %s", e.Scenario, e.Property, e.Message)
}

// CheckIdempotent imports the scenario's files twice into the same store.
// The second run must create nothing and leave the state unchanged.
func CheckIdempotent(scenario *Scenario) error {
	ctx := context.Background()

	st, err := openStore(scenario)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := publishLibrary(ctx, scenario, st); err != nil {
		return err
	}

	if _, err := importFiles(ctx, st, scenario.Files); err != nil {
		return fmt.Errorf("first import aborted: %w", err)
	}
	first, err := Snapshot(ctx, st)
	if err != nil {
		return err
	}

	entries, err := importFiles(ctx, st, scenario.Files)
	if err != nil {
		return fmt.Errorf("second import aborted: %w", err)
	}
	second, err := Snapshot(ctx, st)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if m := createdCount.FindStringSubmatch(e.Text); m != nil {
			if n, _ := strconv.Atoi(m[1]); n != 0 {
				return &PropertyError{
					Property: "idempotence",
					Scenario: scenario.Name,
					Message:  fmt.Sprintf("second run created %d variables", n),
				}
			}
		}
	}
	if !reflect.DeepEqual(first, second) {
		return &PropertyError{
			Property: "idempotence",
			Scenario: scenario.Name,
			Message:  fmt.Sprintf("state changed between runs:\n  first:  %v\n  second: %v", first, second),
		}
	}
	return nil
}
