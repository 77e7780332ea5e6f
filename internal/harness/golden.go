package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/microsoft/figma-variables-import/internal/result"
)

// snapshot captures the result log and final state of a scenario execution.
type snapshot struct {
	ScenarioName string            `json:"scenario_name"`
	Log          []result.Entry    `json:"log"`
	State        []CollectionState `json:"state"`
}

// marshalSnapshot renders a snapshot as indented JSON with a trailing
// newline. Struct fields keep declaration order and map keys are sorted, so
// the output is stable.
func marshalSnapshot(name string, res *Result) ([]byte, error) {
	data, err := json.MarshalIndent(snapshot{
		ScenarioName: name,
		Log:          res.Log,
		State:        res.State,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// RunWithGolden executes a scenario and compares its result log and final
// state against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	res, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, res); err != nil {
		return nil, err
	}
	return res, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, res *Result) error {
	t.Helper()

	data, err := marshalSnapshot(scenarioName, res)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
