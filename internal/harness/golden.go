package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/chalmers-thesis/internal/host"
	"github.com/roach88/chalmers-thesis/internal/ir"
)

// TraceSnapshot captures the complete trace of a scenario run.
// It serializes to canonical JSON for deterministic comparison.
type TraceSnapshot struct {
	ScenarioName string
	Token        string
	Trace        []host.Step
	Labels       map[string]string
}

// toCanonicalMap converts a TraceSnapshot to the generic values handled by
// ir.MarshalCanonical.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	trace := make([]any, len(s.Trace))
	for i, step := range s.Trace {
		m := map[string]any{
			"seq":     step.Seq,
			"element": step.Element,
		}
		if len(step.Pushes) > 0 {
			pushes := make([]any, len(step.Pushes))
			for j, p := range step.Pushes {
				pushes[j] = map[string]any{
					"seq":   p.Seq,
					"list":  p.List,
					"entry": p.Entry,
				}
			}
			m["pushes"] = pushes
		}
		if step.Error != "" {
			m["error"] = step.Error
		}
		trace[i] = m
	}

	labels := make(map[string]any, len(s.Labels))
	for k, v := range s.Labels {
		labels[k] = v
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"token":         s.Token,
		"trace":         trace,
		"labels":        labels,
	}
}

// MarshalTrace renders a result's trace snapshot as canonical JSON.
func MarshalTrace(name string, result *Result) ([]byte, error) {
	snapshot := TraceSnapshot{
		ScenarioName: name,
		Token:        result.Token,
		Trace:        result.Trace,
		Labels:       result.Labels,
	}
	return ir.MarshalCanonical(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result's trace against a golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	traceJSON, err := MarshalTrace(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)
	return nil
}
