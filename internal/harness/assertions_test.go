package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/chalmers-thesis/internal/host"
)

func testTrace() []host.Step {
	return []host.Step{
		{Seq: 2, Element: "__heading", Pushes: []host.Push{{Seq: 3, List: "structure", Entry: "h1"}}},
		{Seq: 4, Element: "cite", Error: "MISSING_KEY: missing citation key (element=cite)"},
		{Seq: 5, Element: "reference"},
		{Seq: 6, Element: "reference"},
	}
}

func TestAssertTraceOrder(t *testing.T) {
	trace := testTrace()

	assert.NoError(t, assertTraceOrder(trace, Assertion{Elements: []string{"__heading", "reference"}}))
	assert.NoError(t, assertTraceOrder(trace, Assertion{Elements: []string{"__heading", "cite", "reference"}}))
	assert.Error(t, assertTraceOrder(trace, Assertion{Elements: []string{"reference", "__heading"}}))
	assert.Error(t, assertTraceOrder(trace, Assertion{Elements: []string{"label"}}))
}

func TestAssertTraceCount(t *testing.T) {
	trace := testTrace()

	assert.NoError(t, assertTraceCount(trace, Assertion{Element: "reference", Count: 2}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Element: "label", Count: 0}))
	assert.Error(t, assertTraceCount(trace, Assertion{Element: "reference", Count: 1}))
}

func TestAssertStepError(t *testing.T) {
	trace := testTrace()

	assert.NoError(t, assertStepError(trace, Assertion{Element: "cite", Code: "MISSING_KEY"}))
	// Code must match the whole prefix, not a substring.
	assert.Error(t, assertStepError(trace, Assertion{Element: "cite", Code: "MISSING"}))
	assert.Error(t, assertStepError(trace, Assertion{Element: "reference", Code: "MISSING_KEY"}))
}

func TestAssertLabelNumber(t *testing.T) {
	result := NewResult()
	result.Labels = map[string]string{"fig": "1.1", "loose": ""}

	assert.NoError(t, assertLabelNumber(result, Assertion{Label: "fig", Number: "1.1"}))
	assert.NoError(t, assertLabelNumber(result, Assertion{Label: "loose", Number: ""}))
	assert.NoError(t, assertLabelNumber(result, Assertion{Label: "absent", Number: ""}))
	assert.Error(t, assertLabelNumber(result, Assertion{Label: "fig", Number: "2.1"}))
	assert.Error(t, assertLabelNumber(result, Assertion{Label: "absent", Number: "1"}))
}

func TestAssertionError_Message(t *testing.T) {
	err := &AssertionError{
		Type:     AssertTraceCount,
		Expected: "2 evaluations of cite",
		Actual:   "1 evaluations",
		Trace:    testTrace()[:2],
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: trace_count")
	assert.Contains(t, msg, "Expected: 2 evaluations of cite")
	assert.Contains(t, msg, "[2] __heading\n")
	assert.Contains(t, msg, "[4] cite error=MISSING_KEY")
}

func TestEvaluateAssertions_ListEntriesNeedsStore(t *testing.T) {
	errs := EvaluateAssertions(NewResult(), []Assertion{{Type: AssertListEntries, List: "structure"}}, nil)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs[0], "requires a store")
}
