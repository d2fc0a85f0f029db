package harness

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/chalmers-thesis/internal/host"
	"github.com/roach88/chalmers-thesis/internal/store"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string      // Assertion type for categorization
	Expected string      // Human-readable expected outcome
	Actual   string      // Human-readable actual outcome
	Trace    []host.Step // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, step := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s", step.Seq, step.Element)
			if step.Error != "" {
				fmt.Fprintf(&buf, " error=%s", step.Error)
			}
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}

// AssertionContext provides what store-backed assertions need.
type AssertionContext struct {
	Store *store.Store
	Ctx   context.Context
	Token string
}

// EvaluateAssertions checks every assertion and returns the failure
// messages, in assertion order.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluate(result, a, actx); err != nil {
			errs = append(errs, fmt.Sprintf("assertion %d: %v", i, err))
		}
	}
	return errs
}

func evaluate(result *Result, a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertLabelNumber:
		return assertLabelNumber(result, a)
	case AssertTraceOrder:
		return assertTraceOrder(result.Trace, a)
	case AssertTraceCount:
		return assertTraceCount(result.Trace, a)
	case AssertStepError:
		return assertStepError(result.Trace, a)
	case AssertOutputContains:
		return assertOutputContains(result.Output, a)
	case AssertListEntries:
		if actx == nil || actx.Store == nil {
			return fmt.Errorf("list_entries assertion requires a store")
		}
		return assertListEntries(actx, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertLabelNumber checks a label's resolved number. Expecting "" asserts
// that the label is unresolved.
func assertLabelNumber(result *Result, a Assertion) error {
	got, ok := result.Labels[a.Label]
	if got == a.Number && (ok || a.Number == "") {
		return nil
	}
	actual := fmt.Sprintf("%q", got)
	if !ok {
		actual = "label never placed"
	}
	return &AssertionError{
		Type:     AssertLabelNumber,
		Expected: fmt.Sprintf("label %s numbered %q", a.Label, a.Number),
		Actual:   actual,
	}
}

// assertTraceOrder checks that elements were first evaluated in the given
// order. They don't need to be consecutive.
func assertTraceOrder(trace []host.Step, a Assertion) error {
	positions := make(map[string]int)
	for i, step := range trace {
		if _, seen := positions[step.Element]; !seen {
			positions[step.Element] = i + 1 // 1-indexed for readability
		}
	}

	for _, el := range a.Elements {
		if positions[el] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all elements present: %v", a.Elements),
				Actual:   fmt.Sprintf("missing element: %s", el),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(a.Elements); i++ {
		prev, curr := a.Elements[i-1], a.Elements[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("elements in order: %v", a.Elements),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}
	return nil
}

// assertTraceCount checks that the element was evaluated exactly Count times.
func assertTraceCount(trace []host.Step, a Assertion) error {
	count := 0
	for _, step := range trace {
		if step.Element == a.Element {
			count++
		}
	}
	if count != a.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d evaluations of %s", a.Count, a.Element),
			Actual:   fmt.Sprintf("%d evaluations", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertStepError checks that some evaluation of the element failed with
// the given code.
func assertStepError(trace []host.Step, a Assertion) error {
	for _, step := range trace {
		if step.Element == a.Element && strings.HasPrefix(step.Error, a.Code+":") {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertStepError,
		Expected: fmt.Sprintf("%s failing with %s", a.Element, a.Code),
		Actual:   "no matching failure",
		Trace:    trace,
	}
}

func assertOutputContains(output string, a Assertion) error {
	if strings.Contains(output, a.Text) {
		return nil
	}
	return &AssertionError{
		Type:     AssertOutputContains,
		Expected: fmt.Sprintf("output containing %q", a.Text),
		Actual:   fmt.Sprintf("%q", output),
	}
}

// assertListEntries checks the stored entries of one host list, in push
// order.
func assertListEntries(actx *AssertionContext, a Assertion) error {
	entries, err := actx.Store.ReadList(actx.Ctx, actx.Token, a.List)
	if err != nil {
		return fmt.Errorf("read list %s: %w", a.List, err)
	}
	want := a.Entries
	if want == nil {
		want = []string{}
	}
	if !slices.Equal(entries, want) {
		return &AssertionError{
			Type:     AssertListEntries,
			Expected: fmt.Sprintf("%s = %q", a.List, want),
			Actual:   fmt.Sprintf("%q", entries),
		}
	}
	return nil
}
