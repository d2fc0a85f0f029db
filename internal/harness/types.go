package harness

import "github.com/roach88/chalmers-thesis/internal/host"

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Token is the document token the compile ran under.
	Token string `json:"token"`

	// Trace lists the evaluated invocations in evaluation order.
	Trace []host.Step `json:"trace"`

	// Labels maps every label to its resolved number.
	Labels map[string]string `json:"labels"`

	// Output is the concatenated rendered text.
	Output string `json:"output"`

	// Errors contains assertion failure messages.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []host.Step{},
		Labels: map[string]string{},
		Errors: []string{},
	}
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
