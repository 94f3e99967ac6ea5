package harness

import "github.com/roach88/rdfstore/internal/observe"

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expectation held.
	Pass bool `json:"pass"`

	// Trace holds the recorded notifications in arrival order.
	Trace []observe.Event `json:"trace"`

	// Final holds the final graph's serialized lines, sorted.
	Final []string `json:"final"`

	// Errors describes failed expectations. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []observe.Event{},
		Errors: []string{},
	}
}

// AddError records a failed expectation and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
