package harness

// StepResult records what one step produced.
type StepResult struct {
	Op     string
	Output []string
	// Error is the error code, empty on success.
	Error string
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true if every step met its expectation.
	Pass bool

	// Steps holds one entry per executed step, in order.
	Steps []StepResult

	// Errors contains expectation failures. Empty if Pass is true.
	Errors []string
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Steps:  []StepResult{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
