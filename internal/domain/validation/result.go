// Package validation holds the business rules applied to dimensions, money
// values and fastener (ilhós) configurations, plus identifier checks for CPF
// and e-mail.
//
// Rules never stop at the first failure: every applicable check runs and
// contributes to the Result. Errors block the operation, warnings only ask
// the user to double-check.
package validation

// Result is the outcome of a validation pass.
type Result struct {
	// Valid is true when Errors is empty.
	Valid bool `json:"valid"`

	// Errors lists the blocking problems in the order they were found.
	Errors []string `json:"errors"`

	// Warnings lists non-blocking observations in the order they were found.
	Warnings []string `json:"warnings"`
}

// collector accumulates messages for a single validation pass.
type collector struct {
	errors   []string
	warnings []string
}

func (c *collector) errorIf(cond bool, msg string) {
	if cond {
		c.errors = append(c.errors, msg)
	}
}

func (c *collector) warnIf(cond bool, msg string) {
	if cond {
		c.warnings = append(c.warnings, msg)
	}
}

func (c *collector) result() Result {
	errs := c.errors
	if errs == nil {
		errs = []string{}
	}
	warns := c.warnings
	if warns == nil {
		warns = []string{}
	}
	return Result{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warns,
	}
}
