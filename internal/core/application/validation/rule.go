package validation

import "foodorders/internal/pkg/errs"

// Rule is a single named check. Check returns nil on success.
type Rule struct {
	Field string
	Check func() error
}

// Validate runs every rule and returns *errs.ValidationError listing all
// failures, or nil. Each fault keeps the rule error as its Cause.
func Validate(rules ...Rule) error {
	var faults []errs.FieldError
	for _, r := range rules {
		if r.Check == nil {
			continue
		}
		if err := r.Check(); err != nil {
			faults = append(faults, errs.FieldError{Field: r.Field, Message: err.Error(), Cause: err})
		}
	}
	if len(faults) == 0 {
		return nil
	}
	return errs.NewValidationError(faults...)
}
