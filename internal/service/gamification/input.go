package gamification

import (
	"github.com/lingopath/backend/internal/domain"
)

// AwardInput holds the parameters for one XP award.
type AwardInput struct {
	Amount int
	Source domain.XPSource
}

// Validate checks all fields and collects all errors. The upper bound on
// Amount is configured per deployment and enforced by the service.
func (i *AwardInput) Validate() error {
	var errs []domain.FieldError

	if i.Amount <= 0 {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "must be positive"})
	}
	if !i.Source.IsValid() {
		errs = append(errs, domain.FieldError{Field: "source", Message: "unknown xp source"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateGoalInput holds the parameters for changing a daily goal.
type UpdateGoalInput struct {
	GoalType domain.GoalType
	Target   int
}

// Validate checks all fields and collects all errors.
func (i *UpdateGoalInput) Validate() error {
	var errs []domain.FieldError

	if !i.GoalType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "goal_type", Message: "unknown goal type"})
	}
	if i.Target <= 0 {
		errs = append(errs, domain.FieldError{Field: "target", Message: "must be positive"})
	}
	if i.Target > 100_000 {
		errs = append(errs, domain.FieldError{Field: "target", Message: "too large"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
