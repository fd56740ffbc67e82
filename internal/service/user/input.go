package user

import (
	"time"

	"github.com/lingopath/backend/internal/domain"
)

// UpdateSettingsInput holds parameters for settings update operation.
// All fields are optional (nil = don't change).
type UpdateSettingsInput struct {
	Timezone          *string
	NewItemsPerDay    *int
	DefaultEaseFactor *float64
	FailurePenalty    *bool
	DailyGoalType     *domain.GoalType
	DailyGoalTarget   *int
}

// Validate validates the update settings input.
func (i UpdateSettingsInput) Validate() error {
	var errs []domain.FieldError

	if i.Timezone != nil {
		if *i.Timezone == "" {
			errs = append(errs, domain.FieldError{Field: "timezone", Message: "cannot be empty"})
		} else if len(*i.Timezone) > 64 {
			errs = append(errs, domain.FieldError{Field: "timezone", Message: "too long"})
		} else if _, err := time.LoadLocation(*i.Timezone); err != nil {
			errs = append(errs, domain.FieldError{Field: "timezone", Message: "invalid IANA timezone"})
		}
	}

	if i.NewItemsPerDay != nil {
		if *i.NewItemsPerDay < 1 {
			errs = append(errs, domain.FieldError{Field: "new_items_per_day", Message: "must be at least 1"})
		} else if *i.NewItemsPerDay > 999 {
			errs = append(errs, domain.FieldError{Field: "new_items_per_day", Message: "must be at most 999"})
		}
	}

	if i.DefaultEaseFactor != nil {
		if *i.DefaultEaseFactor < domain.MinEaseFactor {
			errs = append(errs, domain.FieldError{Field: "default_ease_factor", Message: "must be at least 1.3"})
		} else if *i.DefaultEaseFactor > 5.0 {
			errs = append(errs, domain.FieldError{Field: "default_ease_factor", Message: "must be at most 5.0"})
		}
	}

	if i.DailyGoalType != nil && !i.DailyGoalType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "daily_goal_type", Message: "unknown goal type"})
	}

	if i.DailyGoalTarget != nil {
		if *i.DailyGoalTarget < 1 {
			errs = append(errs, domain.FieldError{Field: "daily_goal_target", Message: "must be at least 1"})
		} else if *i.DailyGoalTarget > 100_000 {
			errs = append(errs, domain.FieldError{Field: "daily_goal_target", Message: "must be at most 100000"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
