package srs

import (
	"github.com/google/uuid"

	"github.com/lingopath/backend/internal/domain"
)

// LearnItemInput holds the parameters for learning a new content item.
type LearnItemInput struct {
	ContentKey   string
	ItemType     domain.ItemType
	Module       domain.Module
	LanguageCode string
}

// Validate checks all fields and collects all errors.
func (i *LearnItemInput) Validate() error {
	var errs []domain.FieldError

	if i.ContentKey == "" {
		errs = append(errs, domain.FieldError{Field: "content_key", Message: "required"})
	}
	if !i.ItemType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "item_type", Message: "unknown item type"})
	}
	if !i.Module.IsValid() {
		errs = append(errs, domain.FieldError{Field: "module", Message: "unknown module"})
	}
	if i.LanguageCode == "" {
		errs = append(errs, domain.FieldError{Field: "language_code", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RecordReviewInput holds the parameters for recording a review.
// Quality outside [0,5] is clamped by the scheduler, not rejected here.
type RecordReviewInput struct {
	ItemID     uuid.UUID
	Quality    int
	DurationMs *int
}

// Validate checks all fields and collects all errors.
func (i *RecordReviewInput) Validate() error {
	var errs []domain.FieldError

	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}
	if i.DurationMs != nil && *i.DurationMs < 0 {
		errs = append(errs, domain.FieldError{Field: "duration_ms", Message: "must be non-negative"})
	}
	if i.DurationMs != nil && *i.DurationMs > 600_000 {
		errs = append(errs, domain.FieldError{Field: "duration_ms", Message: "max 10 minutes"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// GetQueueInput holds the parameters for fetching the review queue.
type GetQueueInput struct {
	Limit int
}

// Validate checks all fields and collects all errors.
func (i *GetQueueInput) Validate() error {
	var errs []domain.FieldError

	if i.Limit < 0 || i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ItemIDInput holds the single item reference used by reset and remove.
type ItemIDInput struct {
	ItemID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *ItemIDInput) Validate() error {
	var errs []domain.FieldError

	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
