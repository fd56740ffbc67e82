package srs

import (
	"context"
	"fmt"
	"time"

	"github.com/lingopath/backend/internal/domain"
	"github.com/lingopath/backend/pkg/ctxutil"
)

// ListItemsInput holds the parameters for browsing review items.
type ListItemsInput struct {
	Module       *domain.Module
	ItemType     *domain.ItemType
	LanguageCode *string
	DueOnly      bool
	SortBy       string
	SortOrder    string
	Limit        int
	Offset       int
}

// Validate checks all fields and collects all errors.
func (i *ListItemsInput) Validate() error {
	var errs []domain.FieldError

	if i.Module != nil && !i.Module.IsValid() {
		errs = append(errs, domain.FieldError{Field: "module", Message: "unknown module"})
	}
	if i.ItemType != nil && !i.ItemType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "item_type", Message: "unknown item type"})
	}
	if i.Limit < 0 || i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListItems returns a filtered page of the user's review items plus the
// total count for the filter.
func (s *Service) ListItems(ctx context.Context, input ListItemsInput) ([]*domain.ReviewItem, int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	filter := domain.ItemFilter{
		Module:       input.Module,
		ItemType:     input.ItemType,
		LanguageCode: input.LanguageCode,
		SortBy:       input.SortBy,
		SortOrder:    input.SortOrder,
		Limit:        input.Limit,
		Offset:       input.Offset,
	}
	if input.DueOnly {
		now := time.Now()
		filter.DueBefore = &now
	}

	items, total, err := s.items.List(ctx, userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}

	return items, total, nil
}
