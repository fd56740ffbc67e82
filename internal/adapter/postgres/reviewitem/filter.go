package reviewitem

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/lingopath/backend/internal/adapter/postgres"
	"github.com/lingopath/backend/internal/domain"
)

const (
	defaultLimit = 50
	maxLimit     = 200

	sortByDueAt    = "due_at"
	sortByCreated  = "created_at"
	sortByInterval = "interval_days"

	sortOrderASC  = "ASC"
	sortOrderDESC = "DESC"
)

// normalize applies defaults and clamps filter values.
func normalize(f *domain.ItemFilter) {
	switch f.SortBy {
	case sortByDueAt, sortByCreated, sortByInterval:
		// valid
	default:
		f.SortBy = sortByDueAt
	}

	switch f.SortOrder {
	case sortOrderASC, sortOrderDESC:
		// valid
	default:
		f.SortOrder = sortOrderASC
	}

	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}

	if f.Offset < 0 {
		f.Offset = 0
	}
}

// List returns a page of the user's review items plus the total count for
// the same filter.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, filter domain.ItemFilter) ([]*domain.ReviewItem, int, error) {
	normalize(&filter)
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	where := sq.And{sq.Eq{"user_id": userID}}
	if filter.Module != nil {
		where = append(where, sq.Eq{"module": string(*filter.Module)})
	}
	if filter.ItemType != nil {
		where = append(where, sq.Eq{"item_type": string(*filter.ItemType)})
	}
	if filter.LanguageCode != nil {
		where = append(where, sq.Eq{"language_code": *filter.LanguageCode})
	}
	if filter.DueBefore != nil {
		where = append(where, sq.LtOrEq{"due_at": *filter.DueBefore})
	}

	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countSQL, countArgs, err := builder.
		Select("count(*)").
		From("review_items").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count review items: %w", err)
	}

	listSQL, listArgs, err := builder.
		Select(itemColumns).
		From("review_items").
		Where(where).
		OrderBy(fmt.Sprintf("%s %s", filter.SortBy, filter.SortOrder)).
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list review items: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list review items: %w", err)
	}

	return items, total, nil
}
