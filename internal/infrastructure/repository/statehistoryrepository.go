package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"apmdigest/internal/domain/activity"
	"apmdigest/internal/infrastructure/persistence/mappers"
	"apmdigest/internal/infrastructure/persistence/models"
	apperrors "apmdigest/internal/shared/errors"
)

// StateHistoryRepositoryImpl reads change records straight from the
// state history table or view.
type StateHistoryRepositoryImpl struct {
	db     *gorm.DB
	table  string
	mapper mappers.StateHistoryMapper
}

func NewStateHistoryRepository(db *gorm.DB, table string) activity.ChangeSource {
	if table == "" {
		table = models.DefaultStateHistoryTable
	}
	return &StateHistoryRepositoryImpl{
		db:     db,
		table:  table,
		mapper: mappers.NewStateHistoryMapper(),
	}
}

func (r *StateHistoryRepositoryImpl) FetchSince(ctx context.Context, since time.Time) ([]activity.ChangeRecord, error) {
	var rows []*models.StateHistoryModel

	err := r.db.WithContext(ctx).
		Table(r.table).
		Where("updated > ?", since.UTC()).
		Order("email ASC, updated ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.NewFetchError("failed to query state history", err, fmt.Sprintf("table=%s", r.table))
	}

	return r.mapper.ToRecords(rows), nil
}
