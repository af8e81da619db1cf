package repository

import (
	"context"

	"gorm.io/gorm"

	"moneta/internal/model"
)

// AppealRepository defines appeal persistence operations.
type AppealRepository interface {
	Create(ctx context.Context, appeal *model.Appeal) error
	Update(ctx context.Context, appeal *model.Appeal) error
	FindByID(ctx context.Context, id uint) (*model.Appeal, error)
	ListOpen(ctx context.Context) ([]model.Appeal, error)
}

type appealRepository struct {
	db *gorm.DB
}

// NewAppealRepository creates a new appeal repository.
func NewAppealRepository(db *gorm.DB) AppealRepository {
	return &appealRepository{db: db}
}

func (r *appealRepository) Create(ctx context.Context, appeal *model.Appeal) error {
	return r.db.WithContext(ctx).Create(appeal).Error
}

func (r *appealRepository) Update(ctx context.Context, appeal *model.Appeal) error {
	return r.db.WithContext(ctx).Save(appeal).Error
}

func (r *appealRepository) FindByID(ctx context.Context, id uint) (*model.Appeal, error) {
	var appeal model.Appeal
	if err := r.db.WithContext(ctx).First(&appeal, id).Error; err != nil {
		return nil, err
	}
	return &appeal, nil
}

// ListOpen lists unresolved appeals, oldest first.
func (r *appealRepository) ListOpen(ctx context.Context) ([]model.Appeal, error) {
	var appeals []model.Appeal
	if err := r.db.WithContext(ctx).Where("status = ?", model.AppealStatusOpen).
		Order("created_at ASC").Find(&appeals).Error; err != nil {
		return nil, err
	}
	return appeals, nil
}
