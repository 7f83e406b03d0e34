package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mercacio/storefront-service/internal/domain"
	"github.com/mercacio/storefront-service/internal/ports"
)

type storeRepository struct {
	db *gorm.DB
}

func (r *storeRepository) Create(ctx context.Context, params ports.CreateStoreParams) (domain.Store, error) {
	settings, err := settingsToJSON(params.Settings)
	if err != nil {
		return domain.Store{}, fmt.Errorf("%w: marshal settings: %v", domain.ErrInvalidInput, err)
	}
	rec := storeModel{
		ID:        uuid.NewString(),
		Slug:      domain.NormalizeSlug(params.Slug),
		Name:      params.Name,
		Settings:  settings,
		Theme:     params.Theme,
		IsActive:  true,
		CreatedAt: params.CreatedAt,
		UpdatedAt: params.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.Store{}, domain.ErrConflict
		}
		return domain.Store{}, err
	}
	return toDomainStore(rec), nil
}

func (r *storeRepository) GetByID(ctx context.Context, id string) (domain.Store, error) {
	var rec storeModel
	if err := r.db.WithContext(ctx).Where("id = ? AND deleted_at IS NULL", id).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Store{}, domain.ErrNotFound
		}
		return domain.Store{}, err
	}
	return toDomainStore(rec), nil
}

func (r *storeRepository) GetBySlug(ctx context.Context, slug string) (domain.Store, error) {
	var rec storeModel
	if err := r.db.WithContext(ctx).Where("slug = ? AND deleted_at IS NULL", domain.NormalizeSlug(slug)).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Store{}, domain.ErrNotFound
		}
		return domain.Store{}, err
	}
	return toDomainStore(rec), nil
}

func (r *storeRepository) Update(ctx context.Context, params ports.UpdateStoreParams) (domain.Store, error) {
	updates := map[string]any{
		"updated_at": params.UpdatedAt,
	}
	if params.Name != nil {
		updates["name"] = *params.Name
	}
	if params.Settings != nil {
		settings, err := settingsToJSON(*params.Settings)
		if err != nil {
			return domain.Store{}, fmt.Errorf("%w: marshal settings: %v", domain.ErrInvalidInput, err)
		}
		updates["settings"] = settings
	}
	if params.Theme != nil {
		updates["theme"] = *params.Theme
	}
	if params.IsActive != nil {
		updates["is_active"] = *params.IsActive
	}

	res := r.db.WithContext(ctx).Model(&storeModel{}).Where("id = ? AND deleted_at IS NULL", params.ID).Updates(updates)
	if res.Error != nil {
		return domain.Store{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.Store{}, domain.ErrNotFound
	}
	return r.GetByID(ctx, params.ID)
}
