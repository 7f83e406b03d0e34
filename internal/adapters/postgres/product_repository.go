package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mercacio/storefront-service/internal/domain"
)

type productRepository struct {
	db *gorm.DB
}

func (r *productRepository) GetByID(ctx context.Context, id string) (domain.Product, error) {
	var rec productModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, domain.ErrNotFound
		}
		return domain.Product{}, err
	}
	return toDomainProduct(rec), nil
}

func (r *productRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []productModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainProduct(row))
	}
	return out, nil
}

func (r *productRepository) ListByStore(ctx context.Context, storeID string) ([]domain.Product, error) {
	var rows []productModel
	err := r.db.WithContext(ctx).
		Joins("JOIN store_products sp ON sp.product_id = products.id").
		Where("sp.store_id = ? AND sp.is_active = true AND products.is_active = true", storeID).
		Order("sp.sort_order asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainProduct(row))
	}
	return out, nil
}
