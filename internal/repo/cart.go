package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecomshop/backend/internal/models"
)

// AddCartEntry relies on the compound unique index on (user_id, product_id):
// a duplicate add comes back as gorm.ErrDuplicatedKey instead of racing a
// check-then-insert.
func (r *GormRepo) AddCartEntry(ctx context.Context, entry *models.CartEntry) error {
	return r.DB.WithContext(ctx).Create(entry).Error
}

// ListCartProducts resolves a user's cart entries to products. Entries whose
// product no longer exists are skipped silently.
func (r *GormRepo) ListCartProducts(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	var entries []models.CartEntry
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&entries).Error; err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return []models.Product{}, nil
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ProductID)
	}

	var found []models.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	products := make([]models.Product, 0, len(entries))
	for _, e := range entries {
		if p, ok := byID[e.ProductID]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}

func (r *GormRepo) DeleteCartEntry(ctx context.Context, userID, productID uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
