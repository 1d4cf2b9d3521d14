package repo

import (
	"context"

	"github.com/ecomshop/backend/internal/models"
)

// CreateUser inserts directly; the unique index on username makes the
// insert the uniqueness check, so two concurrent registrations cannot both
// succeed. A violation surfaces as gorm.ErrDuplicatedKey.
func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	return r.DB.WithContext(ctx).Create(u).Error
}

func (r *GormRepo) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
