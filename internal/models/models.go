package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"primaryKey"           json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null"             json:"-"`
	Role         string    `gorm:"not null"             json:"role"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Product struct {
	ID    uuid.UUID `gorm:"primaryKey"           json:"id"`
	Name  string    `gorm:"uniqueIndex;not null" json:"name"`
	Price float64   `gorm:"not null"             json:"price"`
	Image string    `gorm:"not null"             json:"image"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CartEntry is a membership pair: at most one row per (user, product),
// enforced by the compound unique index.
type CartEntry struct {
	ID        uuid.UUID `gorm:"primaryKey"                            json:"id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_user_product;not null" json:"user_id"`
	ProductID uuid.UUID `gorm:"uniqueIndex:idx_user_product;not null" json:"product_id"`
}

func (e *CartEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (CartEntry) TableName() string {
	return "cart_entries"
}
