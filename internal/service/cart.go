package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecomshop/backend/internal/events"
	"github.com/ecomshop/backend/internal/logging"
	"github.com/ecomshop/backend/internal/models"
	"github.com/ecomshop/backend/internal/repo"
)

type CartService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

// AddToCart rejects a product already in the cart rather than treating the
// add as idempotent. The duplicate comes from the compound unique index, not
// from a pre-check, so concurrent adds cannot both slip through.
func (s *CartService) AddToCart(ctx context.Context, userID, productID uuid.UUID) error {
	if _, err := s.Repo.FindProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return err
	}

	entry := models.CartEntry{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.Repo.AddCartEntry(ctx, &entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("product already in cart: %w", ErrConflict)
		}
		return err
	}

	s.publish(ctx, userID, map[string]any{
		"type":      "cart_item_added",
		"userID":    userID,
		"productID": productID,
	})

	return nil
}

func (s *CartService) ListCart(ctx context.Context, userID uuid.UUID) ([]models.Product, error) {
	return s.Repo.ListCartProducts(ctx, userID)
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) error {
	if err := s.Repo.DeleteCartEntry(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product not found in cart: %w", ErrNotFound)
		}
		return err
	}

	s.publish(ctx, userID, map[string]any{
		"type":      "cart_item_removed",
		"userID":    userID,
		"productID": productID,
	})

	return nil
}

func (s *CartService) publish(ctx context.Context, userID uuid.UUID, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, events.TopicCartEvents, userID.String(), event); err != nil {
		logging.FromContext(ctx).Error("event_publish_error", "topic", events.TopicCartEvents, "error", err)
	}
}
