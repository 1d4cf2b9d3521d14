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

type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) CreateProduct(ctx context.Context, name string, price float64, image string) (*models.Product, error) {
	if name == "" || image == "" || price <= 0 {
		return nil, fmt.Errorf("name, price, and image are required: %w", ErrValidation)
	}

	prod := models.Product{
		Name:  name,
		Price: price,
		Image: image,
	}

	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("product already exists: %w", ErrConflict)
		}
		return nil, err
	}

	s.publish(ctx, prod.ID.String(), map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return &prod, nil
}

// DeleteProduct removes the product only. Cart entries referencing it are
// left in place; cart reads skip them.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product not found: %w", ErrNotFound)
		}
		return err
	}

	s.publish(ctx, id.String(), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return nil
}

func (s *CatalogService) publish(ctx context.Context, key string, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, events.TopicProductEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("event_publish_error", "topic", events.TopicProductEvents, "error", err)
	}
}
