package repository

import (
	"context"
	"errors"

	"fnp-marketplace/models"
	"fnp-marketplace/pricing"
	"fnp-marketplace/utils"
)

var (
	// ErrNotFound is returned when no row matches the requested id
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint would be violated
	ErrConflict = errors.New("already exists")
)

// PriceListFilter narrows GET /producer-price-lists
type PriceListFilter struct {
	Search   string
	ClientID string
}

// PriceListRepositoryInterface defines the contract for producer price list persistence
type PriceListRepositoryInterface interface {
	List(ctx context.Context, filter PriceListFilter, page utils.Page) ([]*pricing.ProducerPriceList, int, error)
	GetByID(ctx context.Context, id string) (*pricing.ProducerPriceList, error)
	Create(ctx context.Context, list *pricing.ProducerPriceList) error
	Update(ctx context.Context, list *pricing.ProducerPriceList) error
	Delete(ctx context.Context, id string) error
}

// UserRepositoryInterface defines the contract for application user persistence
type UserRepositoryInterface interface {
	List(ctx context.Context, filter models.UserFilter, page utils.Page) ([]*models.User, int, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// BrandRepositoryInterface defines the contract for brand persistence
type BrandRepositoryInterface interface {
	List(ctx context.Context, search string, page utils.Page) ([]*models.Brand, int, error)
	GetByID(ctx context.Context, id string) (*models.Brand, error)
	Create(ctx context.Context, brand *models.Brand) error
	Update(ctx context.Context, brand *models.Brand) error
	Delete(ctx context.Context, id string) error
}

// ProductRepositoryInterface defines the contract for product persistence
type ProductRepositoryInterface interface {
	List(ctx context.Context, filter models.ProductFilter, page utils.Page) ([]*models.Product, int, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

// FarmProduceRepositoryInterface defines the contract for farm produce persistence
type FarmProduceRepositoryInterface interface {
	List(ctx context.Context, search string, page utils.Page) ([]*models.FarmProduce, int, error)
	GetByID(ctx context.Context, id string) (*models.FarmProduce, error)
	Create(ctx context.Context, produce *models.FarmProduce) error
	Update(ctx context.Context, produce *models.FarmProduce) error
	Delete(ctx context.Context, id string) error
}

// ImageRepositoryInterface records which store holds each uploaded image
type ImageRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*models.Image, error)
	Create(ctx context.Context, image *models.Image) error
	Delete(ctx context.Context, id string) error
}
