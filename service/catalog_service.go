package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fnp-marketplace/models"
	"fnp-marketplace/pricing"
	"fnp-marketplace/repository"
	"fnp-marketplace/utils"
)

// CatalogService manages brands, products and farm produce
type CatalogService struct {
	brands      repository.BrandRepositoryInterface
	products    repository.ProductRepositoryInterface
	farmProduce repository.FarmProduceRepositoryInterface
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	brands repository.BrandRepositoryInterface,
	products repository.ProductRepositoryInterface,
	farmProduce repository.FarmProduceRepositoryInterface,
) *CatalogService {
	return &CatalogService{
		brands:      brands,
		products:    products,
		farmProduce: farmProduce,
	}
}

func (s *CatalogService) ListBrands(ctx context.Context, search string, page utils.Page) ([]*models.Brand, int, error) {
	return s.brands.List(ctx, search, page)
}

func (s *CatalogService) GetBrand(ctx context.Context, id string) (*models.Brand, error) {
	return s.brands.GetByID(ctx, id)
}

func (s *CatalogService) CreateBrand(ctx context.Context, b *models.Brand) error {
	if err := b.Validate(); err != nil {
		return err
	}
	return s.brands.Create(ctx, b)
}

func (s *CatalogService) UpdateBrand(ctx context.Context, id string, b *models.Brand) error {
	if err := b.Validate(); err != nil {
		return err
	}
	b.ID = id
	return s.brands.Update(ctx, b)
}

func (s *CatalogService) DeleteBrand(ctx context.Context, id string) error {
	return s.brands.Delete(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context, filter models.ProductFilter, page utils.Page) ([]*models.Product, int, error) {
	return s.products.List(ctx, filter, page)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := s.validateProduct(ctx, p); err != nil {
		return err
	}
	return s.products.Create(ctx, p)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, p *models.Product) error {
	if err := s.validateProduct(ctx, p); err != nil {
		return err
	}
	p.ID = id
	return s.products.Update(ctx, p)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// validateProduct also checks that a referenced brand exists
func (s *CatalogService) validateProduct(ctx context.Context, p *models.Product) error {
	err := p.Validate()
	verr, _ := models.AsValidationError(err)
	if verr == nil {
		if err != nil {
			return err
		}
		verr = &models.ValidationError{}
	}
	if p.BrandID != "" {
		if _, err := s.brands.GetByID(ctx, p.BrandID); errors.Is(err, repository.ErrNotFound) {
			verr.Add("brand_id", "does not exist")
		} else if err != nil {
			return fmt.Errorf("failed to check brand: %w", err)
		}
	}
	return verr.Err()
}

func (s *CatalogService) ListFarmProduce(ctx context.Context, search string, page utils.Page) ([]*models.FarmProduce, int, error) {
	return s.farmProduce.List(ctx, search, page)
}

func (s *CatalogService) GetFarmProduce(ctx context.Context, id string) (*models.FarmProduce, error) {
	return s.farmProduce.GetByID(ctx, id)
}

func (s *CatalogService) CreateFarmProduce(ctx context.Context, fp *models.FarmProduce) error {
	if err := validateFarmProduce(fp); err != nil {
		return err
	}
	return s.farmProduce.Create(ctx, fp)
}

func (s *CatalogService) UpdateFarmProduce(ctx context.Context, id string, fp *models.FarmProduce) error {
	if err := validateFarmProduce(fp); err != nil {
		return err
	}
	fp.ID = id
	return s.farmProduce.Update(ctx, fp)
}

func (s *CatalogService) DeleteFarmProduce(ctx context.Context, id string) error {
	return s.farmProduce.Delete(ctx, id)
}

// validateFarmProduce requires a name and a category from the pricing grade table
func validateFarmProduce(fp *models.FarmProduce) error {
	verr := &models.ValidationError{}
	fp.Name = strings.TrimSpace(fp.Name)
	fp.Description = strings.TrimSpace(fp.Description)
	if fp.Name == "" {
		verr.Add("name", "is required")
	}
	if c, ok := pricing.ParseCategory(fp.Category); ok {
		fp.Category = string(c)
	} else {
		verr.Add("category", "must be one of the price list categories")
	}
	return verr.Err()
}
