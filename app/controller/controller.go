package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"fnp-marketplace/models"
	"fnp-marketplace/pricing"
	"fnp-marketplace/repository"
	"fnp-marketplace/service"
	"fnp-marketplace/utils"
)

const maxBodyBytes = 1 << 20

// PriceListService is what the price list handlers need from the service layer
type PriceListService interface {
	List(ctx context.Context, filter repository.PriceListFilter, page utils.Page) ([]*pricing.ProducerPriceList, int, error)
	Get(ctx context.Context, id string) (*pricing.ProducerPriceList, error)
	NewDraft(clientID, clientName, clientSpecialization string) *pricing.ProducerPriceList
	Create(ctx context.Context, raw []byte) (*pricing.ProducerPriceList, error)
	Update(ctx context.Context, id string, raw []byte) (*pricing.ProducerPriceList, error)
	BulkFill(ctx context.Context, id string, req service.BulkFillRequest) (*pricing.ProducerPriceList, error)
	Delete(ctx context.Context, id string) error
}

// PriceListDocumentRenderer turns a price list into HTML or PDF
type PriceListDocumentRenderer interface {
	RenderHTML(list *pricing.ProducerPriceList) ([]byte, error)
	GeneratePDF(ctx context.Context, list *pricing.ProducerPriceList) ([]byte, error)
}

// UserService is what the user handlers need from the service layer
type UserService interface {
	List(ctx context.Context, filter models.UserFilter, page utils.Page) ([]*models.User, int, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, in models.UserInput) (*models.User, error)
	Update(ctx context.Context, id string, in models.UserInput) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// Authenticator signs users in
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*models.SignInResponse, error)
}

// CatalogService is what the brand, product and farm produce handlers need
type CatalogService interface {
	ListBrands(ctx context.Context, search string, page utils.Page) ([]*models.Brand, int, error)
	GetBrand(ctx context.Context, id string) (*models.Brand, error)
	CreateBrand(ctx context.Context, b *models.Brand) error
	UpdateBrand(ctx context.Context, id string, b *models.Brand) error
	DeleteBrand(ctx context.Context, id string) error

	ListProducts(ctx context.Context, filter models.ProductFilter, page utils.Page) ([]*models.Product, int, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, id string, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error

	ListFarmProduce(ctx context.Context, search string, page utils.Page) ([]*models.FarmProduce, int, error)
	GetFarmProduce(ctx context.Context, id string) (*models.FarmProduce, error)
	CreateFarmProduce(ctx context.Context, fp *models.FarmProduce) error
	UpdateFarmProduce(ctx context.Context, id string, fp *models.FarmProduce) error
	DeleteFarmProduce(ctx context.Context, id string) error
}

// ImageService uploads and removes images
type ImageService interface {
	Upload(ctx context.Context, data []byte) (*models.Image, error)
	Remove(ctx context.Context, id string) error
}

var (
	_ PriceListService          = (*service.PriceListService)(nil)
	_ PriceListDocumentRenderer = (*service.PriceListDocumentService)(nil)
	_ UserService               = (*service.UserService)(nil)
	_ Authenticator             = (*service.AuthService)(nil)
	_ CatalogService            = (*service.CatalogService)(nil)
	_ ImageService              = (*service.ImageService)(nil)
)

// readBody reads at most maxBodyBytes of the request body
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return body, nil
}

// decodeBody decodes a JSON body into v
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
