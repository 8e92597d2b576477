package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fnp-marketplace/models"
	"fnp-marketplace/pricing"
	"fnp-marketplace/repository"
	"fnp-marketplace/service"
	"fnp-marketplace/utils"
)

type mockPriceListService struct{ mock.Mock }

func (m *mockPriceListService) List(ctx context.Context, f repository.PriceListFilter, p utils.Page) ([]*pricing.ProducerPriceList, int, error) {
	args := m.Called(ctx, f, p)
	lists, _ := args.Get(0).([]*pricing.ProducerPriceList)
	return lists, args.Int(1), args.Error(2)
}

func (m *mockPriceListService) Get(ctx context.Context, id string) (*pricing.ProducerPriceList, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*pricing.ProducerPriceList)
	return l, args.Error(1)
}

func (m *mockPriceListService) NewDraft(clientID, clientName, clientSpecialization string) *pricing.ProducerPriceList {
	return m.Called(clientID, clientName, clientSpecialization).Get(0).(*pricing.ProducerPriceList)
}

func (m *mockPriceListService) Create(ctx context.Context, raw []byte) (*pricing.ProducerPriceList, error) {
	args := m.Called(ctx, raw)
	l, _ := args.Get(0).(*pricing.ProducerPriceList)
	return l, args.Error(1)
}

func (m *mockPriceListService) Update(ctx context.Context, id string, raw []byte) (*pricing.ProducerPriceList, error) {
	args := m.Called(ctx, id, raw)
	l, _ := args.Get(0).(*pricing.ProducerPriceList)
	return l, args.Error(1)
}

func (m *mockPriceListService) BulkFill(ctx context.Context, id string, req service.BulkFillRequest) (*pricing.ProducerPriceList, error) {
	args := m.Called(ctx, id, req)
	l, _ := args.Get(0).(*pricing.ProducerPriceList)
	return l, args.Error(1)
}

func (m *mockPriceListService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockRenderer struct{ mock.Mock }

func (m *mockRenderer) RenderHTML(l *pricing.ProducerPriceList) ([]byte, error) {
	args := m.Called(l)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *mockRenderer) GeneratePDF(ctx context.Context, l *pricing.ProducerPriceList) ([]byte, error) {
	args := m.Called(ctx, l)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) List(ctx context.Context, f models.UserFilter, p utils.Page) ([]*models.User, int, error) {
	args := m.Called(ctx, f, p)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Int(1), args.Error(2)
}

func (m *mockUserService) Get(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserService) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	args := m.Called(ctx, in)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserService) Update(ctx context.Context, id string, in models.UserInput) (*models.User, error) {
	args := m.Called(ctx, id, in)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockAuthenticator struct{ mock.Mock }

func (m *mockAuthenticator) SignIn(ctx context.Context, email, password string) (*models.SignInResponse, error) {
	args := m.Called(ctx, email, password)
	resp, _ := args.Get(0).(*models.SignInResponse)
	return resp, args.Error(1)
}

type mockCatalogService struct{ mock.Mock }

func (m *mockCatalogService) ListBrands(ctx context.Context, search string, p utils.Page) ([]*models.Brand, int, error) {
	args := m.Called(ctx, search, p)
	items, _ := args.Get(0).([]*models.Brand)
	return items, args.Int(1), args.Error(2)
}

func (m *mockCatalogService) GetBrand(ctx context.Context, id string) (*models.Brand, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*models.Brand)
	return b, args.Error(1)
}

func (m *mockCatalogService) CreateBrand(ctx context.Context, b *models.Brand) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockCatalogService) UpdateBrand(ctx context.Context, id string, b *models.Brand) error {
	return m.Called(ctx, id, b).Error(0)
}

func (m *mockCatalogService) DeleteBrand(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCatalogService) ListProducts(ctx context.Context, f models.ProductFilter, p utils.Page) ([]*models.Product, int, error) {
	args := m.Called(ctx, f, p)
	items, _ := args.Get(0).([]*models.Product)
	return items, args.Int(1), args.Error(2)
}

func (m *mockCatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func (m *mockCatalogService) CreateProduct(ctx context.Context, p *models.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockCatalogService) UpdateProduct(ctx context.Context, id string, p *models.Product) error {
	return m.Called(ctx, id, p).Error(0)
}

func (m *mockCatalogService) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCatalogService) ListFarmProduce(ctx context.Context, search string, p utils.Page) ([]*models.FarmProduce, int, error) {
	args := m.Called(ctx, search, p)
	items, _ := args.Get(0).([]*models.FarmProduce)
	return items, args.Int(1), args.Error(2)
}

func (m *mockCatalogService) GetFarmProduce(ctx context.Context, id string) (*models.FarmProduce, error) {
	args := m.Called(ctx, id)
	fp, _ := args.Get(0).(*models.FarmProduce)
	return fp, args.Error(1)
}

func (m *mockCatalogService) CreateFarmProduce(ctx context.Context, fp *models.FarmProduce) error {
	return m.Called(ctx, fp).Error(0)
}

func (m *mockCatalogService) UpdateFarmProduce(ctx context.Context, id string, fp *models.FarmProduce) error {
	return m.Called(ctx, id, fp).Error(0)
}

func (m *mockCatalogService) DeleteFarmProduce(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockImageService struct{ mock.Mock }

func (m *mockImageService) Upload(ctx context.Context, data []byte) (*models.Image, error) {
	args := m.Called(ctx, data)
	img, _ := args.Get(0).(*models.Image)
	return img, args.Error(1)
}

func (m *mockImageService) Remove(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// premiumMeats is a stored list with beef visible (collected hidden) and everything else hidden
func premiumMeats(t *testing.T) *pricing.ProducerPriceList {
	t.Helper()
	l := pricing.NewDraft("c-1", "Premium Meats", "beef", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	l.ID = "7f0c4c1e-2a5b-4c3e-9a51-6b2f1e9d8c01"
	require.NoError(t, l.SetVisibility(pricing.Beef, true, false))
	require.NoError(t, l.SetPrice(pricing.Beef, "super", pricing.Delivered, 5000))
	require.NoError(t, l.SetPrice(pricing.Beef, "super", pricing.Collected, 4500))
	return l
}
