package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fnp-marketplace/models"
	"fnp-marketplace/pricing"
	"fnp-marketplace/repository"
	"fnp-marketplace/utils"
)

type mockPriceListRepo struct{ mock.Mock }

func (m *mockPriceListRepo) List(ctx context.Context, f repository.PriceListFilter, p utils.Page) ([]*pricing.ProducerPriceList, int, error) {
	args := m.Called(ctx, f, p)
	lists, _ := args.Get(0).([]*pricing.ProducerPriceList)
	return lists, args.Int(1), args.Error(2)
}

func (m *mockPriceListRepo) GetByID(ctx context.Context, id string) (*pricing.ProducerPriceList, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*pricing.ProducerPriceList)
	return l, args.Error(1)
}

func (m *mockPriceListRepo) Create(ctx context.Context, l *pricing.ProducerPriceList) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockPriceListRepo) Update(ctx context.Context, l *pricing.ProducerPriceList) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockPriceListRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, subject string, data any) error {
	return m.Called(ctx, subject, data).Error(0)
}

func (m *mockPublisher) Close() {}

// memoryCache is a map-backed PriceListCache for tests
type memoryCache struct {
	items map[string]*pricing.ProducerPriceList
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string]*pricing.ProducerPriceList{}}
}

func (c *memoryCache) Get(_ context.Context, id string) (*pricing.ProducerPriceList, bool, error) {
	l, ok := c.items[id]
	return l, ok, nil
}

func (c *memoryCache) Set(_ context.Context, l *pricing.ProducerPriceList) error {
	c.items[l.ID] = l
	return nil
}

func (c *memoryCache) Delete(_ context.Context, id string) error {
	delete(c.items, id)
	return nil
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) List(ctx context.Context, f models.UserFilter, p utils.Page) ([]*models.User, int, error) {
	args := m.Called(ctx, f, p)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Int(1), args.Error(2)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockBrandRepo struct{ mock.Mock }

func (m *mockBrandRepo) List(ctx context.Context, search string, p utils.Page) ([]*models.Brand, int, error) {
	args := m.Called(ctx, search, p)
	brands, _ := args.Get(0).([]*models.Brand)
	return brands, args.Int(1), args.Error(2)
}

func (m *mockBrandRepo) GetByID(ctx context.Context, id string) (*models.Brand, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*models.Brand)
	return b, args.Error(1)
}

func (m *mockBrandRepo) Create(ctx context.Context, b *models.Brand) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBrandRepo) Update(ctx context.Context, b *models.Brand) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBrandRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) List(ctx context.Context, f models.ProductFilter, p utils.Page) ([]*models.Product, int, error) {
	args := m.Called(ctx, f, p)
	products, _ := args.Get(0).([]*models.Product)
	return products, args.Int(1), args.Error(2)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func (m *mockProductRepo) Create(ctx context.Context, p *models.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) Update(ctx context.Context, p *models.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockFarmProduceRepo struct{ mock.Mock }

func (m *mockFarmProduceRepo) List(ctx context.Context, search string, p utils.Page) ([]*models.FarmProduce, int, error) {
	args := m.Called(ctx, search, p)
	fps, _ := args.Get(0).([]*models.FarmProduce)
	return fps, args.Int(1), args.Error(2)
}

func (m *mockFarmProduceRepo) GetByID(ctx context.Context, id string) (*models.FarmProduce, error) {
	args := m.Called(ctx, id)
	fp, _ := args.Get(0).(*models.FarmProduce)
	return fp, args.Error(1)
}

func (m *mockFarmProduceRepo) Create(ctx context.Context, fp *models.FarmProduce) error {
	return m.Called(ctx, fp).Error(0)
}

func (m *mockFarmProduceRepo) Update(ctx context.Context, fp *models.FarmProduce) error {
	return m.Called(ctx, fp).Error(0)
}

func (m *mockFarmProduceRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockImageRepo struct{ mock.Mock }

func (m *mockImageRepo) GetByID(ctx context.Context, id string) (*models.Image, error) {
	args := m.Called(ctx, id)
	img, _ := args.Get(0).(*models.Image)
	return img, args.Error(1)
}

func (m *mockImageRepo) Create(ctx context.Context, img *models.Image) error {
	return m.Called(ctx, img).Error(0)
}

func (m *mockImageRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
