//go:build integration

package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fnp-marketplace/db"
	"fnp-marketplace/models"
	"fnp-marketplace/pricing"
	"fnp-marketplace/utils"
)

// TestMain starts PostgreSQL in docker and applies the schema
func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=fnp",
			"POSTGRES_PASSWORD=fnp",
			"POSTGRES_DB=fnp_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("Could not start PostgreSQL resource: %s", err)
	}
	resource.Expire(300)

	dsn := fmt.Sprintf("postgres://fnp:fnp@%s/fnp_test?sslmode=disable", resource.GetHostPort("5432/tcp"))
	pool.MaxWait = 2 * time.Minute
	if err := pool.Retry(func() error { return db.InitDB(dsn) }); err != nil {
		log.Fatalf("Could not connect to PostgreSQL: %s", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		log.Fatalf("Could not apply schema: %s", err)
	}

	code := m.Run()

	db.CloseDB()
	if err := pool.Purge(resource); err != nil {
		log.Printf("Could not purge PostgreSQL resource: %s", err)
	}
	os.Exit(code)
}

func truncate(t *testing.T, tables ...string) {
	t.Helper()
	for _, table := range tables {
		_, err := db.DB.Exec("TRUNCATE " + table + " CASCADE")
		require.NoError(t, err)
	}
}

func TestPriceListRepository_RoundTrip(t *testing.T) {
	truncate(t, "producer_price_lists")
	ctx := context.Background()
	repo := NewPriceListRepository()

	l := pricing.NewDraft("c-1", "Premium Meats", "beef", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, l.SetVisibility(pricing.Beef, true, true))
	require.NoError(t, l.BulkFill(pricing.Beef, pricing.Delivered, 5000))
	require.NoError(t, l.BulkFill(pricing.Beef, pricing.Collected, 4500))
	require.NoError(t, l.SetPrice(pricing.Lamb, "choice", pricing.Delivered, 999))
	require.NoError(t, repo.Create(ctx, l))
	require.NotEmpty(t, l.ID)

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Premium Meats", got.ClientName)
	assert.Equal(t, "2024-01-15", got.EffectiveDate.Format(pricing.DateLayout))
	g, _ := got.Grade(pricing.Beef, "condemned")
	assert.EqualValues(t, 4500, g.Pricing.Collected)

	// hidden categories keep their prices in storage
	lamb, _ := got.Grade(pricing.Lamb, "choice")
	assert.EqualValues(t, 999, lamb.Pricing.Delivered)
	assert.False(t, got.Category(pricing.Lamb).HasPrice)

	require.NoError(t, got.BulkFill(pricing.Beef, pricing.Delivered, 6000))
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	g, _ = again.Grade(pricing.Beef, "super")
	assert.EqualValues(t, 6000, g.Pricing.Delivered)
	assert.True(t, again.CreatedAt.Equal(l.CreatedAt.Truncate(time.Microsecond)))

	require.NoError(t, repo.Delete(ctx, l.ID))
	_, err = repo.GetByID(ctx, l.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, l.ID), ErrNotFound)
	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPriceListRepository_ListPaginatesAndFilters(t *testing.T) {
	truncate(t, "producer_price_lists")
	ctx := context.Background()
	repo := NewPriceListRepository()

	for i := 0; i < 25; i++ {
		client := "c-1"
		name := "Premium Meats"
		if i%5 == 0 {
			client, name = "c-2", "Hillside 100% Abattoir"
		}
		l := pricing.NewDraft(client, name, "beef", time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC))
		require.NoError(t, repo.Create(ctx, l))
	}

	page1, total, err := repo.List(ctx, PriceListFilter{}, utils.NewPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	require.Len(t, page1, 10)
	assert.Equal(t, "2024-01-25", page1[0].EffectiveDate.Format(pricing.DateLayout), "newest first")

	page3, _, err := repo.List(ctx, PriceListFilter{}, utils.NewPage(3, 10))
	require.NoError(t, err)
	assert.Len(t, page3, 5)

	page4, total, err := repo.List(ctx, PriceListFilter{}, utils.NewPage(4, 10))
	require.NoError(t, err)
	assert.Empty(t, page4)
	assert.Equal(t, 25, total)

	byClient, total, err := repo.List(ctx, PriceListFilter{ClientID: "c-2"}, utils.NewPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, byClient, 5)

	_, total, err = repo.List(ctx, PriceListFilter{Search: "100%"}, utils.NewPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, 5, total, "% is matched literally")
}

func TestUserRepository(t *testing.T) {
	truncate(t, "users")
	ctx := context.Background()
	repo := NewUserRepository()

	u := &models.User{
		Name:            "Tendai Moyo",
		Email:           "tendai@example.com",
		Role:            models.RoleFarmer,
		Specializations: []string{"beef", "goat"},
		PasswordHash:    "hash",
	}
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByEmail(ctx, "Tendai@Example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, []string{"beef", "goat"}, got.Specializations)
	assert.Equal(t, "hash", got.PasswordHash)

	dup := &models.User{Name: "Other", Email: "tendai@example.com", Role: models.RoleBuyer, Specializations: []string{"pork"}}
	assert.ErrorIs(t, repo.Create(ctx, dup), ErrConflict)

	got.Banned = true
	require.NoError(t, repo.Update(ctx, got))

	users, total, err := repo.List(ctx, models.UserFilter{Search: "moyo", Role: models.RoleFarmer}, utils.NewPage(1, 20))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, users, 1)
	assert.True(t, users[0].Banned)

	_, total, err = repo.List(ctx, models.UserFilter{Role: models.RoleAdmin}, utils.NewPage(1, 20))
	require.NoError(t, err)
	assert.Zero(t, total)

	require.NoError(t, repo.Delete(ctx, u.ID))
	_, err = repo.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogRepositories(t *testing.T) {
	truncate(t, "products", "brands", "farm_produce", "images")
	ctx := context.Background()
	brands := NewBrandRepository()
	products := NewProductRepository()
	produce := NewFarmProduceRepository()
	images := NewImageRepository()

	brand := &models.Brand{Name: "Agrivet"}
	require.NoError(t, brands.Create(ctx, brand))

	withBrand := &models.Product{Name: "Dip Wash 1L", BrandID: brand.ID, Price: 1250}
	noBrand := &models.Product{Name: "Salt Lick", Price: 300}
	require.NoError(t, products.Create(ctx, withBrand))
	require.NoError(t, products.Create(ctx, noBrand))

	list, total, err := products.List(ctx, models.ProductFilter{BrandID: brand.ID}, utils.NewPage(1, 20))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Dip Wash 1L", list[0].Name)

	// deleting a brand detaches its products
	require.NoError(t, brands.Delete(ctx, brand.ID))
	got, err := products.GetByID(ctx, withBrand.ID)
	require.NoError(t, err)
	assert.Empty(t, got.BrandID)

	fp := &models.FarmProduce{Name: "Weaner steers", Category: "beef"}
	require.NoError(t, produce.Create(ctx, fp))
	fp.Name = "Weaners"
	require.NoError(t, produce.Update(ctx, fp))
	items, total, err := produce.List(ctx, "wean", utils.NewPage(1, 20))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Weaners", items[0].Name)

	img := &models.Image{ID: "0d6c2a55-9d1f-4a3e-8a8c-51f1b6a1c0de", Store: "local", ObjectKey: "x.jpg", URL: "http://x/x.jpg",
		ThumbKey: "x_thumb.jpg", ThumbURL: "http://x/x_thumb.jpg", ContentType: "image/jpeg", SizeBytes: 10}
	require.NoError(t, images.Create(ctx, img))
	gotImg, err := images.GetByID(ctx, img.ID)
	require.NoError(t, err)
	assert.Equal(t, "x.jpg", gotImg.ObjectKey)
	assert.Equal(t, "x_thumb.jpg", gotImg.ThumbKey)
	require.NoError(t, images.Delete(ctx, img.ID))
}
