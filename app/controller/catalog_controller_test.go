package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fnp-marketplace/models"
	"fnp-marketplace/repository"
	"fnp-marketplace/utils"
)

func TestCatalogController_ListProductsFilters(t *testing.T) {
	svc := new(mockCatalogService)
	c := NewCatalogController(svc)
	filter := models.ProductFilter{Search: "dip", BrandID: "b-1"}
	svc.On("ListProducts", mock.Anything, filter, utils.NewPage(1, 20)).
		Return([]*models.Product{{ID: "p-1", Name: "Dip Wash", BrandID: "b-1", Price: 1250}}, 1, nil)

	req := httptest.NewRequest(http.MethodGet, "/products?search=dip&brand_id=b-1", nil)
	rec := serve(http.MethodGet, "/products", c.ListProducts, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeMap(t, rec)
	assert.EqualValues(t, 1, body["total"])
	svc.AssertExpectations(t)
}

func TestCatalogController_CreateBrand(t *testing.T) {
	svc := new(mockCatalogService)
	c := NewCatalogController(svc)
	svc.On("CreateBrand", mock.Anything, mock.MatchedBy(func(b *models.Brand) bool {
		return b.Name == "Agrivet"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Brand).ID = "b-1"
	}).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/brands", strings.NewReader(`{"name":"Agrivet"}`))
	rec := serve(http.MethodPost, "/admin/brands", c.CreateBrand, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "b-1", decodeMap(t, rec)["id"])
}

func TestCatalogController_CreateProductUnknownBrand(t *testing.T) {
	svc := new(mockCatalogService)
	c := NewCatalogController(svc)
	verr := &models.ValidationError{}
	verr.Add("brand_id", "does not exist")
	svc.On("CreateProduct", mock.Anything, mock.Anything).Return(verr)

	req := httptest.NewRequest(http.MethodPost, "/admin/products", strings.NewReader(`{"name":"Dip","brand_id":"nope"}`))
	rec := serve(http.MethodPost, "/admin/products", c.CreateProduct, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "brand_id")
}

func TestCatalogController_GetNotFound(t *testing.T) {
	svc := new(mockCatalogService)
	c := NewCatalogController(svc)
	svc.On("GetProduct", mock.Anything, "p-9").Return(nil, repository.ErrNotFound)
	svc.On("GetBrand", mock.Anything, "b-9").Return(nil, repository.ErrNotFound)
	svc.On("GetFarmProduce", mock.Anything, "f-9").Return(nil, repository.ErrNotFound)

	cases := []struct {
		pattern, path string
		h             http.HandlerFunc
	}{
		{"/products/{id}", "/products/p-9", c.GetProduct},
		{"/brands/{id}", "/brands/b-9", c.GetBrand},
		{"/farm-produce/{id}", "/farm-produce/f-9", c.GetFarmProduce},
	}
	for _, tc := range cases {
		rec := serve(http.MethodGet, tc.pattern, tc.h, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, tc.path)
	}
}

func TestCatalogController_FarmProduceLifecycle(t *testing.T) {
	svc := new(mockCatalogService)
	c := NewCatalogController(svc)
	svc.On("ListFarmProduce", mock.Anything, "", utils.NewPage(1, 20)).Return(nil, 0, nil)
	svc.On("UpdateFarmProduce", mock.Anything, "f-1", mock.MatchedBy(func(fp *models.FarmProduce) bool {
		return fp.Category == "goat"
	})).Return(nil)
	svc.On("DeleteFarmProduce", mock.Anything, "f-1").Return(nil)

	rec := serve(http.MethodGet, "/farm-produce", c.ListFarmProduce, httptest.NewRequest(http.MethodGet, "/farm-produce", nil))
	assert.JSONEq(t, `{"data":[],"total":0}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodPut, "/admin/farm-produce/f-1", strings.NewReader(`{"name":"Boer goats","category":"goat"}`))
	rec = serve(http.MethodPut, "/admin/farm-produce/{id}", c.UpdateFarmProduce, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(http.MethodDelete, "/admin/farm-produce/{id}", c.DeleteFarmProduce, httptest.NewRequest(http.MethodDelete, "/admin/farm-produce/f-1", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}
