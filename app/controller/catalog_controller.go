package controller

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"fnp-marketplace/app/response"
	"fnp-marketplace/logger"
	"fnp-marketplace/models"
	"fnp-marketplace/utils"
)

// CatalogController handles HTTP requests for brands, products and farm produce
type CatalogController struct {
	service CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(svc CatalogService) *CatalogController {
	return &CatalogController{service: svc}
}

// ListBrands handles GET /brands?p=1&search=
func (c *CatalogController) ListBrands(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	brands, total, err := c.service.ListBrands(r.Context(), strings.TrimSpace(q.Get("search")), utils.PageFromQuery(q))
	if err != nil {
		response.FromError(w, "ListBrands", err)
		return
	}
	response.JSON(w, http.StatusOK, models.NewListResponse(brands, total))
}

// GetBrand handles GET /brands/{id}
func (c *CatalogController) GetBrand(w http.ResponseWriter, r *http.Request) {
	brand, err := c.service.GetBrand(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.FromError(w, "GetBrand", err)
		return
	}
	response.JSON(w, http.StatusOK, brand)
}

// CreateBrand handles POST /admin/brands
func (c *CatalogController) CreateBrand(w http.ResponseWriter, r *http.Request) {
	logger.Log.Infof("📥 CreateBrand: Received %s request to %s", r.Method, r.URL.Path)

	var brand models.Brand
	if err := decodeBody(w, r, &brand); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := c.service.CreateBrand(r.Context(), &brand); err != nil {
		response.FromError(w, "CreateBrand", err)
		return
	}

	logger.Log.Infof("✅ CreateBrand: Created brand %s", brand.ID)
	response.JSON(w, http.StatusCreated, &brand)
}

// UpdateBrand handles PUT /admin/brands/{id}
func (c *CatalogController) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.Log.Infof("📥 UpdateBrand: Received %s request for id=%s", r.Method, id)

	var brand models.Brand
	if err := decodeBody(w, r, &brand); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := c.service.UpdateBrand(r.Context(), id, &brand); err != nil {
		response.FromError(w, "UpdateBrand", err)
		return
	}
	response.JSON(w, http.StatusOK, &brand)
}

// DeleteBrand handles DELETE /admin/brands/{id}. Products of the brand keep existing without one.
func (c *CatalogController) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.Log.Infof("📥 DeleteBrand: Received %s request for id=%s", r.Method, id)

	if err := c.service.DeleteBrand(r.Context(), id); err != nil {
		response.FromError(w, "DeleteBrand", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListProducts handles GET /products?p=1&search=&brand_id=
func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ProductFilter{
		Search:  strings.TrimSpace(q.Get("search")),
		BrandID: strings.TrimSpace(q.Get("brand_id")),
	}
	products, total, err := c.service.ListProducts(r.Context(), filter, utils.PageFromQuery(q))
	if err != nil {
		response.FromError(w, "ListProducts", err)
		return
	}
	response.JSON(w, http.StatusOK, models.NewListResponse(products, total))
}

// GetProduct handles GET /products/{id}
func (c *CatalogController) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := c.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.FromError(w, "GetProduct", err)
		return
	}
	response.JSON(w, http.StatusOK, product)
}

// CreateProduct handles POST /admin/products
// Example request: {"name": "Dip Wash 1L", "brand_id": "...", "category": "animal health", "price": 1250}
func (c *CatalogController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	logger.Log.Infof("📥 CreateProduct: Received %s request to %s", r.Method, r.URL.Path)

	var product models.Product
	if err := decodeBody(w, r, &product); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := c.service.CreateProduct(r.Context(), &product); err != nil {
		response.FromError(w, "CreateProduct", err)
		return
	}

	logger.Log.Infof("✅ CreateProduct: Created product %s", product.ID)
	response.JSON(w, http.StatusCreated, &product)
}

// UpdateProduct handles PUT /admin/products/{id}
func (c *CatalogController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.Log.Infof("📥 UpdateProduct: Received %s request for id=%s", r.Method, id)

	var product models.Product
	if err := decodeBody(w, r, &product); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := c.service.UpdateProduct(r.Context(), id, &product); err != nil {
		response.FromError(w, "UpdateProduct", err)
		return
	}
	response.JSON(w, http.StatusOK, &product)
}

// DeleteProduct handles DELETE /admin/products/{id}
func (c *CatalogController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.Log.Infof("📥 DeleteProduct: Received %s request for id=%s", r.Method, id)

	if err := c.service.DeleteProduct(r.Context(), id); err != nil {
		response.FromError(w, "DeleteProduct", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFarmProduce handles GET /farm-produce?p=1&search=
func (c *CatalogController) ListFarmProduce(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, total, err := c.service.ListFarmProduce(r.Context(), strings.TrimSpace(q.Get("search")), utils.PageFromQuery(q))
	if err != nil {
		response.FromError(w, "ListFarmProduce", err)
		return
	}
	response.JSON(w, http.StatusOK, models.NewListResponse(items, total))
}

// GetFarmProduce handles GET /farm-produce/{id}
func (c *CatalogController) GetFarmProduce(w http.ResponseWriter, r *http.Request) {
	item, err := c.service.GetFarmProduce(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.FromError(w, "GetFarmProduce", err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

// CreateFarmProduce handles POST /admin/farm-produce
// Example request: {"name": "Weaner steers", "category": "beef"}
func (c *CatalogController) CreateFarmProduce(w http.ResponseWriter, r *http.Request) {
	logger.Log.Infof("📥 CreateFarmProduce: Received %s request to %s", r.Method, r.URL.Path)

	var item models.FarmProduce
	if err := decodeBody(w, r, &item); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := c.service.CreateFarmProduce(r.Context(), &item); err != nil {
		response.FromError(w, "CreateFarmProduce", err)
		return
	}

	logger.Log.Infof("✅ CreateFarmProduce: Created farm produce %s", item.ID)
	response.JSON(w, http.StatusCreated, &item)
}

// UpdateFarmProduce handles PUT /admin/farm-produce/{id}
func (c *CatalogController) UpdateFarmProduce(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.Log.Infof("📥 UpdateFarmProduce: Received %s request for id=%s", r.Method, id)

	var item models.FarmProduce
	if err := decodeBody(w, r, &item); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := c.service.UpdateFarmProduce(r.Context(), id, &item); err != nil {
		response.FromError(w, "UpdateFarmProduce", err)
		return
	}
	response.JSON(w, http.StatusOK, &item)
}

// DeleteFarmProduce handles DELETE /admin/farm-produce/{id}
func (c *CatalogController) DeleteFarmProduce(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.Log.Infof("📥 DeleteFarmProduce: Received %s request for id=%s", r.Method, id)

	if err := c.service.DeleteFarmProduce(r.Context(), id); err != nil {
		response.FromError(w, "DeleteFarmProduce", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
