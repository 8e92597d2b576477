package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"fnp-marketplace/models"
)

// Agrochemical is a crop-protection or animal-health product sold on the marketplace
type Agrochemical struct {
	ID                string    `json:"id,omitempty"`
	Name              string    `json:"name"`
	BrandID           string    `json:"brand_id,omitempty"`
	ActiveIngredients []string  `json:"active_ingredients,omitempty"`
	Category          string    `json:"category,omitempty"`
	Targets           []string  `json:"targets,omitempty"`
	Description       string    `json:"description,omitempty"`
	Price             int64     `json:"price"`
	ImageURL          string    `json:"image_url,omitempty"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
}

// BuyerContact is a buyer a farmer can reach about produce
type BuyerContact struct {
	ID                 string    `json:"id,omitempty"`
	Name               string    `json:"name"`
	Company            string    `json:"company,omitempty"`
	Phone              string    `json:"phone,omitempty"`
	Email              string    `json:"email,omitempty"`
	Location           string    `json:"location,omitempty"`
	ProductsOfInterest []string  `json:"products_of_interest,omitempty"`
	CreatedAt          time.Time `json:"created_at,omitempty"`
}

func listResource[T any](ctx context.Context, c *Client, path string, q *ListQuery) (*models.ListResponse[T], error) {
	data, err := c.get(ctx, path, q.Values())
	if err != nil {
		return nil, err
	}
	out, err := decode[models.ListResponse[T]](data)
	if err != nil {
		return nil, err
	}
	if out.Data == nil {
		out.Data = []T{}
	}
	return out, nil
}

func getResource[T any](ctx context.Context, c *Client, path string) (*T, error) {
	data, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return decode[T](data)
}

func createResource[T any](ctx context.Context, c *Client, path string, in any) (*T, error) {
	data, err := c.sendJSON(ctx, http.MethodPost, path, in)
	if err != nil {
		return nil, err
	}
	return decode[T](data)
}

func updateResource[T any](ctx context.Context, c *Client, path string, in any) (*T, error) {
	data, err := c.sendJSON(ctx, http.MethodPut, path, in)
	if err != nil {
		return nil, err
	}
	return decode[T](data)
}

func deleteResource(ctx context.Context, c *Client, path string) error {
	_, err := c.send(ctx, http.MethodDelete, path, nil, "")
	return err
}

func byID(base, id string) string {
	return base + "/" + url.PathEscape(id)
}

// Users

func (c *Client) ListUsers(ctx context.Context, q *ListQuery) (*models.ListResponse[models.User], error) {
	return listResource[models.User](ctx, c, "/admin/users", q)
}

func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	return getResource[models.User](ctx, c, byID("/admin/users", id))
}

func (c *Client) CreateUser(ctx context.Context, in models.UserInput) (*models.User, error) {
	return createResource[models.User](ctx, c, "/admin/users", in)
}

func (c *Client) UpdateUser(ctx context.Context, id string, in models.UserInput) (*models.User, error) {
	return updateResource[models.User](ctx, c, byID("/admin/users", id), in)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return deleteResource(ctx, c, byID("/admin/users", id))
}

// Brands

func (c *Client) ListBrands(ctx context.Context, q *ListQuery) (*models.ListResponse[models.Brand], error) {
	return listResource[models.Brand](ctx, c, "/brands", q)
}

func (c *Client) GetBrand(ctx context.Context, id string) (*models.Brand, error) {
	return getResource[models.Brand](ctx, c, byID("/brands", id))
}

func (c *Client) CreateBrand(ctx context.Context, b *models.Brand) (*models.Brand, error) {
	return createResource[models.Brand](ctx, c, "/admin/brands", b)
}

func (c *Client) UpdateBrand(ctx context.Context, id string, b *models.Brand) (*models.Brand, error) {
	return updateResource[models.Brand](ctx, c, byID("/admin/brands", id), b)
}

func (c *Client) DeleteBrand(ctx context.Context, id string) error {
	return deleteResource(ctx, c, byID("/admin/brands", id))
}

// Products

func (c *Client) ListProducts(ctx context.Context, q *ListQuery) (*models.ListResponse[models.Product], error) {
	return listResource[models.Product](ctx, c, "/products", q)
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return getResource[models.Product](ctx, c, byID("/products", id))
}

func (c *Client) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	return createResource[models.Product](ctx, c, "/admin/products", p)
}

func (c *Client) UpdateProduct(ctx context.Context, id string, p *models.Product) (*models.Product, error) {
	return updateResource[models.Product](ctx, c, byID("/admin/products", id), p)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return deleteResource(ctx, c, byID("/admin/products", id))
}

// Farm produce

func (c *Client) ListFarmProduce(ctx context.Context, q *ListQuery) (*models.ListResponse[models.FarmProduce], error) {
	return listResource[models.FarmProduce](ctx, c, "/farm-produce", q)
}

func (c *Client) GetFarmProduce(ctx context.Context, id string) (*models.FarmProduce, error) {
	return getResource[models.FarmProduce](ctx, c, byID("/farm-produce", id))
}

func (c *Client) CreateFarmProduce(ctx context.Context, fp *models.FarmProduce) (*models.FarmProduce, error) {
	return createResource[models.FarmProduce](ctx, c, "/admin/farm-produce", fp)
}

func (c *Client) UpdateFarmProduce(ctx context.Context, id string, fp *models.FarmProduce) (*models.FarmProduce, error) {
	return updateResource[models.FarmProduce](ctx, c, byID("/admin/farm-produce", id), fp)
}

func (c *Client) DeleteFarmProduce(ctx context.Context, id string) error {
	return deleteResource(ctx, c, byID("/admin/farm-produce", id))
}

// Agrochemicals

func (c *Client) ListAgrochemicals(ctx context.Context, q *ListQuery) (*models.ListResponse[Agrochemical], error) {
	return listResource[Agrochemical](ctx, c, "/agrochemicals", q)
}

func (c *Client) GetAgrochemical(ctx context.Context, id string) (*Agrochemical, error) {
	return getResource[Agrochemical](ctx, c, byID("/agrochemicals", id))
}

func (c *Client) CreateAgrochemical(ctx context.Context, a *Agrochemical) (*Agrochemical, error) {
	return createResource[Agrochemical](ctx, c, "/admin/agrochemicals", a)
}

func (c *Client) UpdateAgrochemical(ctx context.Context, id string, a *Agrochemical) (*Agrochemical, error) {
	return updateResource[Agrochemical](ctx, c, byID("/admin/agrochemicals", id), a)
}

func (c *Client) DeleteAgrochemical(ctx context.Context, id string) error {
	return deleteResource(ctx, c, byID("/admin/agrochemicals", id))
}

// Buyer contacts

func (c *Client) ListBuyerContacts(ctx context.Context, q *ListQuery) (*models.ListResponse[BuyerContact], error) {
	return listResource[BuyerContact](ctx, c, "/admin/buyer-contacts", q)
}

func (c *Client) GetBuyerContact(ctx context.Context, id string) (*BuyerContact, error) {
	return getResource[BuyerContact](ctx, c, byID("/admin/buyer-contacts", id))
}

func (c *Client) CreateBuyerContact(ctx context.Context, b *BuyerContact) (*BuyerContact, error) {
	return createResource[BuyerContact](ctx, c, "/admin/buyer-contacts", b)
}

func (c *Client) UpdateBuyerContact(ctx context.Context, id string, b *BuyerContact) (*BuyerContact, error) {
	return updateResource[BuyerContact](ctx, c, byID("/admin/buyer-contacts", id), b)
}

func (c *Client) DeleteBuyerContact(ctx context.Context, id string) error {
	return deleteResource(ctx, c, byID("/admin/buyer-contacts", id))
}
