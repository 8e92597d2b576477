package models

import (
	"strings"
	"time"
)

// Brand is a manufacturer whose products are listed in the marketplace
type Brand struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate trims the brand and checks its required fields
func (b *Brand) Validate() error {
	verr := &ValidationError{}
	b.Name = strings.TrimSpace(b.Name)
	b.Description = strings.TrimSpace(b.Description)
	if b.Name == "" {
		verr.Add("name", "is required")
	}
	return verr.Err()
}

// Product is a farm input sold through the marketplace. Price is in minor units.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	BrandID     string    `json:"brand_id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate trims the product and checks its required fields
func (p *Product) Validate() error {
	verr := &ValidationError{}
	p.Name = strings.TrimSpace(p.Name)
	p.BrandID = strings.TrimSpace(p.BrandID)
	p.Category = strings.TrimSpace(p.Category)
	if p.Name == "" {
		verr.Add("name", "is required")
	}
	if p.Price < 0 {
		verr.Add("price", "must not be negative")
	}
	return verr.Err()
}

// ProductFilter narrows GET /products
type ProductFilter struct {
	Search  string
	BrandID string
}

// FarmProduce is a produce line a price list category can be linked to through farm_produce_id.
// Category holds a pricing category name; the service checks it against the grade table.
type FarmProduce struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Image is an uploaded, optimized picture held by one of the image stores
type Image struct {
	ID          string    `json:"id"`
	Store       string    `json:"store"`
	ObjectKey   string    `json:"-"`
	URL         string    `json:"url"`
	ThumbKey    string    `json:"-"`
	ThumbURL    string    `json:"thumb_url"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListResponse is the {data, total} envelope of every paginated endpoint
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// NewListResponse never emits a null data array
func NewListResponse[T any](data []T, total int) ListResponse[T] {
	if data == nil {
		data = []T{}
	}
	return ListResponse[T]{Data: data, Total: total}
}

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}
