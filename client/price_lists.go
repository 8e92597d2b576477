package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"fnp-marketplace/models"
	"fnp-marketplace/pricing"
)

type bulkFillBody struct {
	Category  string `json:"category"`
	PriceType string `json:"priceType"`
	Value     int64  `json:"value"`
}

// PriceListPage is one page of producer price lists
type PriceListPage struct {
	Data  []*pricing.ProducerPriceList
	Total int
}

// SignIn exchanges credentials for a token and keeps it for later requests
func (c *Client) SignIn(ctx context.Context, email, password string) (*models.SignInResponse, error) {
	data, err := c.sendJSON(ctx, http.MethodPost, "/auth/sign-in", models.SignInRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	resp, err := decode[models.SignInResponse](data)
	if err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return resp, nil
}

// Grades returns the grade descriptors of one category. An unknown category yields none.
func (c *Client) Grades(ctx context.Context, category string) ([]pricing.GradeDescriptor, error) {
	page, err := listResource[pricing.GradeDescriptor](ctx, c, byID("/grades", category), nil)
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// ListPriceLists returns one page of price lists. Use WithFilter("client_id", id) to narrow by client.
func (c *Client) ListPriceLists(ctx context.Context, q *ListQuery) (*PriceListPage, error) {
	data, err := c.get(ctx, "/producer-price-lists", q.Values())
	if err != nil {
		return nil, err
	}
	raw, err := decode[models.ListResponse[json.RawMessage]](data)
	if err != nil {
		return nil, err
	}
	out := &PriceListPage{Data: make([]*pricing.ProducerPriceList, 0, len(raw.Data)), Total: raw.Total}
	for i, item := range raw.Data {
		l, err := pricing.ParsePriceList(item)
		if err != nil {
			return nil, fmt.Errorf("failed to decode price list %d: %w", i, err)
		}
		out.Data = append(out.Data, l)
	}
	return out, nil
}

// GetPriceList returns a price list with its visible categories
func (c *Client) GetPriceList(ctx context.Context, id string) (*pricing.ProducerPriceList, error) {
	data, err := c.get(ctx, byID("/producer-price-lists", id), nil)
	if err != nil {
		return nil, err
	}
	return parsePriceList(data)
}

// PriceListBreakdown returns the display-ready form of a price list
func (c *Client) PriceListBreakdown(ctx context.Context, id string) (*pricing.PriceListBreakdown, error) {
	return getResource[pricing.PriceListBreakdown](ctx, c, byID("/producer-price-lists", id)+"/breakdown")
}

// CreatePriceList stores a new price list and returns it with its assigned id
func (c *Client) CreatePriceList(ctx context.Context, l *pricing.ProducerPriceList) (*pricing.ProducerPriceList, error) {
	data, err := c.sendJSON(ctx, http.MethodPost, "/admin/producer-price-lists", l)
	if err != nil {
		return nil, err
	}
	return parsePriceList(data)
}

// UpdatePriceList replaces the stored price list with id l.ID
func (c *Client) UpdatePriceList(ctx context.Context, l *pricing.ProducerPriceList) (*pricing.ProducerPriceList, error) {
	if l.ID == "" {
		return nil, fmt.Errorf("price list has no id")
	}
	data, err := c.sendJSON(ctx, http.MethodPut, byID("/admin/producer-price-lists", l.ID), l)
	if err != nil {
		return nil, err
	}
	return parsePriceList(data)
}

// BulkFillPriceList sets one price type of every grade of a category
func (c *Client) BulkFillPriceList(ctx context.Context, id string, category pricing.Category, priceType pricing.PriceType, value int64) (*pricing.ProducerPriceList, error) {
	req := bulkFillBody{Category: string(category), PriceType: string(priceType), Value: value}
	data, err := c.sendJSON(ctx, http.MethodPost, byID("/admin/producer-price-lists", id)+"/bulk-fill", req)
	if err != nil {
		return nil, err
	}
	return parsePriceList(data)
}

// DeletePriceList removes a price list
func (c *Client) DeletePriceList(ctx context.Context, id string) error {
	return deleteResource(ctx, c, byID("/admin/producer-price-lists", id))
}

// PriceListPDF downloads the rendered PDF of a price list
func (c *Client) PriceListPDF(ctx context.Context, id string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, c.endpoint(byID("/producer-price-lists", id)+"/pdf", nil), nil, "")
}

func parsePriceList(data []byte) (*pricing.ProducerPriceList, error) {
	l, err := pricing.ParsePriceList(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode price list: %w", err)
	}
	return l, nil
}
