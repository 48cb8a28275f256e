package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"crickmart/internal/domain"
)

type productEnvelope struct {
	Data struct {
		Product domain.Product `json:"product"`
	} `json:"data"`
}

type productListEnvelope struct {
	Data struct {
		Products []domain.Product `json:"products"`
	} `json:"data"`
}

// ProductByID fetches a single product's detail.
func (c *Client) ProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	var envelope productEnvelope
	path := "/products/" + url.PathEscape(productID)
	if err := c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, err
	}
	product := envelope.Data.Product
	return &product, nil
}

// ProductsByFilter fetches products matching category and brand. Style is
// only sent when set.
func (c *Client) ProductsByFilter(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := url.Values{}
	query.Set("productCategory", strconv.Itoa(filter.Category))
	query.Set("productBrand", strconv.Itoa(filter.Brand))
	if filter.Style != 0 {
		query.Set("productStyle", strconv.Itoa(filter.Style))
	}

	var envelope productListEnvelope
	path := "/products/get/filter?" + query.Encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Products, nil
}
