package api

import (
	"context"
	"net/http"
	"net/url"

	"crickmart/internal/domain"
)

type orderListEnvelope struct {
	Data struct {
		Orders []domain.Order `json:"orders"`
	} `json:"data"`
}

// Checkout submits the assembled order draft and returns the created order.
func (c *Client) Checkout(ctx context.Context, draft domain.OrderDraft) (*domain.Order, error) {
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "/orders/checkout", draft, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Orders lists the authenticated user's orders.
func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	var envelope orderListEnvelope
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Orders, nil
}

// OrderByID fetches a single order's detail.
func (c *Client) OrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	path := "/orders/" + url.PathEscape(orderID)
	if err := c.do(ctx, http.MethodGet, path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
