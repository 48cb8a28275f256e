package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRef is a {productId, quantity} pair projected from a cart entry.
type OrderItemRef struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderDraft is the shipping-and-items payload assembled during checkout.
// It is built when the shipping form is submitted and consumed when the
// payment step submits it to the order service.
type OrderDraft struct {
	RecipientFirstName   string         `json:"recipientFirstName"`
	RecipientLastName    string         `json:"recipientLastName"`
	RecipientMobilePhone string         `json:"recipientMobilePhone"`
	RecipientEircode     string         `json:"recipientEircode"`
	Items                []OrderItemRef `json:"items"`
}

// Empty reports whether the draft has no items, i.e. the shipping step has
// not been completed yet.
func (d OrderDraft) Empty() bool {
	return len(d.Items) == 0
}

// OrderLine is one product line of a placed order.
type OrderLine struct {
	OrderToProductID string  `json:"orderToProductId"`
	Quantity         int     `json:"quantity"`
	Product          Product `json:"product"`
}

// Order is a placed order as returned by the order service.
type Order struct {
	OrderID              string          `json:"orderId"`
	RecipientFirstName   string          `json:"recipientFirstName"`
	RecipientLastName    string          `json:"recipientLastName"`
	RecipientMobilePhone string          `json:"recipientMobilePhone"`
	RecipientEircode     string          `json:"recipientEircode"`
	Lines                []OrderLine     `json:"orderToProducts"`
	Total                decimal.Decimal `json:"total"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}
