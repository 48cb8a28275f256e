package domain

import (
	"github.com/shopspring/decimal"
)

// Product represents a catalog product as returned by the product service.
// The client treats products as immutable snapshots: a cart entry keeps the
// copy captured at add time, not a live reference.
type Product struct {
	ProductID       string          `json:"productId"`
	ProductName     string          `json:"productName"`
	Price           decimal.Decimal `json:"price"`
	ProductCategory int             `json:"productCategory"`
	ProductBrand    int             `json:"productBrand"`
	ProductStyle    int             `json:"productStyle,omitempty"`
	Description     string          `json:"description,omitempty"`
	Size            string          `json:"size,omitempty"`
	Weight          string          `json:"weight,omitempty"`
	Images          []string        `json:"images,omitempty"`
}

// ProductFilter holds catalog filter criteria. Style is optional and omitted
// from the query string when zero.
type ProductFilter struct {
	Category int
	Brand    int
	Style    int
}
