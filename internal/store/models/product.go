// Package models defines the storefront domain types: products, carts,
// orders and accounts.
package models

import (
	"fmt"

	"github.com/jhowson/creditstore/internal/common"
	"github.com/shopspring/decimal"
)

// imageBaseDir is prepended to every product image reference exactly once,
// at construction. The normalization is not idempotent, so it must never be
// reapplied to an already-normalized URL.
const imageBaseDir = "images/"

// Product is a single catalog entry. Name, price and description are
// mutable for catalog maintenance; the image URL is fixed at construction.
type Product struct {
	name        string
	price       decimal.Decimal
	imageURL    string
	description string
}

// NewProduct creates a catalog entry. The image reference is the bare file
// name (e.g. "shirt1.png") and is normalized against the image directory.
// A negative price is rejected with common.ErrInvalidArgument.
func NewProduct(name string, price decimal.Decimal, imageRef, description string) (*Product, error) {
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", common.ErrInvalidArgument)
	}
	return &Product{
		name:        name,
		price:       price,
		imageURL:    imageBaseDir + imageRef,
		description: description,
	}, nil
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) SetName(name string) {
	p.name = name
}

func (p *Product) Price() decimal.Decimal {
	return p.price
}

// SetPrice updates the price, rejecting negative values with
// common.ErrInvalidArgument.
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", common.ErrInvalidArgument)
	}
	p.price = price
	return nil
}

// PriceString formats the price as "$X.XX".
func (p *Product) PriceString() string {
	return "$" + p.price.StringFixed(2)
}

func (p *Product) ImageURL() string {
	return p.imageURL
}

func (p *Product) Description() string {
	return p.description
}

func (p *Product) SetDescription(description string) {
	p.description = description
}
