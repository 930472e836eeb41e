package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is an immutable snapshot of a completed purchase. The item list is
// copied at construction so later cart mutations cannot alter it, and the
// order date is captured at construction time.
type Order struct {
	id       uuid.UUID
	items    []*Product
	total    decimal.Decimal
	quantity int
	date     time.Time
}

// NewOrder builds an order from a snapshot of items. The total is stored as
// given and never recomputed from the items: the shipping surcharge, when
// applicable, is already folded in by the caller.
func NewOrder(items []*Product, total decimal.Decimal, quantity int) *Order {
	return &Order{
		id:       uuid.New(),
		items:    append([]*Product(nil), items...),
		total:    total,
		quantity: quantity,
		date:     time.Now(),
	}
}

// ID is the order reference number.
func (o *Order) ID() uuid.UUID {
	return o.id
}

// Items returns a copy of the purchased items.
func (o *Order) Items() []*Product {
	return append([]*Product(nil), o.items...)
}

func (o *Order) Total() decimal.Decimal {
	return o.total
}

// TotalString formats the charged total as "$X.XX".
func (o *Order) TotalString() string {
	return "$" + o.total.StringFixed(2)
}

func (o *Order) Quantity() int {
	return o.quantity
}

func (o *Order) Date() time.Time {
	return o.date
}

// DateString renders the order date as day/month/year, e.g. "28/Aug/2026".
// The date is taken in UTC so the result does not depend on locale or zone.
func (o *Order) DateString() string {
	return o.date.UTC().Format("2/Jan/2006")
}
