package models

import "github.com/shopspring/decimal"

// Cart is an ordered collection of product references owned by a single
// account. Duplicates are allowed. The item count and total are cached and
// recomputed after every mutation so reads are O(1).
type Cart struct {
	items     []*Product
	itemCount int
	total     decimal.Decimal
}

func NewCart() *Cart {
	return &Cart{total: decimal.Zero}
}

// AddItem appends p to the cart.
func (c *Cart) AddItem(p *Product) {
	c.items = append(c.items, p)
	c.refresh()
}

// RemoveItem removes the first occurrence of p from the cart. Removing an
// item that is not present is a no-op.
func (c *Cart) RemoveItem(p *Product) {
	for i, item := range c.items {
		if item == p {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.refresh()
			return
		}
	}
}

// Items returns a copy of the cart contents; mutating the returned slice
// does not affect the cart.
func (c *Cart) Items() []*Product {
	return append([]*Product(nil), c.items...)
}

func (c *Cart) ItemCount() int {
	return c.itemCount
}

func (c *Cart) Total() decimal.Decimal {
	return c.total
}

// TotalString formats the cart total as "$X.XX".
func (c *Cart) TotalString() string {
	return "$" + c.total.StringFixed(2)
}

func (c *Cart) refresh() {
	c.itemCount = len(c.items)
	total := decimal.Zero
	for _, p := range c.items {
		total = total.Add(p.Price())
	}
	c.total = total
}
