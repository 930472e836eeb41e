package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewOrder_SnapshotsItems(t *testing.T) {
	shirt := mustProduct(t, "shirt", "19.99")
	hat := mustProduct(t, "hat", "12.50")

	src := []*Product{shirt, hat}
	o := NewOrder(src, decimal.RequireFromString("40.29"), 2)

	// Mutating the source collection after construction must not change
	// the order's snapshot.
	src[0] = nil
	src = src[:1]

	require.Equal(t, []*Product{shirt, hat}, o.Items())
	require.Equal(t, 2, o.Quantity())
	require.Equal(t, "$40.29", o.TotalString())
}

func TestOrder_ItemsReturnsCopy(t *testing.T) {
	shirt := mustProduct(t, "shirt", "19.99")
	o := NewOrder([]*Product{shirt}, shirt.Price(), 1)

	got := o.Items()
	got[0] = nil
	require.Equal(t, []*Product{shirt}, o.Items())
}

func TestOrder_TotalIsStoredNotRecomputed(t *testing.T) {
	shirt := mustProduct(t, "shirt", "19.99")
	// Caller-supplied total includes the shipping surcharge; the order
	// must not second-guess it.
	o := NewOrder([]*Product{shirt}, decimal.RequireFromString("27.79"), 1)
	require.Equal(t, "$27.79", o.TotalString())
}

func TestOrder_DateString(t *testing.T) {
	o := NewOrder(nil, decimal.Zero, 0)

	require.WithinDuration(t, time.Now(), o.Date(), time.Minute)
	require.Equal(t, o.Date().UTC().Format("2/Jan/2006"), o.DateString())
	require.Regexp(t, `^\d{1,2}/[A-Z][a-z]{2}/\d{4}$`, o.DateString())
}

func TestOrder_IDsAreUnique(t *testing.T) {
	a := NewOrder(nil, decimal.Zero, 0)
	b := NewOrder(nil, decimal.Zero, 0)
	require.NotEqual(t, a.ID(), b.ID())
}
