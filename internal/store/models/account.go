package models

import (
	"fmt"

	"github.com/jhowson/creditstore/internal/common"
	"github.com/shopspring/decimal"
)

// ShippingSurcharge is the fixed charge added to every whole-cart checkout.
// Single-product purchases do not include it and do not touch the cart;
// that asymmetry is existing storefront policy, kept pending product-owner
// clarification.
var ShippingSurcharge = decimal.New(780, -2) // 7.80

// Account holds a user's credentials, credit balance, cart and order
// history. The username is its immutable identity; uniqueness across the
// store is enforced by the registry, not here.
type Account struct {
	username string
	password string
	balance  decimal.Decimal
	cart     *Cart
	orders   []*Order
}

// NewAccount creates a fresh account with a zero balance.
func NewAccount(username, password string) *Account {
	return &Account{
		username: username,
		password: password,
		balance:  decimal.Zero,
		cart:     NewCart(),
	}
}

// LoadAccount restores an account from persisted state, keeping its stored
// balance. The cart and order history always start empty; neither survives
// a restart.
func LoadAccount(username, password string, balance decimal.Decimal) *Account {
	a := NewAccount(username, password)
	a.balance = balance
	return a
}

func (a *Account) Username() string {
	return a.username
}

// Password returns the plaintext credential. It is compared exactly at
// login, purchase re-authentication and password change, and round-trips
// the persisted record format unchanged.
func (a *Account) Password() string {
	return a.password
}

func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

// BalanceString formats the balance as "$X.XX".
func (a *Account) BalanceString() string {
	return "$" + a.balance.StringFixed(2)
}

func (a *Account) Cart() *Cart {
	return a.cart
}

// Orders returns a copy of the order history, oldest first.
func (a *Account) Orders() []*Order {
	return append([]*Order(nil), a.orders...)
}

// AddCredit increases the balance by amount. Negative amounts are rejected
// with common.ErrInvalidArgument; no upper bound is enforced here.
func (a *Account) AddCredit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: amount must be a positive value", common.ErrInvalidArgument)
	}
	a.balance = a.balance.Add(amount)
	return nil
}

// SetPassword replaces the password after verifying the current one.
// A wrong old password fails with common.ErrAuthenticationFailed; a new
// password equal to the old one fails with common.ErrInvalidArgument.
func (a *Account) SetPassword(oldPass, newPass string) error {
	if oldPass != a.password {
		return fmt.Errorf("%w: given password does not match current password", common.ErrAuthenticationFailed)
	}
	if newPass == oldPass {
		return fmt.Errorf("%w: new password cannot be the same as old password", common.ErrInvalidArgument)
	}
	a.password = newPass
	return nil
}

// Purchase converts the whole cart into an order. The charged amount is the
// cart total plus the shipping surcharge. On success the cart is replaced
// with an empty one.
//
// The caller must re-supply the account password; see purchase for the
// shared guard protocol.
func (a *Account) Purchase(password string) (*Order, error) {
	items := a.cart.Items()
	amount := a.cart.Total().Add(ShippingSurcharge)
	quantity := a.cart.ItemCount()

	order, err := a.purchase(items, amount, quantity, password)
	if err != nil {
		return nil, err
	}

	a.cart = NewCart()
	return order, nil
}

// PurchaseItem buys a single product directly, bypassing the cart. No
// shipping surcharge is added, and the cart is left untouched even when the
// product is also sitting in it.
func (a *Account) PurchaseItem(p *Product, password string) (*Order, error) {
	return a.purchase([]*Product{p}, p.Price(), 1, password)
}

// purchase runs the shared transaction protocol: the funds guard comes
// first, then password re-authentication, and only then the commit. The
// commit is atomic with respect to the caller: the order append and the
// balance debit either both happen or neither does.
func (a *Account) purchase(items []*Product, amount decimal.Decimal, quantity int, password string) (*Order, error) {
	if a.balance.LessThan(amount) {
		return nil, fmt.Errorf("%w: balance %s is less than %s", common.ErrInsufficientFunds,
			a.balance.StringFixed(2), amount.StringFixed(2))
	}
	if password != a.password {
		return nil, common.ErrAuthenticationFailed
	}

	order := NewOrder(items, amount, quantity)
	a.orders = append(a.orders, order)
	a.balance = a.balance.Sub(amount)
	return order, nil
}
