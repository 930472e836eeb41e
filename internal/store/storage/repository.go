// Package storage is the persistence port for the storefront. The core
// loads accounts and products through it at startup and writes accounts
// back after any balance, credential or order-history mutation. The record
// encoding is the collaborator's concern, not the domain's.
package storage

import (
	"context"

	"github.com/shopspring/decimal"
)

// AccountRecord is the persisted shape of an account.
type AccountRecord struct {
	Username string
	Password string
	Balance  decimal.Decimal
}

// ProductRecord is the persisted shape of a catalog entry. ImageRef is the
// bare file name; normalization happens at product construction.
type ProductRecord struct {
	Name        string
	Price       decimal.Decimal
	ImageRef    string
	Description string
}

// Repository loads and saves storefront records. Implementations may be
// slow or fail; callers treat save failures as warnings and never roll
// back the in-memory state that triggered the save.
type Repository interface {
	LoadAccounts(ctx context.Context) ([]AccountRecord, error)
	LoadProducts(ctx context.Context) ([]ProductRecord, error)
	SaveAccounts(ctx context.Context, accounts []AccountRecord) error
}
