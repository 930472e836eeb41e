// Package registry holds the in-memory product catalog and account
// directory and implements account creation, authentication and the tiered
// catalog search.
package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jhowson/creditstore/internal/common"
	"github.com/jhowson/creditstore/internal/store/models"
	"github.com/shopspring/decimal"
)

// Registry is the directory of all products and accounts. A product's
// catalog position is its implicit numeric id. Accounts are keyed by
// username for lookup, with insertion order kept separately because the
// save-file ordering is observable.
//
// A single mutex serializes directory and catalog mutation; CreateAccount
// is check-then-act and must not race with itself. The registry does not
// hold a current-account pointer: sessions are explicit handles owned by
// the caller (see the services package).
type Registry struct {
	mu       sync.RWMutex
	products []*models.Product
	accounts map[string]*models.Account
	names    []string
}

func New() *Registry {
	return &Registry{
		accounts: make(map[string]*models.Account),
	}
}

// CreateProduct appends a new product to the end of the catalog.
func (r *Registry) CreateProduct(name string, price decimal.Decimal, imageRef, description string) (*models.Product, error) {
	p, err := models.NewProduct(name, price, imageRef, description)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = append(r.products, p)
	return p, nil
}

// Products returns a copy of the catalog in catalog order.
func (r *Registry) Products() []*models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*models.Product(nil), r.products...)
}

// Product returns the catalog entry at position id, or common.ErrNotFound
// when the position is out of range.
func (r *Registry) Product(id int) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id < 0 || id >= len(r.products) {
		return nil, fmt.Errorf("%w: no product with id %d", common.ErrNotFound, id)
	}
	return r.products[id], nil
}

// CreateAccount adds a fresh zero-balance account. Usernames are unique
// across the directory (case-sensitive exact match); a collision fails
// with common.ErrDuplicateUsername.
func (r *Registry) CreateAccount(username, password string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.add(models.NewAccount(username, password))
}

// LoadAccount restores a persisted account with its stored balance. The
// uniqueness rule applies on the load path too, so a corrupt save file
// cannot smuggle in a duplicate username.
func (r *Registry) LoadAccount(username, password string, balance decimal.Decimal) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.add(models.LoadAccount(username, password, balance))
}

func (r *Registry) add(a *models.Account) (*models.Account, error) {
	if _, ok := r.accounts[a.Username()]; ok {
		return nil, fmt.Errorf("%w: %q", common.ErrDuplicateUsername, a.Username())
	}
	r.accounts[a.Username()] = a
	r.names = append(r.names, a.Username())
	return a, nil
}

// Accounts returns all accounts in insertion order.
func (r *Registry) Accounts() []*models.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Account, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.accounts[name])
	}
	return out
}

// Authenticate verifies a credential pair and returns the matching
// account. An unknown username and a wrong password both fail with the
// same common.ErrAuthenticationFailed, so callers cannot enumerate
// usernames through the error.
func (r *Registry) Authenticate(username, password string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[username]
	if !ok || a.Password() != password {
		return nil, common.ErrAuthenticationFailed
	}
	return a, nil
}

// Search ranks catalog products against a query, case-insensitively, in
// three tiers: name-prefix matches first, then name-substring matches,
// then description-substring matches. Within a tier products appear in
// catalog order, and a product already ranked by an earlier tier is
// skipped. The empty query matches everything, so a blank search returns
// the full catalog in catalog order.
func (r *Registry) Search(query string) []*models.Product {
	query = strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]*models.Product, 0, len(r.products))
	seen := make(map[*models.Product]struct{}, len(r.products))

	keep := func(p *models.Product) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		results = append(results, p)
	}

	for _, p := range r.products {
		if strings.HasPrefix(strings.ToLower(p.Name()), query) {
			keep(p)
		}
	}
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name()), query) {
			keep(p)
		}
	}
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Description()), query) {
			keep(p)
		}
	}

	return results
}
