// Package services contains the storefront business logic: loading the
// catalog and account directory at startup, signup and login, the purchase
// operations, and write-through persistence of account state.
package services

import (
	"context"
	"fmt"

	"github.com/jhowson/creditstore/internal/common"
	"github.com/jhowson/creditstore/internal/logging"
	"github.com/jhowson/creditstore/internal/store/models"
	"github.com/jhowson/creditstore/internal/store/registry"
	"github.com/jhowson/creditstore/internal/store/storage"
	"github.com/shopspring/decimal"
)

// Session is the handle for an authenticated account. There is no
// process-wide current-account pointer; whoever needs the active account
// holds a Session and passes it to the operations below.
type Session struct {
	account *models.Account
}

// NewSession wraps an authenticated account in a session handle. Login is
// the normal way to obtain one.
func NewSession(a *models.Account) *Session {
	return &Session{account: a}
}

func (s *Session) Account() *models.Account {
	return s.account
}

func (s *Session) Username() string {
	return s.account.Username()
}

// StoreService wires the registry to the persistence port. Every mutation
// of account state (signup, purchase, credit, password change) is written
// through to the port; a failed save is logged as a warning and reported
// as common.ErrPersistenceFailure, but never rolls back the in-memory
// change.
type StoreService struct {
	registry *registry.Registry
	repo     storage.Repository
	log      logging.Logger
}

func NewStoreService(reg *registry.Registry, repo storage.Repository, log logging.Logger) *StoreService {
	return &StoreService{
		registry: reg,
		repo:     repo,
		log:      log,
	}
}

// Load populates the registry from the persistence port. Load problems are
// warnings: a store with a missing or unreadable data file starts with
// whatever did load.
func (s *StoreService) Load(ctx context.Context) {
	products, err := s.repo.LoadProducts(ctx)
	if err != nil {
		s.log.Warn(ctx, "product data was not read", "error", err)
	}
	for _, rec := range products {
		if _, err := s.registry.CreateProduct(rec.Name, rec.Price, rec.ImageRef, rec.Description); err != nil {
			s.log.Warn(ctx, "skipping product record", "name", rec.Name, "error", err)
		}
	}

	accounts, err := s.repo.LoadAccounts(ctx)
	if err != nil {
		s.log.Warn(ctx, "account data was not read", "error", err)
	}
	for _, rec := range accounts {
		if _, err := s.registry.LoadAccount(rec.Username, rec.Password, rec.Balance); err != nil {
			s.log.Warn(ctx, "skipping account record", "username", rec.Username, "error", err)
		}
	}

	s.log.Info(ctx, "store loaded",
		"products", len(s.registry.Products()),
		"accounts", len(s.registry.Accounts()))
}

// Register creates a zero-balance account and persists the directory. On
// a save failure the returned account is valid and registered; the error
// matches common.ErrPersistenceFailure.
func (s *StoreService) Register(ctx context.Context, username, password string) (*models.Account, error) {
	account, err := s.registry.CreateAccount(username, password)
	if err != nil {
		return nil, err
	}
	return account, s.persist(ctx)
}

// Login authenticates a credential pair and returns a session handle.
func (s *StoreService) Login(_ context.Context, username, password string) (*Session, error) {
	account, err := s.registry.Authenticate(username, password)
	if err != nil {
		return nil, err
	}
	return NewSession(account), nil
}

// Checkout purchases the whole cart of the session's account. The password
// must be re-supplied; see models.Account.Purchase for the guard protocol.
func (s *StoreService) Checkout(ctx context.Context, sess *Session, password string) (*models.Order, error) {
	if sess == nil {
		return nil, common.ErrAuthenticationFailed
	}
	order, err := sess.account.Purchase(password)
	if err != nil {
		return nil, err
	}
	return order, s.persist(ctx)
}

// BuyProduct purchases a single product directly, without going through
// the cart.
func (s *StoreService) BuyProduct(ctx context.Context, sess *Session, p *models.Product, password string) (*models.Order, error) {
	if sess == nil {
		return nil, common.ErrAuthenticationFailed
	}
	order, err := sess.account.PurchaseItem(p, password)
	if err != nil {
		return nil, err
	}
	return order, s.persist(ctx)
}

// AddCredit increases the session account's balance.
func (s *StoreService) AddCredit(ctx context.Context, sess *Session, amount decimal.Decimal) error {
	if sess == nil {
		return common.ErrAuthenticationFailed
	}
	if err := sess.account.AddCredit(amount); err != nil {
		return err
	}
	return s.persist(ctx)
}

// ChangePassword replaces the session account's password.
func (s *StoreService) ChangePassword(ctx context.Context, sess *Session, oldPass, newPass string) error {
	if sess == nil {
		return common.ErrAuthenticationFailed
	}
	if err := sess.account.SetPassword(oldPass, newPass); err != nil {
		return err
	}
	return s.persist(ctx)
}

// Catalog returns the full product catalog in catalog order.
func (s *StoreService) Catalog() []*models.Product {
	return s.registry.Products()
}

// Product returns the catalog entry at the given position.
func (s *StoreService) Product(id int) (*models.Product, error) {
	return s.registry.Product(id)
}

// Search ranks catalog products against the query; see registry.Search.
func (s *StoreService) Search(query string) []*models.Product {
	return s.registry.Search(query)
}

// persist writes the whole account directory through the port. A save
// failure is logged as a warning and returned wrapped in
// common.ErrPersistenceFailure; the in-memory mutation that triggered it
// stays committed either way.
func (s *StoreService) persist(ctx context.Context) error {
	err := s.saveAccounts(ctx)
	if err != nil {
		s.log.Warn(ctx, "account data was not written", "error", err)
	}
	return err
}

func (s *StoreService) saveAccounts(ctx context.Context) error {
	accounts := s.registry.Accounts()
	records := make([]storage.AccountRecord, 0, len(accounts))
	for _, a := range accounts {
		records = append(records, storage.AccountRecord{
			Username: a.Username(),
			Password: a.Password(),
			Balance:  a.Balance(),
		})
	}
	if err := s.repo.SaveAccounts(ctx, records); err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistenceFailure, err)
	}
	return nil
}
