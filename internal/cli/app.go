// Package cli is the terminal presentation layer for the store. All
// interactive prompting (password re-entry included) lives here; the
// domain operations themselves take plain inputs and return errors.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jhowson/creditstore/internal/store/models"
	"github.com/jhowson/creditstore/internal/store/services"
	"github.com/shopspring/decimal"
)

// storeService is the slice of the service surface the CLI needs. The real
// services.StoreService satisfies it; tests provide a fake.
type storeService interface {
	Register(ctx context.Context, username, password string) (*models.Account, error)
	Login(ctx context.Context, username, password string) (*services.Session, error)
	Checkout(ctx context.Context, sess *services.Session, password string) (*models.Order, error)
	BuyProduct(ctx context.Context, sess *services.Session, p *models.Product, password string) (*models.Order, error)
	AddCredit(ctx context.Context, sess *services.Session, amount decimal.Decimal) error
	ChangePassword(ctx context.Context, sess *services.Session, oldPass, newPass string) error
	Catalog() []*models.Product
	Product(id int) (*models.Product, error)
	Search(query string) []*models.Product
}

// App holds the REPL state: the store service and, when somebody is logged
// in, the session handle. The session lives here, not in the registry; the
// store itself has no notion of a current account.
type App struct {
	service storeService
	session *services.Session
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(svc *services.StoreService) *App {
	return &App{
		service: svc,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// Run starts the interactive loop and blocks until the user exits or
// input is exhausted.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Credit Store (type 'help' for commands)")
	scanner := bufio.NewScanner(a.reader)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) status() string {
	if a.session == nil {
		return "guest"
	}
	return a.session.Username()
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

// errNotLoggedIn is returned by handlers that need an active session.
var errNotLoggedIn = fmt.Errorf("not logged in")

func (a *App) requireLogin() error {
	if a.session == nil {
		fmt.Fprintln(a.out, "Log in first ('login') or create an account ('register')")
		return errNotLoggedIn
	}
	return nil
}

// warnNotSaved tells the user a completed operation could not be written
// to disk. The in-memory change stands; only this run's durability is lost.
func (a *App) warnNotSaved() {
	fmt.Fprintln(a.out, "Warning: account data could not be saved; changes apply to this session only")
}
