package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jhowson/creditstore/internal/common"
	"github.com/jhowson/creditstore/internal/store/models"
)

// parseID reads a catalog position from the first argument.
func (a *App) parseID(args []string, usage string) (int, error) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage:", usage)
		return 0, errors.New("missing product id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(a.out, "%q is not a product id\n", args[0])
		return 0, err
	}
	return id, nil
}

// catalogID recovers a product's catalog position for display next to
// search results.
func (a *App) catalogID(p *models.Product) int {
	for i, c := range a.service.Catalog() {
		if c == p {
			return i
		}
	}
	return -1
}

func (a *App) printProducts(products []*models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(a.out, "No products found")
		return
	}
	for _, p := range products {
		fmt.Fprintf(a.out, "%4d  %-24s %10s\n", a.catalogID(p), p.Name(), p.PriceString())
	}
}

// List prints the full catalog in catalog order.
func (a *App) List(_ context.Context) error {
	a.printProducts(a.service.Catalog())
	return nil
}

// Search ranks the catalog against the query. With no arguments it behaves
// like List: an empty query matches everything.
func (a *App) Search(_ context.Context, args []string) error {
	query := strings.Join(args, " ")
	a.printProducts(a.service.Search(query))
	return nil
}

// Show prints the details of one product.
func (a *App) Show(_ context.Context, args []string) error {
	id, err := a.parseID(args, "show <id>")
	if err != nil {
		return err
	}
	p, err := a.service.Product(id)
	if err != nil {
		fmt.Fprintf(a.out, "No product with id %d\n", id)
		return err
	}
	fmt.Fprintf(a.out, "%s  %s\n%s\nimage: %s\n", p.Name(), p.PriceString(), p.Description(), p.ImageURL())
	return nil
}

// AddToCart puts a catalog product into the logged-in account's cart.
func (a *App) AddToCart(_ context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	id, err := a.parseID(args, "add <id>")
	if err != nil {
		return err
	}
	p, err := a.service.Product(id)
	if err != nil {
		fmt.Fprintf(a.out, "No product with id %d\n", id)
		return err
	}
	cart := a.session.Account().Cart()
	cart.AddItem(p)
	fmt.Fprintf(a.out, "Added %s. Cart: %d items, %s\n", p.Name(), cart.ItemCount(), cart.TotalString())
	return nil
}

// RemoveFromCart takes one occurrence of a product out of the cart.
// Removing something that is not in the cart quietly does nothing.
func (a *App) RemoveFromCart(_ context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	id, err := a.parseID(args, "remove <id>")
	if err != nil {
		return err
	}
	p, err := a.service.Product(id)
	if err != nil {
		fmt.Fprintf(a.out, "No product with id %d\n", id)
		return err
	}
	cart := a.session.Account().Cart()
	cart.RemoveItem(p)
	fmt.Fprintf(a.out, "Cart: %d items, %s\n", cart.ItemCount(), cart.TotalString())
	return nil
}

// ShowCart prints the cart contents, count and total.
func (a *App) ShowCart(_ context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	cart := a.session.Account().Cart()
	for _, p := range cart.Items() {
		fmt.Fprintf(a.out, "  %-24s %10s\n", p.Name(), p.PriceString())
	}
	fmt.Fprintf(a.out, "%d items, total %s (+%s shipping at checkout)\n",
		cart.ItemCount(), cart.TotalString(), "$"+models.ShippingSurcharge.StringFixed(2))
	return nil
}

// Checkout purchases the whole cart. The user must re-enter their password
// to confirm; the charged amount includes the shipping surcharge.
func (a *App) Checkout(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password to continue")
	if err != nil {
		return err
	}

	order, err := a.service.Checkout(ctx, a.session, password)
	if err != nil {
		if !errors.Is(err, common.ErrPersistenceFailure) {
			a.reportPurchaseError(err)
			return err
		}
		a.warnNotSaved()
	}

	fmt.Fprintf(a.out, "Your purchase was successful. Order %s: %d items, %s charged. Balance: %s\n",
		order.ID(), order.Quantity(), order.TotalString(), a.session.Account().BalanceString())
	return nil
}

// Buy purchases a single product directly, without the cart and without
// the shipping surcharge.
func (a *App) Buy(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	id, err := a.parseID(args, "buy <id>")
	if err != nil {
		return err
	}
	p, err := a.service.Product(id)
	if err != nil {
		fmt.Fprintf(a.out, "No product with id %d\n", id)
		return err
	}

	password, err := getPassword(a.out, "Enter password to continue")
	if err != nil {
		return err
	}

	order, err := a.service.BuyProduct(ctx, a.session, p, password)
	if err != nil {
		if !errors.Is(err, common.ErrPersistenceFailure) {
			a.reportPurchaseError(err)
			return err
		}
		a.warnNotSaved()
	}

	fmt.Fprintf(a.out, "Your purchase was successful. Order %s: %s charged. Balance: %s\n",
		order.ID(), order.TotalString(), a.session.Account().BalanceString())
	return nil
}

func (a *App) reportPurchaseError(err error) {
	switch {
	case errors.Is(err, common.ErrInsufficientFunds):
		fmt.Fprintln(a.out, "Not enough credits. Use the 'credit' command to increase your balance")
	case errors.Is(err, common.ErrAuthenticationFailed):
		fmt.Fprintln(a.out, "Incorrect password, please try again")
	default:
		fmt.Fprintln(a.out, err.Error())
	}
}
