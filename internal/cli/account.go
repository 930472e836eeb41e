package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhowson/creditstore/internal/common"
	"github.com/shopspring/decimal"
)

// AddCredit tops up the logged-in account's balance.
func (a *App) AddCredit(ctx context.Context, args []string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: credit <amount>")
		return errors.New("missing amount")
	}
	amount, err := decimal.NewFromString(args[0])
	if err != nil {
		fmt.Fprintf(a.out, "%q is not an amount\n", args[0])
		return err
	}

	if err := a.service.AddCredit(ctx, a.session, amount); err != nil {
		if !errors.Is(err, common.ErrPersistenceFailure) {
			fmt.Fprintln(a.out, err.Error())
			return err
		}
		a.warnNotSaved()
	}

	fmt.Fprintf(a.out, "Balance: %s\n", a.session.Account().BalanceString())
	return nil
}

// ChangePassword prompts for the current and the new password and replaces
// the credential.
func (a *App) ChangePassword(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	oldPass, err := getPassword(a.out, "Enter current password")
	if err != nil {
		return err
	}
	newPass, err := getPassword(a.out, "Enter new password")
	if err != nil {
		return err
	}

	if err := a.service.ChangePassword(ctx, a.session, oldPass, newPass); err != nil {
		if !errors.Is(err, common.ErrPersistenceFailure) {
			fmt.Fprintln(a.out, err.Error())
			return err
		}
		a.warnNotSaved()
	}

	fmt.Fprintln(a.out, "Password changed")
	return nil
}

// Orders prints the logged-in account's purchase history, oldest first.
func (a *App) Orders(_ context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	orders := a.session.Account().Orders()
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders yet")
		return nil
	}
	for _, o := range orders {
		fmt.Fprintf(a.out, "%s  %s  %2d items  %10s\n", o.DateString(), o.ID(), o.Quantity(), o.TotalString())
	}
	return nil
}
