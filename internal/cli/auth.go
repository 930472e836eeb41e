package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhowson/creditstore/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username and password and attempts to create a
// new account. The fresh account starts with a zero balance; it is not
// logged in automatically.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Choose a username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Choose a password")
	if err != nil {
		return err
	}

	if _, err := a.service.Register(ctx, username, password); err != nil {
		if !errors.Is(err, common.ErrPersistenceFailure) {
			fmt.Fprintln(a.out, err.Error())
			return err
		}
		a.warnNotSaved()
	}

	fmt.Fprintln(a.out, "Account created. You can log in now.")
	return nil
}

// Login prompts for credentials and, on success, stores the session handle
// on the App. A failed login reports a single generic message whether the
// username or the password was wrong.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}

	sess, err := a.service.Login(ctx, username, password)
	if err != nil {
		fmt.Fprintln(a.out, "Login failed, please try again")
		return err
	}

	a.session = sess
	fmt.Fprintf(a.out, "Welcome back, %s! Balance: %s\n", sess.Username(), sess.Account().BalanceString())
	return nil
}

// Logout drops the session handle.
func (a *App) Logout(_ context.Context) error {
	a.session = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
