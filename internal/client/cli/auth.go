package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errInvalidCredentials = fmt.Errorf("%w: wrong email or password", services.ErrInvalidInput)

// passwordPair prompts for a new password twice. Both slices must be wiped
// by the caller.
func (a *App) passwordPair() ([]byte, []byte, error) {
	pw, err := a.askPassword("New password")
	if err != nil {
		return nil, nil, err
	}
	again, err := a.askPassword("Confirm password")
	if err != nil {
		common.WipeByteArray(pw)
		return nil, nil, err
	}
	return pw, again, nil
}

// Login prompts for credentials and authenticates. When the server flags
// the account, the user must set a new password before going on; if that
// fails the session is dropped again.
func (a *App) Login(ctx context.Context) error {
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return errInvalidCredentials
		}
		return err
	}

	a.loggedIn = true
	a.resetShopping()
	if resolved, err := a.accountService.ResolveEmail(ctx); err == nil {
		a.userEmail = resolved
	}

	if res.MustChangePassword {
		a.println("You must change your password before continuing.")
		if err := a.ChangePassword(ctx); err != nil {
			if lerr := a.Logout(ctx); lerr != nil {
				a.log.Warn(ctx, "logout after failed password change", "error", lerr)
			}
			return err
		}
	}

	a.println("Login successful")
	return nil
}

// Register prompts for the account details and creates the account.
func (a *App) Register(ctx context.Context) error {
	var r models.Registration
	var err error

	if r.Name, err = a.ask("Enter name"); err != nil {
		return err
	}
	if r.LastName, err = a.ask("Enter last name"); err != nil {
		return err
	}
	if r.Email, err = a.ask("Enter email"); err != nil {
		return err
	}
	if r.Telephone, err = a.ask("Enter telephone"); err != nil {
		return err
	}

	pw, again, err := a.passwordPair()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	defer common.WipeByteArray(again)

	r.Password = string(pw)
	if err := a.authService.Register(ctx, r, string(again)); err != nil {
		return err
	}

	a.println("Account created. You can log in now.")
	return nil
}

// ForgotPassword requests a password reset link by email.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	msg, err := a.authService.ForgotPassword(ctx, email)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "If the account exists, a reset link was sent to your email."
	}
	a.println(msg)
	return nil
}

// ResetPassword sets a new password using the link from the reset email.
func (a *App) ResetPassword(ctx context.Context) error {
	link, err := a.ask("Paste the reset link or token")
	if err != nil {
		return err
	}
	pw, again, err := a.passwordPair()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	defer common.WipeByteArray(again)

	if err := a.authService.ResetPassword(ctx, link, string(pw), string(again)); err != nil {
		return err
	}
	a.println("Password updated. You can log in now.")
	return nil
}

// ChangePassword sets a new password for the logged-in user.
func (a *App) ChangePassword(ctx context.Context) error {
	pw, again, err := a.passwordPair()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	defer common.WipeByteArray(again)

	if err := a.authService.ChangePassword(ctx, string(pw), string(again)); err != nil {
		return err
	}
	a.println("Password changed.")
	return nil
}

// Logout forgets the session and everything picked while shopping.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.loggedIn = false
	a.userEmail = ""
	a.resetShopping()
	a.println("Logged out.")
	return nil
}
