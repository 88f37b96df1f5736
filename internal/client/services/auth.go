package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// MinPasswordLength applies to every password the client sets.
const MinPasswordLength = 8

// SessionStore is the writable side of the session.
type SessionStore interface {
	session.Provider
	Save(ctx context.Context, token string) error
	Remove(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: normalize and check credentials, authenticate, persist the token.
//   - ChangePassword: set a new password for the logged-in user.
//   - ForgotPassword: request a reset link; returns the server's message.
//   - ResetPassword: set a new password using the token from a reset link.
//   - Register: create an account.
//   - Logout: forget the token and the cached email.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.LoginResult, error)
	ChangePassword(ctx context.Context, newPassword, confirm string) error
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, link, newPassword, confirm string) error
	Register(ctx context.Context, r models.Registration, confirm string) error
	Logout(ctx context.Context) error
	LoggedIn(ctx context.Context) (bool, error)
}

type authService struct {
	api     client.API
	session SessionStore
	log     logging.Logger
}

func NewAuthService(api client.API, sess SessionStore, log logging.Logger) AuthService {
	return &authService{api: api, session: sess, log: log}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

func checkNewPassword(password, confirm string) error {
	if password == "" || confirm == "" {
		return invalid("both password fields are required")
	}
	if len(password) < MinPasswordLength {
		return invalid(fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	if password != confirm {
		return invalid("passwords do not match")
	}
	return nil
}

func (a *authService) Login(ctx context.Context, email, password string) (models.LoginResult, error) {
	email = normalizeEmail(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return models.LoginResult{}, invalid("email and password are required")
	}

	res, err := a.api.Login(ctx, email, password)
	if err != nil {
		a.log.Warn(ctx, "login failed", "email", email, "error", err)
		return models.LoginResult{}, fmt.Errorf("login: %w", err)
	}
	if err := a.session.Save(ctx, res.Token); err != nil {
		return models.LoginResult{}, fmt.Errorf("save session: %w", err)
	}
	if err := a.session.SaveEmail(ctx, email); err != nil {
		a.log.Warn(ctx, "caching email failed", "error", err)
	}
	a.log.Info(ctx, "logged in", "email", email, "must_change_password", res.MustChangePassword)
	return res, nil
}

func (a *authService) ChangePassword(ctx context.Context, newPassword, confirm string) error {
	if err := checkNewPassword(newPassword, confirm); err != nil {
		return err
	}
	token, err := a.session.Token(ctx)
	if err != nil {
		return err
	}
	if err := a.api.ChangePassword(ctx, token, newPassword); err != nil {
		a.log.Warn(ctx, "change password failed", "error", err)
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

func (a *authService) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)
	if email == "" {
		return "", invalid("email is required")
	}
	msg, err := a.api.ForgotPassword(ctx, email)
	if err != nil {
		a.log.Warn(ctx, "forgot password failed", "email", email, "error", err)
		return "", fmt.Errorf("forgot password: %w", err)
	}
	return msg, nil
}

// ResetToken extracts the reset token from a deep link carrying a "token"
// query parameter. Input that is not such a link is taken as the bare token.
func ResetToken(link string) string {
	link = strings.TrimSpace(link)
	if u, err := url.Parse(link); err == nil {
		if tok := u.Query().Get("token"); tok != "" {
			return tok
		}
	}
	return link
}

func (a *authService) ResetPassword(ctx context.Context, link, newPassword, confirm string) error {
	token := ResetToken(link)
	if token == "" {
		return invalid("reset token is required")
	}
	if err := checkNewPassword(newPassword, confirm); err != nil {
		return err
	}
	if err := a.api.ResetPassword(ctx, token, newPassword); err != nil {
		a.log.Warn(ctx, "reset password failed", "error", err)
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

func (a *authService) Register(ctx context.Context, r models.Registration, confirm string) error {
	r.Email = normalizeEmail(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Telephone = strings.TrimSpace(r.Telephone)
	if r.Name == "" || r.Email == "" {
		return invalid("name and email are required")
	}
	if err := checkNewPassword(r.Password, confirm); err != nil {
		return err
	}
	if err := a.api.Register(ctx, r); err != nil {
		a.log.Warn(ctx, "register failed", "email", r.Email, "error", err)
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.session.Remove(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (a *authService) LoggedIn(ctx context.Context) (bool, error) {
	_, err := a.session.Token(ctx)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, client.ErrNoSession) {
		return false, nil
	}
	return false, err
}
