package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/auth"
	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// AccountService resolves the logged-in user and their customer record.
type AccountService interface {
	// ResolveEmail returns the cached email, falling back to the token
	// subject, which is then cached.
	ResolveEmail(ctx context.Context) (string, error)
	Customer(ctx context.Context) (models.Customer, error)
}

type accountService struct {
	api     client.API
	session session.Provider
	log     logging.Logger
}

func NewAccountService(api client.API, sess session.Provider, log logging.Logger) AccountService {
	return &accountService{api: api, session: sess, log: log}
}

func (a *accountService) ResolveEmail(ctx context.Context) (string, error) {
	token, err := a.session.Token(ctx)
	if err != nil {
		return "", err
	}

	email, ok, err := a.session.Email(ctx)
	if err != nil {
		return "", err
	}
	if ok {
		return email, nil
	}

	email, ok = auth.DecodeSubject(token)
	if !ok {
		return "", ErrIdentityUnresolved
	}
	if err := a.session.SaveEmail(ctx, email); err != nil {
		a.log.Warn(ctx, "caching email failed", "error", err)
	}
	return email, nil
}

func (a *accountService) Customer(ctx context.Context) (models.Customer, error) {
	email, err := a.ResolveEmail(ctx)
	if err != nil {
		return models.Customer{}, err
	}
	token, err := a.session.Token(ctx)
	if err != nil {
		return models.Customer{}, err
	}

	cust, err := a.api.CustomerByEmail(ctx, token, email)
	if err != nil {
		a.log.Warn(ctx, "loading customer failed", "email", email, "error", err)
		return models.Customer{}, fmt.Errorf("customer %s: %w", email, err)
	}
	if cust.ID == 0 {
		return models.Customer{}, fmt.Errorf("customer %s: %w", email, client.ErrNotFound)
	}
	return cust, nil
}
