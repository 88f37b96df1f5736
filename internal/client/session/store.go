// Package session persists the session token and the cached user email.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storefront/internal/cryptox"
	"github.com/dmitrijs2005/storefront/internal/dbx"
)

const (
	tokenKey = "userToken"
	emailKey = "userEmail"
)

// Provider is what services need from the session. Token reports
// client.ErrNoSession when nobody is logged in.
type Provider interface {
	Token(ctx context.Context) (string, error)
	Email(ctx context.Context) (string, bool, error)
	SaveEmail(ctx context.Context, email string) error
}

// Store keeps sealed session values in the local metadata table.
type Store struct {
	db     *sql.DB
	repo   metadata.Repository
	sealer *cryptox.Sealer
}

func NewStore(db *sql.DB, sealer *cryptox.Sealer) *Store {
	return &Store{db: db, repo: metadata.NewSQLiteRepository(db), sealer: sealer}
}

// Save stores token. Any email cached for a previous session is dropped in
// the same transaction.
func (s *Store) Save(ctx context.Context, token string) error {
	sealed := s.sealer.Seal([]byte(token))
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, tokenKey, sealed); err != nil {
			return err
		}
		return repo.Delete(ctx, emailKey)
	})
}

// Get returns the stored token, reporting false when there is none.
func (s *Store) Get(ctx context.Context) (string, bool, error) {
	return s.get(ctx, tokenKey)
}

// Remove clears the token and the cached email.
func (s *Store) Remove(ctx context.Context) error {
	return s.repo.Delete(ctx, tokenKey, emailKey)
}

func (s *Store) SaveEmail(ctx context.Context, email string) error {
	return s.repo.Set(ctx, emailKey, s.sealer.Seal([]byte(email)))
}

func (s *Store) Email(ctx context.Context) (string, bool, error) {
	return s.get(ctx, emailKey)
}

func (s *Store) Token(ctx context.Context) (string, error) {
	token, ok, err := s.Get(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", client.ErrNoSession
	}
	return token, nil
}

func (s *Store) get(ctx context.Context, key string) (string, bool, error) {
	sealed, err := s.repo.Get(ctx, key)
	if errors.Is(err, metadata.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	plain, err := s.sealer.Open(sealed)
	if err != nil {
		return "", false, fmt.Errorf("open %s: %w", key, err)
	}
	if len(plain) == 0 {
		return "", false, nil
	}
	return string(plain), true, nil
}
