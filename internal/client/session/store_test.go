package session

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storefront/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sealer, err := cryptox.NewSealer(bytes.Repeat([]byte{1}, cryptox.KeySize))
	require.NoError(t, err)
	return NewStore(db, sealer)
}

func TestStore_SaveGetRemove(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, "tok-1"))
	tok, ok, err := s.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", tok)

	require.NoError(t, s.Remove(ctx))
	_, ok, err = s.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_TokenWithoutSession(t *testing.T) {
	s := newStore(t)

	_, err := s.Token(context.Background())
	assert.ErrorIs(t, err, client.ErrNoSession)
}

func TestStore_ValuesAreSealedAtRest(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "plain-token"))

	raw, err := metadata.NewSQLiteRepository(s.db).Get(ctx, tokenKey)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "plain-token")
}

func TestStore_EmailCacheLifecycle(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "tok"))
	require.NoError(t, s.SaveEmail(ctx, "a@b.com"))

	email, ok, err := s.Email(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a@b.com", email)

	// a new login must not inherit the previous user's email
	require.NoError(t, s.Save(ctx, "tok-2"))
	_, ok, err = s.Email(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SaveEmail(ctx, "c@d.com"))
	require.NoError(t, s.Remove(ctx))
	_, ok, err = s.Email(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	key := bytes.Repeat([]byte{2}, cryptox.KeySize)

	open := func() (*Store, func()) {
		db, err := client.InitDatabase(ctx, filepath.Join(dir, "client.db"))
		require.NoError(t, err)
		sealer, err := cryptox.NewSealer(key)
		require.NoError(t, err)
		return NewStore(db, sealer), func() { _ = db.Close() }
	}

	s1, close1 := open()
	require.NoError(t, s1.Save(ctx, "persisted"))
	close1()

	s2, close2 := open()
	defer close2()
	tok, err := s2.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", tok)
}

func TestStore_WrongKeyFails(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "tok"))

	other, err := cryptox.NewSealer(bytes.Repeat([]byte{3}, cryptox.KeySize))
	require.NoError(t, err)
	s2 := NewStore(s.db, other)

	_, _, err = s2.Get(ctx)
	assert.ErrorIs(t, err, cryptox.ErrOpenFailed)
}
