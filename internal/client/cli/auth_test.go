package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	e := newTestEnv(t, "Luis@Example.com", "password1")

	require.NoError(t, e.app.Login(context.Background()))

	assert.Equal(t, "Luis@Example.com", e.auth.loginEmail)
	assert.Equal(t, "password1", e.auth.loginPass)
	assert.True(t, e.app.isLoggedIn())
	assert.Equal(t, "luis@example.com", e.app.userEmail)
	assert.Contains(t, e.out.String(), "Login successful")
}

func TestLogin_WrongCredentials(t *testing.T) {
	e := newTestEnv(t, "luis@example.com", "nope")
	e.auth.loginErr = &client.APIError{Status: 401, Message: "bad credentials"}

	err := e.app.Login(context.Background())
	require.ErrorIs(t, err, services.ErrInvalidInput)
	assert.Equal(t, "Wrong email or password.", userMessage(err))
	assert.False(t, e.app.isLoggedIn())
}

func TestLogin_ForcedPasswordChange(t *testing.T) {
	e := newTestEnv(t, "luis@example.com", "temp", "newpass99", "newpass99")
	e.auth.loginRes = models.LoginResult{Token: "t", MustChangePassword: true}

	require.NoError(t, e.app.Login(context.Background()))
	assert.Equal(t, []string{"newpass99/newpass99"}, e.auth.changed)
	assert.True(t, e.app.isLoggedIn())
	assert.Contains(t, e.out.String(), "You must change your password")
}

func TestLogin_ForcedPasswordChangeFailureLogsOut(t *testing.T) {
	e := newTestEnv(t, "luis@example.com", "temp", "short", "short")
	e.auth.loginRes = models.LoginResult{Token: "t", MustChangePassword: true}
	e.auth.changeErr = errors.New("too short")

	require.Error(t, e.app.Login(context.Background()))
	assert.True(t, e.auth.loggedOut)
	assert.False(t, e.app.isLoggedIn())
}

func TestRegister_CollectsAllFields(t *testing.T) {
	e := newTestEnv(t, "Luis", "Perez", "luis@example.com", "555-1234", "password1", "password1")

	require.NoError(t, e.app.Register(context.Background()))
	assert.Equal(t, models.Registration{
		Name: "Luis", LastName: "Perez", Email: "luis@example.com", Telephone: "555-1234", Password: "password1",
	}, e.auth.registered)
}

func TestForgotAndReset(t *testing.T) {
	e := newTestEnv(t, "luis@example.com", "app://reset?token=abc", "password1", "password1")
	e.auth.forgotMsg = "Check your inbox"

	require.NoError(t, e.app.ForgotPassword(context.Background()))
	require.NoError(t, e.app.ResetPassword(context.Background()))

	assert.Equal(t, "app://reset?token=abc", e.auth.resetLink)
	assert.Contains(t, e.out.String(), "Check your inbox")
	assert.Contains(t, e.out.String(), "Password updated")
}

func TestLogout_ClearsShoppingState(t *testing.T) {
	e := newTestEnv(t)
	v := testVehicle()
	e.app.loggedIn = true
	e.app.userEmail = "luis@example.com"
	e.app.current = &v
	e.app.selection.Add(models.Service{ID: 10})

	require.NoError(t, e.app.Logout(context.Background()))
	assert.True(t, e.auth.loggedOut)
	assert.False(t, e.app.isLoggedIn())
	assert.Empty(t, e.app.userEmail)
	assert.Nil(t, e.app.current)
	assert.Zero(t, e.app.selection.Len())
}
