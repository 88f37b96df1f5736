package fakeapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/purchase"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/client/share"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/cryptox"
	"github.com/dmitrijs2005/storefront/internal/fakeapi"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stack is the client wired against a fresh fake backend.
type stack struct {
	server  *fakeapi.Server
	store   *fakeapi.Store
	api     *client.HTTPClient
	session *session.Store
	auth    services.AuthService
	catalog services.CatalogService
	account services.AccountService
	history services.HistoryService
}

func newStack(t *testing.T) *stack {
	t.Helper()
	ctx := context.Background()

	store := fakeapi.NewStore()
	require.NoError(t, fakeapi.Seed(store))
	srv := fakeapi.NewServer("", logging.Nop(), store, "e2e-secret")
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	db, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	key, err := cryptox.LoadOrCreateKey(filepath.Join(t.TempDir(), "device.key"))
	require.NoError(t, err)
	sealer, err := cryptox.NewSealer(key)
	require.NoError(t, err)

	api := client.NewHTTPClient(ts.URL, 5*time.Second)
	sess := session.NewStore(db, sealer)
	account := services.NewAccountService(api, sess, logging.Nop())
	return &stack{
		server:  srv,
		store:   store,
		api:     api,
		session: sess,
		auth:    services.NewAuthService(api, sess, logging.Nop()),
		catalog: services.NewCatalogService(api, sess, logging.Nop()),
		account: account,
		history: services.NewHistoryService(api, sess, account, logging.Nop()),
	}
}

func (s *stack) login(t *testing.T) {
	t.Helper()
	res, err := s.auth.Login(context.Background(), fakeapi.DemoEmail, fakeapi.DemoPassword)
	require.NoError(t, err)
	require.False(t, res.MustChangePassword)
}

func (s *stack) order(t *testing.T, vehicleID int64, serviceIDs ...int64) purchase.Order {
	t.Helper()
	ctx := context.Background()

	v, err := s.catalog.Vehicle(ctx, vehicleID)
	require.NoError(t, err)
	all, err := s.catalog.Services(ctx)
	require.NoError(t, err)
	cust, err := s.account.Customer(ctx)
	require.NoError(t, err)

	var picked []models.Service
	for _, id := range serviceIDs {
		for _, svc := range all {
			if svc.ID == id {
				picked = append(picked, svc)
			}
		}
	}
	return purchase.Order{Vehicle: v, Services: picked, CustomerID: cust.ID, CustomerName: cust.FullName()}
}

func TestE2E_PurchaseCompletes(t *testing.T) {
	s := newStack(t)
	s.login(t)
	ctx := context.Background()

	seq := purchase.NewSequencer(s.api, s.session)
	order := s.order(t, 1, 2, 4)

	require.NoError(t, seq.Open())
	res, err := seq.Confirm(ctx, order)
	require.NoError(t, err)

	assert.Equal(t, int64(250000+3200+1500), res.Total)
	assert.Equal(t, "000001", res.Sale.Folio)
	assert.Equal(t, purchase.Completed, seq.State())

	status, _ := s.store.VehicleStatus(1)
	assert.Equal(t, common.VehicleStatusSold, status)

	history, err := s.history.Purchases(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)

	dir := t.TempDir()
	path, err := seq.Share(ctx, share.NewFileSharer(dir), time.Now())
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
}

func TestE2E_ReservationFailureRecordsNothing(t *testing.T) {
	s := newStack(t)
	s.login(t)

	seq := purchase.NewSequencer(s.api, s.session)
	order := s.order(t, 2)
	s.server.Fail(http.MethodPut, "/vehiculo/actualizar", http.StatusInternalServerError)

	require.NoError(t, seq.Open())
	_, err := seq.Confirm(context.Background(), order)
	require.Error(t, err)

	var perr *purchase.PartialFailureError
	assert.False(t, errors.As(err, &perr))
	assert.Equal(t, purchase.Failed, seq.State())
	assert.Zero(t, s.store.SaleCount())

	status, _ := s.store.VehicleStatus(2)
	assert.Equal(t, common.VehicleStatusAvailable, status)
}

func TestE2E_SaleFailureLeavesVehicleReserved(t *testing.T) {
	s := newStack(t)
	s.login(t)

	seq := purchase.NewSequencer(s.api, s.session)
	order := s.order(t, 3)
	s.server.Fail(http.MethodPost, "/ventas", http.StatusInternalServerError)

	require.NoError(t, seq.Open())
	_, err := seq.Confirm(context.Background(), order)

	var perr *purchase.PartialFailureError
	require.ErrorAs(t, err, &perr)
	assert.False(t, perr.Attempted)
	assert.Zero(t, s.store.SaleCount())

	status, _ := s.store.VehicleStatus(3)
	assert.Equal(t, common.VehicleStatusReserved, status)
}

func TestE2E_SaleFailureWithCompensationReleasesVehicle(t *testing.T) {
	s := newStack(t)
	s.login(t)

	seq := purchase.NewSequencer(s.api, s.session, purchase.WithCompensation(true))
	order := s.order(t, 5)
	s.server.Fail(http.MethodPost, "/ventas", http.StatusInternalServerError)

	require.NoError(t, seq.Open())
	_, err := seq.Confirm(context.Background(), order)

	var perr *purchase.PartialFailureError
	require.ErrorAs(t, err, &perr)
	assert.True(t, perr.Compensated)

	status, _ := s.store.VehicleStatus(5)
	assert.Equal(t, common.VehicleStatusAvailable, status)
}

func TestE2E_RetryAfterFailedSaleUsesSameKey(t *testing.T) {
	s := newStack(t)
	s.login(t)
	ctx := context.Background()

	var keys []string
	seq := purchase.NewSequencer(s.api, s.session, purchase.WithKeyGenerator(func() string {
		k := "order-key"
		keys = append(keys, k)
		return k
	}))
	order := s.order(t, 4, 1)
	s.server.Fail(http.MethodPost, "/ventas", http.StatusServiceUnavailable)

	require.NoError(t, seq.Open())
	_, err := seq.Confirm(ctx, order)
	var perr *purchase.PartialFailureError
	require.ErrorAs(t, err, &perr)

	require.NoError(t, seq.Open())
	res, err := seq.Confirm(ctx, order)
	require.NoError(t, err)
	assert.Len(t, keys, 1, "the retry reuses the key")
	assert.Equal(t, 1, s.store.SaleCount())

	token, err := s.session.Token(ctx)
	require.NoError(t, err)
	req := models.NewSaleRequest(order.CustomerID, order.Vehicle.ID, order.Vehicle.AgentID(), order.Services, res.Total, time.Now())
	replay, err := s.api.RecordSale(ctx, token, "order-key", req)
	require.NoError(t, err)
	assert.Equal(t, res.Sale.ID, replay.ID)
	assert.Equal(t, 1, s.store.SaleCount())
}

func TestE2E_SessionSurvivesRestartAndLogout(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	loggedIn, err := s.auth.LoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)

	s.login(t)
	restarted := services.NewAuthService(s.api, s.session, logging.Nop())
	loggedIn, err = restarted.LoggedIn(ctx)
	require.NoError(t, err)
	assert.True(t, loggedIn)

	email, err := s.account.ResolveEmail(ctx)
	require.NoError(t, err)
	assert.Equal(t, fakeapi.DemoEmail, email)

	require.NoError(t, restarted.Logout(ctx))
	_, err = s.catalog.Brands(ctx)
	require.ErrorIs(t, err, client.ErrNoSession)
}

func TestE2E_ForcedPasswordChange(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	res, err := s.auth.Login(ctx, fakeapi.TempEmail, fakeapi.TempPassword)
	require.NoError(t, err)
	require.True(t, res.MustChangePassword)

	require.NoError(t, s.auth.ChangePassword(ctx, "chosen-pass", "chosen-pass"))
	res, err = s.auth.Login(ctx, fakeapi.TempEmail, "chosen-pass")
	require.NoError(t, err)
	assert.False(t, res.MustChangePassword)
}

func TestE2E_ForgotAndResetPassword(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	msg, err := s.auth.ForgotPassword(ctx, fakeapi.DemoEmail)
	require.NoError(t, err)
	assert.NotEmpty(t, msg)

	token, ok := s.store.ResetToken(fakeapi.DemoEmail)
	require.True(t, ok)
	link := "https://storefront.test/reset-password?token=" + token

	require.NoError(t, s.auth.ResetPassword(ctx, link, "fresh-pass1", "fresh-pass1"))
	_, err = s.auth.Login(ctx, fakeapi.DemoEmail, "fresh-pass1")
	require.NoError(t, err)

	_, err = s.auth.Login(ctx, fakeapi.DemoEmail, fakeapi.DemoPassword)
	require.ErrorIs(t, err, client.ErrUnauthorized)
}
