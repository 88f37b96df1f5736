package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/purchase"
)

type fakeAuth struct {
	loginEmail, loginPass string
	loginRes              models.LoginResult
	loginErr              error

	changed    []string
	changeErr  error
	forgotMsg  string
	resetLink  string
	registered models.Registration
	loggedOut  bool
	loggedIn   bool
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (models.LoginResult, error) {
	f.loginEmail, f.loginPass = email, password
	return f.loginRes, f.loginErr
}
func (f *fakeAuth) ChangePassword(_ context.Context, pw, confirm string) error {
	f.changed = append(f.changed, pw+"/"+confirm)
	return f.changeErr
}
func (f *fakeAuth) ForgotPassword(context.Context, string) (string, error) { return f.forgotMsg, nil }
func (f *fakeAuth) ResetPassword(_ context.Context, link, _, _ string) error {
	f.resetLink = link
	return nil
}
func (f *fakeAuth) Register(_ context.Context, r models.Registration, _ string) error {
	f.registered = r
	return nil
}
func (f *fakeAuth) Logout(context.Context) error {
	f.loggedOut = true
	return nil
}
func (f *fakeAuth) LoggedIn(context.Context) (bool, error) { return f.loggedIn, nil }

type fakeCatalog struct {
	vehicles []models.Vehicle
	services []models.Service
	brand    string
}

func (f *fakeCatalog) Brands(context.Context) ([]models.Brand, error) {
	return []models.Brand{{ID: 1, Name: "Nissan"}}, nil
}
func (f *fakeCatalog) Vehicles(_ context.Context, brand string) ([]models.Vehicle, error) {
	f.brand = brand
	return f.vehicles, nil
}
func (f *fakeCatalog) Vehicle(_ context.Context, id int64) (models.Vehicle, error) {
	for _, v := range f.vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return models.Vehicle{}, client.ErrNotFound
}
func (f *fakeCatalog) Services(context.Context) ([]models.Service, error) { return f.services, nil }

type fakeAccount struct {
	customer models.Customer
	err      error
}

func (f *fakeAccount) ResolveEmail(context.Context) (string, error) { return f.customer.Email, f.err }
func (f *fakeAccount) Customer(context.Context) (models.Customer, error) {
	return f.customer, f.err
}

type fakeHistory struct {
	list []models.PurchaseSummary
}

func (f *fakeHistory) Purchases(context.Context) ([]models.PurchaseSummary, error) {
	return f.list, nil
}
func (f *fakeHistory) Purchase(_ context.Context, id string) (models.PurchaseSummary, error) {
	for _, p := range f.list {
		if p.Folio == id {
			return p, nil
		}
	}
	return models.PurchaseSummary{}, client.ErrNotFound
}

type fakeGateway struct {
	updates  []json.RawMessage
	sales    []models.SaleRequest
	saleErr  error
	updateFn func(n int) error
}

func (f *fakeGateway) UpdateVehicle(_ context.Context, _ string, _ int64, doc json.RawMessage) error {
	f.updates = append(f.updates, doc)
	if f.updateFn != nil {
		return f.updateFn(len(f.updates))
	}
	return nil
}

func (f *fakeGateway) RecordSale(_ context.Context, _, _ string, sale models.SaleRequest) (models.Sale, error) {
	f.sales = append(f.sales, sale)
	if f.saleErr != nil {
		return models.Sale{}, f.saleErr
	}
	return models.Sale{ID: 7}, nil
}

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

type memSharer struct {
	name    string
	content []byte
}

func (m *memSharer) Share(_ context.Context, name string, content []byte) (string, error) {
	m.name, m.content = name, content
	return "mem://" + name, nil
}

type testEnv struct {
	app     *App
	out     *bytes.Buffer
	auth    *fakeAuth
	catalog *fakeCatalog
	account *fakeAccount
	history *fakeHistory
	gateway *fakeGateway
	sharer  *memSharer
}

func testVehicle() models.Vehicle {
	return models.Vehicle{
		ID:       3,
		Model:    "Versa",
		Brand:    models.Brand{ID: 1, Name: "Nissan"},
		Year:     2022,
		Price:    250000,
		Color:    "rojo",
		StatusID: 1,
		Agent:    &models.Agent{ID: 4, Name: "Ana"},
		Raw:      json.RawMessage(`{"id":3,"estado":{"id":1}}`),
	}
}

// newTestEnv builds an App reading input line by line from lines. Password
// prompts read from the same input.
func newTestEnv(t *testing.T, lines ...string) *testEnv {
	t.Helper()

	origTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = origTerm })

	e := &testEnv{
		out:  &bytes.Buffer{},
		auth: &fakeAuth{},
		catalog: &fakeCatalog{
			vehicles: []models.Vehicle{testVehicle()},
			services: []models.Service{
				{ID: 10, Name: "Insurance", Price: "$5,000"},
				{ID: 11, Name: "Tint", Price: "$1,500"},
			},
		},
		account: &fakeAccount{customer: models.Customer{
			ID: 9, Name: "Luis", LastName: "Perez", Email: "luis@example.com",
			Agent: &models.Agent{ID: 4, Name: "Ana", Email: "ana@example.com"},
		}},
		history: &fakeHistory{},
		gateway: &fakeGateway{},
		sharer:  &memSharer{},
	}
	now := func() time.Time { return time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC) }
	seq := purchase.NewSequencer(e.gateway, staticToken("tok"), purchase.WithClock(now))

	e.app = NewApp(Deps{
		Auth:      e.auth,
		Catalog:   e.catalog,
		Account:   e.account,
		History:   e.history,
		Sequencer: seq,
		Sharer:    e.sharer,
		In:        strings.NewReader(strings.Join(lines, "\n") + "\n"),
		Out:       e.out,
		Now:       now,
	})
	return e
}
