package services

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// fakeAPI implements client.API for unit tests. Each method records its
// arguments and returns the preset result.
type fakeAPI struct {
	loginRes  models.LoginResult
	loginErr  error
	lastEmail string
	lastPass  string
	changeErr error
	lastToken string
	forgotMsg string
	forgotErr error
	resetErr  error
	lastReset string
	regErr    error
	lastReg   models.Registration
	brands    []models.Brand
	vehicles  []models.Vehicle
	byBrand   map[string][]models.Vehicle
	lastBrand string
	vehErr    error
	services  []models.Service
	customer  models.Customer
	custErr   error
	custEmail string
	sales     []models.Sale
	salesErr  error
	salesCust int64
	called    []string
}

var _ client.API = (*fakeAPI)(nil)

func (f *fakeAPI) Login(_ context.Context, email, password string) (models.LoginResult, error) {
	f.called = append(f.called, "login")
	f.lastEmail, f.lastPass = email, password
	return f.loginRes, f.loginErr
}

func (f *fakeAPI) ChangePassword(_ context.Context, token, newPassword string) error {
	f.called = append(f.called, "change")
	f.lastToken, f.lastPass = token, newPassword
	return f.changeErr
}

func (f *fakeAPI) ForgotPassword(_ context.Context, email string) (string, error) {
	f.called = append(f.called, "forgot")
	f.lastEmail = email
	return f.forgotMsg, f.forgotErr
}

func (f *fakeAPI) ResetPassword(_ context.Context, resetToken, newPassword string) error {
	f.called = append(f.called, "reset")
	f.lastReset, f.lastPass = resetToken, newPassword
	return f.resetErr
}

func (f *fakeAPI) Register(_ context.Context, r models.Registration) error {
	f.called = append(f.called, "register")
	f.lastReg = r
	return f.regErr
}

func (f *fakeAPI) Brands(_ context.Context, token string) ([]models.Brand, error) {
	f.called = append(f.called, "brands")
	f.lastToken = token
	return f.brands, f.vehErr
}

func (f *fakeAPI) Vehicles(_ context.Context, token string) ([]models.Vehicle, error) {
	f.called = append(f.called, "vehicles")
	f.lastToken = token
	return f.vehicles, f.vehErr
}

func (f *fakeAPI) VehiclesByBrand(_ context.Context, token, brand string) ([]models.Vehicle, error) {
	f.called = append(f.called, "vehiclesByBrand")
	f.lastToken, f.lastBrand = token, brand
	return f.byBrand[brand], f.vehErr
}

func (f *fakeAPI) UpdateVehicle(context.Context, string, int64, json.RawMessage) error {
	f.called = append(f.called, "update")
	return nil
}

func (f *fakeAPI) Services(_ context.Context, token string) ([]models.Service, error) {
	f.called = append(f.called, "services")
	f.lastToken = token
	return f.services, f.vehErr
}

func (f *fakeAPI) CustomerByEmail(_ context.Context, token, email string) (models.Customer, error) {
	f.called = append(f.called, "customer")
	f.lastToken, f.custEmail = token, email
	return f.customer, f.custErr
}

func (f *fakeAPI) RecordSale(context.Context, string, string, models.SaleRequest) (models.Sale, error) {
	f.called = append(f.called, "sale")
	return models.Sale{}, nil
}

func (f *fakeAPI) SalesByCustomer(_ context.Context, token string, customerID int64) ([]models.Sale, error) {
	f.called = append(f.called, "sales")
	f.lastToken, f.salesCust = token, customerID
	return f.sales, f.salesErr
}

// memSession is an in-memory SessionStore.
type memSession struct {
	token    string
	email    string
	saveErr  error
	emailErr error
}

func (m *memSession) Token(context.Context) (string, error) {
	if m.token == "" {
		return "", client.ErrNoSession
	}
	return m.token, nil
}

func (m *memSession) Email(context.Context) (string, bool, error) {
	if m.emailErr != nil {
		return "", false, m.emailErr
	}
	return m.email, m.email != "", nil
}

func (m *memSession) SaveEmail(_ context.Context, email string) error {
	m.email = email
	return nil
}

func (m *memSession) Save(_ context.Context, token string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.token = token
	m.email = ""
	return nil
}

func (m *memSession) Remove(context.Context) error {
	m.token, m.email = "", ""
	return nil
}
