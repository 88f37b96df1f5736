package client

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// API is the remote storefront surface. Authenticated calls take the session
// token explicitly; the client never reads storage on its own.
type API interface {
	Login(ctx context.Context, email, password string) (models.LoginResult, error)
	ChangePassword(ctx context.Context, token, newPassword string) error
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
	Register(ctx context.Context, r models.Registration) error

	Brands(ctx context.Context, token string) ([]models.Brand, error)
	Vehicles(ctx context.Context, token string) ([]models.Vehicle, error)
	VehiclesByBrand(ctx context.Context, token, brand string) ([]models.Vehicle, error)
	UpdateVehicle(ctx context.Context, token string, vehicleID int64, doc json.RawMessage) error
	Services(ctx context.Context, token string) ([]models.Service, error)

	CustomerByEmail(ctx context.Context, token, email string) (models.Customer, error)
	RecordSale(ctx context.Context, token, idempotencyKey string, sale models.SaleRequest) (models.Sale, error)
	SalesByCustomer(ctx context.Context, token string, customerID int64) ([]models.Sale, error)
}
