package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// CatalogService lists brands, vehicles and add-on services.
type CatalogService interface {
	Brands(ctx context.Context) ([]models.Brand, error)
	// Vehicles lists every vehicle, or those of brand when it is not empty.
	Vehicles(ctx context.Context, brand string) ([]models.Vehicle, error)
	// Vehicle finds one listing by id in the current catalog.
	Vehicle(ctx context.Context, id int64) (models.Vehicle, error)
	Services(ctx context.Context) ([]models.Service, error)
}

type catalogService struct {
	api     client.API
	session session.Provider
	log     logging.Logger
}

func NewCatalogService(api client.API, sess session.Provider, log logging.Logger) CatalogService {
	return &catalogService{api: api, session: sess, log: log}
}

func (c *catalogService) Brands(ctx context.Context) ([]models.Brand, error) {
	token, err := c.session.Token(ctx)
	if err != nil {
		return nil, err
	}
	brands, err := c.api.Brands(ctx, token)
	if err != nil {
		c.log.Warn(ctx, "loading brands failed", "error", err)
		return nil, fmt.Errorf("brands: %w", err)
	}
	return brands, nil
}

func (c *catalogService) Vehicles(ctx context.Context, brand string) ([]models.Vehicle, error) {
	token, err := c.session.Token(ctx)
	if err != nil {
		return nil, err
	}

	var vehicles []models.Vehicle
	if brand = strings.TrimSpace(brand); brand == "" {
		vehicles, err = c.api.Vehicles(ctx, token)
	} else {
		vehicles, err = c.api.VehiclesByBrand(ctx, token, brand)
	}
	if err != nil {
		c.log.Warn(ctx, "loading vehicles failed", "brand", brand, "error", err)
		return nil, fmt.Errorf("vehicles: %w", err)
	}
	return vehicles, nil
}

func (c *catalogService) Vehicle(ctx context.Context, id int64) (models.Vehicle, error) {
	vehicles, err := c.Vehicles(ctx, "")
	if err != nil {
		return models.Vehicle{}, err
	}
	for _, v := range vehicles {
		if v.ID == id {
			return v, nil
		}
	}
	return models.Vehicle{}, fmt.Errorf("vehicle %d: %w", id, client.ErrNotFound)
}

func (c *catalogService) Services(ctx context.Context) ([]models.Service, error) {
	token, err := c.session.Token(ctx)
	if err != nil {
		return nil, err
	}
	services, err := c.api.Services(ctx, token)
	if err != nil {
		c.log.Warn(ctx, "loading services failed", "error", err)
		return nil, fmt.Errorf("services: %w", err)
	}
	return services, nil
}
