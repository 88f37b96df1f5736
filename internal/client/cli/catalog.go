package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/purchase"
	"github.com/dmitrijs2005/storefront/internal/client/services"
)

func parseID(args []string, usage string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: usage: %s", services.ErrInvalidInput, usage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a valid id", services.ErrInvalidInput, args[0])
	}
	return id, nil
}

func (a *App) Brands(ctx context.Context) error {
	brands, err := a.catalogService.Brands(ctx)
	if err != nil {
		return err
	}
	if len(brands) == 0 {
		a.println("No brands available.")
		return nil
	}
	for _, b := range brands {
		a.printf("%4d  %s\n", b.ID, b.Name)
	}
	return nil
}

// Cars lists the catalog, optionally filtered by the brand named in args.
func (a *App) Cars(ctx context.Context, args []string) error {
	brand := strings.Join(args, " ")
	vehicles, err := a.catalogService.Vehicles(ctx, brand)
	if err != nil {
		return err
	}
	if len(vehicles) == 0 {
		a.println("No vehicles available.")
		return nil
	}
	for _, v := range vehicles {
		a.printf("%4d  %-30s %12s  %s\n", v.ID, v.Title(), models.FormatAmount(v.Price), models.ColorName(v.Color))
	}
	return nil
}

// Car shows one vehicle and makes it the one 'buy' will purchase.
func (a *App) Car(ctx context.Context, args []string) error {
	id, err := parseID(args, "car <id>")
	if err != nil {
		return err
	}
	v, err := a.catalogService.Vehicle(ctx, id)
	if err != nil {
		return err
	}
	a.current = &v

	a.println(v.Title())
	a.printf("  Price:  %s\n", models.FormatAmount(v.Price))
	if v.Color != "" {
		a.printf("  Color:  %s\n", models.ColorName(v.Color))
	}
	if v.Plate != "" {
		a.printf("  Plate:  %s\n", v.Plate)
	}
	if v.Description != "" {
		a.printf("  About:  %s\n", v.Description)
	}
	if v.Agent != nil {
		a.printf("  Agent:  %s\n", v.Agent.FullName())
	}
	a.println("Add services with 'add <id>' and type 'buy' to purchase this vehicle.")
	return nil
}

func (a *App) Services(ctx context.Context) error {
	list, err := a.catalogService.Services(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No services available.")
		return nil
	}
	for _, s := range list {
		mark := " "
		if a.selection.Contains(s.ID) {
			mark = "x"
		}
		a.printf("[%s] %4d  %-25s %10s  %s\n", mark, s.ID, s.Name, s.Price, s.Modality)
	}
	return nil
}

func (a *App) AddService(ctx context.Context, args []string) error {
	id, err := parseID(args, "add <service id>")
	if err != nil {
		return err
	}
	list, err := a.catalogService.Services(ctx)
	if err != nil {
		return err
	}
	for _, s := range list {
		if s.ID != id {
			continue
		}
		if a.selection.Add(s) {
			a.printf("Added %s.\n", s.Name)
		} else {
			a.printf("%s is already selected.\n", s.Name)
		}
		return nil
	}
	return fmt.Errorf("service %d: %w", id, client.ErrNotFound)
}

func (a *App) RemoveService(_ context.Context, args []string) error {
	id, err := parseID(args, "remove <service id>")
	if err != nil {
		return err
	}
	if !a.selection.Remove(id) {
		a.println("That service is not selected.")
		return nil
	}
	a.println("Removed.")
	return nil
}

// Selected lists the chosen services and, with a vehicle in view, the
// resulting total.
func (a *App) Selected(_ context.Context) error {
	items := a.selection.Items()
	if len(items) == 0 {
		a.println("No services selected.")
	}
	for _, s := range items {
		a.printf("%4d  %-25s %10s\n", s.ID, s.Name, s.Price)
	}
	if a.current == nil {
		return nil
	}
	total, err := purchase.Total(a.current.Price, items, a.strictPrices)
	if err != nil {
		return err
	}
	a.printf("Vehicle: %s %s\n", a.current.Title(), models.FormatAmount(a.current.Price))
	a.printf("Total:   %s\n", models.FormatAmount(total))
	return nil
}
