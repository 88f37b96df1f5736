package cli

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

func (a *App) History(ctx context.Context) error {
	list, err := a.historyService.Purchases(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No purchases yet.")
		return nil
	}
	for _, p := range list {
		a.printf("%s  %-30s %12s\n", p.Folio, p.Brand+" "+p.Model+" "+p.Year, models.FormatAmount(p.FinalPrice))
	}
	a.println("Type 'purchase <folio>' for details.")
	return nil
}

// Purchase shows one purchase of the history, by id or folio.
func (a *App) Purchase(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println("Usage: purchase <folio>")
		return nil
	}
	p, err := a.historyService.Purchase(ctx, args[0])
	if err != nil {
		return err
	}

	a.printf("Folio %s\n", p.Folio)
	a.printf("  Vehicle:  %s %s %s\n", p.Brand, p.Model, p.Year)
	a.printf("  Plate:    %s\n", p.Plate)
	for _, s := range p.Services {
		a.printf("  Service:  %s  %s  (%s)\n", s.Name, s.Price, s.Duration)
	}
	a.printf("  Subtotal: %s\n", models.FormatAmount(p.Subtotal))
	a.printf("  Total:    %s\n", models.FormatAmount(p.FinalPrice))
	a.printf("  Agent:    %s / %s\n", p.AgentEmail, p.AgentPhone)
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	c, err := a.accountService.Customer(ctx)
	if err != nil {
		return err
	}
	a.println(c.FullName())
	a.printf("  Email:      %s\n", c.Email)
	if c.Telephone != "" {
		a.printf("  Telephone:  %s\n", c.Telephone)
	}
	if c.Agent != nil {
		a.printf("  Agent:      %s\n", c.Agent.FullName())
	}
	return nil
}

// Agent shows the sales agent assigned to the customer.
func (a *App) Agent(ctx context.Context) error {
	c, err := a.accountService.Customer(ctx)
	if err != nil {
		return err
	}
	if c.Agent == nil {
		a.println("No agent is assigned to your account.")
		return nil
	}
	a.println(c.Agent.FullName())
	a.printf("  Email:      %s\n", orNA(c.Agent.Email))
	a.printf("  Telephone:  %s\n", orNA(c.Agent.Telephone))
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
