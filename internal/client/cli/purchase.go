package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/purchase"
	"github.com/dmitrijs2005/storefront/internal/client/services"
)

// Buy shows the purchase summary of the vehicle in view plus the selected
// services and, once the user confirms, runs the purchase.
func (a *App) Buy(ctx context.Context) error {
	if a.current == nil {
		return fmt.Errorf("%w: pick a vehicle first with 'car <id>'", services.ErrInvalidInput)
	}
	if a.sequencer.State() == purchase.Completed {
		a.println("Finish the current purchase first with 'finish'.")
		return nil
	}

	cust, err := a.accountService.Customer(ctx)
	if err != nil {
		return err
	}
	v := *a.current
	items := a.selection.Items()
	total, err := purchase.Total(v.Price, items, a.strictPrices)
	if err != nil {
		return err
	}

	a.println("Purchase summary")
	a.printf("  Buyer:    %s\n", cust.FullName())
	a.printf("  Vehicle:  %s  %s\n", v.Title(), models.FormatAmount(v.Price))
	for _, s := range items {
		a.printf("  Service:  %s  %s\n", s.Name, s.Price)
	}
	a.printf("  Total:    %s\n", models.FormatAmount(total))

	if err := a.sequencer.Open(); err != nil {
		return err
	}
	ok, err := confirm(a.reader, "Confirm purchase?", a.out)
	if err != nil || !ok {
		if cerr := a.sequencer.Cancel(); cerr != nil {
			a.log.Warn(ctx, "cancel purchase", "error", cerr)
		}
		if err != nil {
			return err
		}
		a.println("Purchase cancelled.")
		return nil
	}

	res, err := a.sequencer.Confirm(ctx, purchase.Order{
		Vehicle:      v,
		Services:     items,
		CustomerID:   cust.ID,
		CustomerName: cust.FullName(),
	})
	if err != nil {
		return err
	}

	rc := purchase.NewReceipt(res, a.now())
	a.printf("Purchase completed. Folio %s, total %s.\n", rc.Folio, models.FormatAmount(res.Total))
	a.println("Type 'receipt' to get your receipt and 'finish' when you are done.")
	return nil
}

// Receipt renders the receipt of the completed purchase and shares it.
func (a *App) Receipt(ctx context.Context) error {
	location, err := a.sequencer.Share(ctx, a.sharer, a.now())
	if err != nil {
		return err
	}
	a.printf("Receipt available at %s\n", location)
	return nil
}

// Finish closes the completed purchase and starts over.
func (a *App) Finish(_ context.Context) error {
	if err := a.sequencer.Finish(); err != nil {
		return err
	}
	a.resetShopping()
	a.println("Thank you for your purchase!")
	return nil
}
