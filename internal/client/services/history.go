package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

// HistoryService lists the purchases of the logged-in customer.
type HistoryService interface {
	Purchases(ctx context.Context) ([]models.PurchaseSummary, error)
	Purchase(ctx context.Context, id string) (models.PurchaseSummary, error)
}

type historyService struct {
	api      client.API
	session  session.Provider
	accounts AccountService
	log      logging.Logger
}

func NewHistoryService(api client.API, sess session.Provider, accounts AccountService, log logging.Logger) HistoryService {
	return &historyService{api: api, session: sess, accounts: accounts, log: log}
}

func (h *historyService) Purchases(ctx context.Context) ([]models.PurchaseSummary, error) {
	cust, err := h.accounts.Customer(ctx)
	if err != nil {
		return nil, err
	}
	token, err := h.session.Token(ctx)
	if err != nil {
		return nil, err
	}

	sales, err := h.api.SalesByCustomer(ctx, token, cust.ID)
	if err != nil {
		h.log.Warn(ctx, "loading purchase history failed", "customer_id", cust.ID, "error", err)
		return nil, fmt.Errorf("purchase history: %w", err)
	}

	out := make([]models.PurchaseSummary, 0, len(sales))
	for _, s := range sales {
		out = append(out, models.Summarize(s))
	}
	return out, nil
}

// Purchase finds one purchase by id or folio.
func (h *historyService) Purchase(ctx context.Context, id string) (models.PurchaseSummary, error) {
	all, err := h.Purchases(ctx)
	if err != nil {
		return models.PurchaseSummary{}, err
	}
	for _, p := range all {
		if p.ID == id || p.Folio == id {
			return p, nil
		}
	}
	return models.PurchaseSummary{}, fmt.Errorf("purchase %s: %w", id, client.ErrNotFound)
}
