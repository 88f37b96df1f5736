package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/client"
	"github.com/dmitrijs2005/storefront/internal/client/purchase"
	"github.com/dmitrijs2005/storefront/internal/client/services"
)

// userMessage renders err as the single line shown to the user.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var partial *purchase.PartialFailureError
	if errors.As(err, &partial) {
		switch {
		case partial.Compensated:
			return "The sale could not be recorded. The vehicle reservation was released, you can try again."
		case partial.Attempted:
			return "The sale could not be recorded and the vehicle is still reserved. Please contact the dealership."
		default:
			return "The vehicle was reserved but the sale could not be recorded. Please contact the dealership or try 'buy' again."
		}
	}

	var apiErr *client.APIError

	switch {
	case errors.Is(err, context.Canceled):
		return "Cancelled."
	case errors.Is(err, services.ErrInvalidInput):
		_, msg, _ := strings.Cut(err.Error(), services.ErrInvalidInput.Error()+": ")
		if msg == "" {
			return "Invalid input."
		}
		return capitalize(msg) + "."
	case errors.Is(err, client.ErrNoSession):
		return "Please log in first."
	case errors.Is(err, client.ErrUnauthorized):
		return "Your session is not authorized. Please log in again."
	case errors.Is(err, client.ErrUnavailable):
		return "The store is unreachable right now. Please try again later."
	case errors.Is(err, services.ErrIdentityUnresolved):
		return "We could not determine your account. Please log in again."
	case errors.Is(err, purchase.ErrMissingCustomer):
		return "Your customer record is incomplete. Please contact your agent."
	case errors.Is(err, purchase.ErrInvalidPrice):
		return "A selected service has an invalid price."
	case errors.Is(err, purchase.ErrInvalidState):
		return "That action is not available right now."
	case errors.Is(err, client.ErrNotFound):
		return "Not found."
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return "The store rejected the request: " + apiErr.Message
	}
	return "Something went wrong: " + err.Error()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
