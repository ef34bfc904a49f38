package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zhima-Mochi/minishop-market/internal/domain/catalog"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/customer"
	"github.com/Zhima-Mochi/minishop-market/internal/observability"
	"github.com/Zhima-Mochi/minishop-market/internal/observability/logctx"
)

const (
	msgInvalidInput      = "Invalid input."
	msgProductNotFound   = "Product not found."
	msgOutOfStock        = "Out of stock."
	msgInsufficientFunds = "Credit limit reached! Not enough balance."
	msgNoProducts        = "No products available."
	msgEmptyCart         = "Cart is empty."
)

// message renders a rejected operation for the user. stock is only used for
// ErrInsufficientStock. ok is false for errors that are not user mistakes.
func message(err error, stock int) (msg string, ok bool) {
	switch {
	case errors.Is(err, catalog.ErrInvalidInput):
		return msgInvalidInput, true
	case errors.Is(err, catalog.ErrProductNotFound):
		return msgProductNotFound, true
	case errors.Is(err, catalog.ErrOutOfStock):
		return msgOutOfStock, true
	case errors.Is(err, customer.ErrInsufficientFunds):
		return msgInsufficientFunds, true
	case errors.Is(err, catalog.ErrInsufficientStock):
		return fmt.Sprintf("Only %d units available.", stock), true
	default:
		return "Operation failed. Please try again.", false
	}
}

func (m *Menu) report(ctx context.Context, err error, stock int) {
	msg, ok := message(err, stock)
	if !ok {
		logctx.FromOr(ctx, m.log).Error("menu_operation_failed", observability.F("error", err))
	}
	m.println(msg)
}
