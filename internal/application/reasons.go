package application

import (
	"errors"

	"github.com/Zhima-Mochi/minishop-market/internal/domain/catalog"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/customer"
)

const (
	FailureReasonInvalidInput      = "invalid_input"
	FailureReasonProductNotFound   = "product_not_found"
	FailureReasonOutOfStock        = "out_of_stock"
	FailureReasonInsufficientFunds = "insufficient_funds"
	FailureReasonInsufficientStock = "insufficient_stock"
	FailureReasonSessionNotFound   = "session_not_found"
)

// FailureReason maps an error to a low-cardinality reason for logs and spans.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, catalog.ErrInvalidInput):
		return FailureReasonInvalidInput
	case errors.Is(err, catalog.ErrProductNotFound):
		return FailureReasonProductNotFound
	case errors.Is(err, catalog.ErrOutOfStock):
		return FailureReasonOutOfStock
	case errors.Is(err, customer.ErrInsufficientFunds):
		return FailureReasonInsufficientFunds
	case errors.Is(err, catalog.ErrInsufficientStock):
		return FailureReasonInsufficientStock
	case errors.Is(err, customer.ErrNotFound):
		return FailureReasonSessionNotFound
	default:
		return err.Error()
	}
}
