package customer

import (
	"errors"
	"time"

	"github.com/Zhima-Mochi/minishop-market/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("customer: session not found")
	ErrInsufficientFunds = errors.New("customer: insufficient funds")

	ErrInvalidInput      = catalog.ErrInvalidInput
	ErrProductNotFound   = catalog.ErrProductNotFound
	ErrOutOfStock        = catalog.ErrOutOfStock
	ErrInsufficientStock = catalog.ErrInsufficientStock
)

var DefaultOpeningBalance = decimal.RequireFromString("1000.00")

// Customer is one shopping session. It never owns the market; operations take
// the market as an argument.
type Customer struct {
	ID        string
	Balance   decimal.Decimal
	Cart      *Cart
	StartedAt time.Time
}

func New(id string, openingBalance decimal.Decimal) *Customer {
	return &Customer{
		ID:        id,
		Balance:   openingBalance,
		Cart:      NewCart(),
		StartedAt: time.Now().UTC(),
	}
}

func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Cart = c.Cart.Clone()
	return &clone
}
