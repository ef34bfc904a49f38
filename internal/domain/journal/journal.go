package journal

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindRestock      Kind = "restock"
	KindMarginChange Kind = "margin_change"
	KindSale         Kind = "sale"
	KindCheckout     Kind = "checkout"
)

// Entry is one line of the market's audit trail. Fields not relevant to the
// kind are left at their zero value.
type Entry struct {
	ID            string
	Kind          Kind
	ProductName   string
	CustomerID    string
	Quantity      int
	Amount        decimal.Decimal
	Margin        decimal.Decimal
	MarketBalance decimal.Decimal
	OccurredAt    time.Time
}

type Repository interface {
	Append(ctx context.Context, e Entry) error
	// List returns the most recent entries, oldest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Entry, error)
}
