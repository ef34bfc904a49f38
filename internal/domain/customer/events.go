package customer

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemAddedToCartEvent is emitted after a successful add-to-cart transfer.
type ItemAddedToCartEvent struct {
	CustomerID      string
	ProductName     string
	Quantity        int
	Cost            decimal.Decimal
	CustomerBalance decimal.Decimal
	MarketBalance   decimal.Decimal
	OccurredAt      time.Time
}

func (ItemAddedToCartEvent) EventName() string { return "customer.item_added" }

func NewItemAddedToCartEvent(customerID string, p *Purchase) ItemAddedToCartEvent {
	return ItemAddedToCartEvent{
		CustomerID:      customerID,
		ProductName:     p.ProductName,
		Quantity:        p.Quantity,
		Cost:            p.Cost,
		CustomerBalance: p.CustomerBalance,
		MarketBalance:   p.MarketBalance,
		OccurredAt:      time.Now().UTC(),
	}
}

// CheckoutCompletedEvent is emitted when a non-empty cart is checked out.
type CheckoutCompletedEvent struct {
	CustomerID       string
	Lines            int
	Total            decimal.Decimal
	RemainingBalance decimal.Decimal
	OccurredAt       time.Time
}

func (CheckoutCompletedEvent) EventName() string { return "customer.checkout_completed" }

func NewCheckoutCompletedEvent(customerID string, r *Receipt) CheckoutCompletedEvent {
	return CheckoutCompletedEvent{
		CustomerID:       customerID,
		Lines:            len(r.Lines),
		Total:            r.Total,
		RemainingBalance: r.RemainingBalance,
		OccurredAt:       time.Now().UTC(),
	}
}
