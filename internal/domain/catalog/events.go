package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRestockedEvent is emitted after the owner buys stock from a wholesaler.
type ProductRestockedEvent struct {
	ProductName    string
	Quantity       int
	WholesalePrice decimal.Decimal
	SellPrice      decimal.Decimal
	Cost           decimal.Decimal
	MarketBalance  decimal.Decimal
	OccurredAt     time.Time
}

func (ProductRestockedEvent) EventName() string { return "catalog.product_restocked" }

func NewProductRestockedEvent(p *Product, quantity int, cost, marketBalance decimal.Decimal) ProductRestockedEvent {
	return ProductRestockedEvent{
		ProductName:    p.Name,
		Quantity:       quantity,
		WholesalePrice: p.WholesalePrice,
		SellPrice:      p.SellPrice,
		Cost:           cost,
		MarketBalance:  marketBalance,
		OccurredAt:     time.Now().UTC(),
	}
}

// MarginUpdatedEvent is emitted after every product has been repriced.
type MarginUpdatedEvent struct {
	Margin     decimal.Decimal
	Repriced   int
	OccurredAt time.Time
}

func (MarginUpdatedEvent) EventName() string { return "catalog.margin_updated" }

func NewMarginUpdatedEvent(margin decimal.Decimal, repriced int) MarginUpdatedEvent {
	return MarginUpdatedEvent{
		Margin:     margin,
		Repriced:   repriced,
		OccurredAt: time.Now().UTC(),
	}
}
