package customer

import (
	"fmt"

	"github.com/Zhima-Mochi/minishop-market/internal/domain/catalog"
	"github.com/Zhima-Mochi/minishop-market/internal/domain/market"
	"github.com/shopspring/decimal"
)

// Purchase describes a successful add-to-cart transfer.
type Purchase struct {
	ProductName     string
	Quantity        int
	UnitPrice       decimal.Decimal
	Cost            decimal.Decimal
	RemainingStock  int
	CustomerBalance decimal.Decimal
	MarketBalance   decimal.Decimal
}

// FindProduct returns the product a customer may buy from, reporting
// ErrProductNotFound or ErrOutOfStock before any quantity is known.
func FindProduct(m *market.Market, productName string) (*catalog.Product, error) {
	p, ok := m.Catalog.Lookup(productName)
	if !ok {
		return nil, fmt.Errorf("customer: find %q: %w", productName, ErrProductNotFound)
	}
	if p.Stock <= 0 {
		return nil, fmt.Errorf("customer: find %q: %w", productName, ErrOutOfStock)
	}
	return p, nil
}

// AddToCart moves quantity units of productName from the market to the
// customer's cart and the matching payment from the customer to the market.
//
// Checks run in a fixed order: product exists, product in stock, quantity
// positive, funds sufficient, stock sufficient. A request failing both of the
// last two is reported as ErrInsufficientFunds.
func AddToCart(m *market.Market, c *Customer, productName string, quantity int) (*Purchase, error) {
	p, err := FindProduct(m, productName)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("customer: add %q: quantity %d: %w", productName, quantity, ErrInvalidInput)
	}

	cost := p.Cost(quantity)
	if cost.GreaterThan(c.Balance) {
		return nil, fmt.Errorf("customer: add %q: cost %s exceeds balance %s: %w",
			productName, cost.StringFixed(2), c.Balance.StringFixed(2), ErrInsufficientFunds)
	}

	if err := p.Deduct(quantity); err != nil {
		return nil, fmt.Errorf("customer: add %q: only %d available: %w", productName, p.Stock, err)
	}
	c.Balance = c.Balance.Sub(cost)
	m.Receive(cost)
	c.Cart.Add(productName, quantity)

	return &Purchase{
		ProductName:     productName,
		Quantity:        quantity,
		UnitPrice:       p.SellPrice,
		Cost:            cost,
		RemainingStock:  p.Stock,
		CustomerBalance: c.Balance,
		MarketBalance:   m.Balance,
	}, nil
}
