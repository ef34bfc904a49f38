package market

import (
	"fmt"

	"github.com/Zhima-Mochi/minishop-market/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

var ErrInvalidInput = catalog.ErrInvalidInput

var (
	DefaultOpeningBalance = decimal.RequireFromString("5000.00")
	DefaultMargin         = decimal.RequireFromString("0.20")
)

// Market is the owner's ledger: a running balance, the catalog-wide margin and
// the catalog itself. The balance has no floor.
type Market struct {
	ID      string
	Balance decimal.Decimal
	Margin  decimal.Decimal
	Catalog *catalog.Catalog
}

func New(id string, openingBalance, margin decimal.Decimal) *Market {
	return &Market{
		ID:      id,
		Balance: openingBalance,
		Margin:  margin,
		Catalog: catalog.New(),
	}
}

// BuyFromWholesaler debits wholesalePrice*quantity and restocks the product.
// Either both happen or, on invalid input, neither does.
func (m *Market) BuyFromWholesaler(name string, wholesalePrice decimal.Decimal, quantity int) (*catalog.Product, decimal.Decimal, error) {
	if name == "" || wholesalePrice.IsNegative() || quantity < 0 {
		return nil, decimal.Zero, fmt.Errorf("market: buy %q: %w", name, ErrInvalidInput)
	}

	p, err := m.Catalog.Restock(name, wholesalePrice, quantity, m.Margin)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("market: buy %q: %w", name, err)
	}

	cost := wholesalePrice.Mul(decimal.NewFromInt(int64(quantity)))
	m.Balance = m.Balance.Sub(cost)
	return p, cost, nil
}

// SetProfitMargin stores the margin and reprices the whole catalog. The sign is
// not checked.
func (m *Market) SetProfitMargin(margin decimal.Decimal) {
	m.Margin = margin
	m.Catalog.UpdateMargin(margin)
}

// Receive credits a customer payment.
func (m *Market) Receive(amount decimal.Decimal) {
	m.Balance = m.Balance.Add(amount)
}

func (m *Market) Clone() *Market {
	if m == nil {
		return nil
	}
	clone := *m
	clone.Catalog = m.Catalog.Clone()
	return &clone
}
