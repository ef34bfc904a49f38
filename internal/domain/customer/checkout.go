package customer

import (
	"github.com/Zhima-Mochi/minishop-market/internal/domain/market"
	"github.com/shopspring/decimal"
)

type ReceiptLine struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Cost        decimal.Decimal
}

// Receipt is the itemised checkout report. Empty is set for a cart with no
// lines, which is not the same as a zero Total.
type Receipt struct {
	Empty            bool
	Lines            []ReceiptLine
	Total            decimal.Decimal
	RemainingBalance decimal.Decimal
}

// Checkout prices every cart line at the product's current sell price. Money
// already moved at add-to-cart time, so balances are not touched and Total may
// differ from what the customer actually paid if the margin changed since.
func Checkout(m *market.Market, c *Customer) *Receipt {
	r := &Receipt{
		Total:            decimal.Zero,
		RemainingBalance: c.Balance,
	}
	if c.Cart.IsEmpty() {
		r.Empty = true
		return r
	}

	r.Lines = make([]ReceiptLine, 0, c.Cart.Len())
	for name, qty := range c.Cart.Lines() {
		price := decimal.Zero
		if p, ok := m.Catalog.Lookup(name); ok {
			price = p.SellPrice
		}
		cost := price.Mul(decimal.NewFromInt(int64(qty)))
		r.Lines = append(r.Lines, ReceiptLine{
			ProductName: name,
			Quantity:    qty,
			UnitPrice:   price,
			Cost:        cost,
		})
		r.Total = r.Total.Add(cost)
	}
	return r
}
