package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput      = errors.New("catalog: invalid input")
	ErrProductNotFound   = errors.New("catalog: product not found")
	ErrOutOfStock        = errors.New("catalog: out of stock")
	ErrInsufficientStock = errors.New("catalog: insufficient stock")
)

// Product is a named, priced and stocked catalog entry.
// SellPrice is derived from WholesalePrice at the last restock or margin change
// and is never re-derived on read.
type Product struct {
	Name           string
	WholesalePrice decimal.Decimal
	SellPrice      decimal.Decimal
	Stock          int
	UpdatedAt      time.Time
}

func NewProduct(name string, wholesalePrice decimal.Decimal, quantity int, margin decimal.Decimal) (*Product, error) {
	if err := validateRestock(name, wholesalePrice, quantity); err != nil {
		return nil, err
	}
	return &Product{
		Name:           name,
		WholesalePrice: wholesalePrice,
		SellPrice:      SellPrice(wholesalePrice, margin),
		Stock:          quantity,
		UpdatedAt:      time.Now().UTC(),
	}, nil
}

// Restock adds quantity units and replaces the cost baseline with wholesalePrice.
func (p *Product) Restock(wholesalePrice decimal.Decimal, quantity int, margin decimal.Decimal) error {
	if err := validateRestock(p.Name, wholesalePrice, quantity); err != nil {
		return err
	}
	p.Stock += quantity
	p.WholesalePrice = wholesalePrice
	p.SellPrice = SellPrice(wholesalePrice, margin)
	p.touch()
	return nil
}

// Reprice re-derives SellPrice from the current wholesale price.
func (p *Product) Reprice(margin decimal.Decimal) {
	p.SellPrice = SellPrice(p.WholesalePrice, margin)
	p.touch()
}

// CanSell reports the first reason quantity units could not be taken from stock.
// Zero stock is reported before the quantity is looked at.
func (p *Product) CanSell(quantity int) error {
	if p.Stock <= 0 {
		return ErrOutOfStock
	}
	if quantity <= 0 {
		return ErrInvalidInput
	}
	if quantity > p.Stock {
		return ErrInsufficientStock
	}
	return nil
}

func (p *Product) Deduct(quantity int) error {
	if err := p.CanSell(quantity); err != nil {
		return err
	}
	p.Stock -= quantity
	p.touch()
	return nil
}

// Cost is the price of quantity units at the current sell price.
func (p *Product) Cost(quantity int) decimal.Decimal {
	return p.SellPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now().UTC()
}

// SellPrice returns wholesale * (1 + margin).
func SellPrice(wholesale, margin decimal.Decimal) decimal.Decimal {
	return wholesale.Mul(decimal.NewFromInt(1).Add(margin))
}

func validateRestock(name string, wholesalePrice decimal.Decimal, quantity int) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidInput
	}
	if wholesalePrice.IsNegative() {
		return ErrInvalidInput
	}
	if quantity < 0 {
		return ErrInvalidInput
	}
	return nil
}
