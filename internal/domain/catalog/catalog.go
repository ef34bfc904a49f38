package catalog

import (
	"fmt"
	"iter"

	"github.com/shopspring/decimal"
)

// Listing is the read-only view of a product shown to owners and customers.
type Listing struct {
	Name      string
	Stock     int
	SellPrice decimal.Decimal
}

// Catalog maps product names to products and remembers insertion order.
type Catalog struct {
	order    []string
	products map[string]*Product
}

func New() *Catalog {
	return &Catalog{
		products: make(map[string]*Product),
	}
}

// Restock creates the product on first sight, otherwise adds stock and
// overwrites its wholesale and sell price. Nothing changes on error.
func (c *Catalog) Restock(name string, wholesalePrice decimal.Decimal, quantity int, margin decimal.Decimal) (*Product, error) {
	if p, ok := c.products[name]; ok {
		if err := p.Restock(wholesalePrice, quantity, margin); err != nil {
			return nil, fmt.Errorf("catalog: restock %q: %w", name, err)
		}
		return p, nil
	}

	p, err := NewProduct(name, wholesalePrice, quantity, margin)
	if err != nil {
		return nil, fmt.Errorf("catalog: restock %q: %w", name, err)
	}
	c.products[name] = p
	c.order = append(c.order, name)
	return p, nil
}

// UpdateMargin re-derives the sell price of every product.
func (c *Catalog) UpdateMargin(margin decimal.Decimal) {
	for _, name := range c.order {
		c.products[name].Reprice(margin)
	}
}

func (c *Catalog) Lookup(name string) (*Product, bool) {
	p, ok := c.products[name]
	return p, ok
}

// Get is Lookup returning ErrProductNotFound on a miss.
func (c *Catalog) Get(name string) (*Product, error) {
	p, ok := c.products[name]
	if !ok {
		return nil, fmt.Errorf("catalog: get %q: %w", name, ErrProductNotFound)
	}
	return p, nil
}

// Products yields listings in insertion order.
func (c *Catalog) Products() iter.Seq[Listing] {
	return func(yield func(Listing) bool) {
		for _, name := range c.order {
			p := c.products[name]
			if !yield(Listing{Name: p.Name, Stock: p.Stock, SellPrice: p.SellPrice}) {
				return
			}
		}
	}
}

func (c *Catalog) Len() int {
	return len(c.order)
}

func (c *Catalog) Clone() *Catalog {
	if c == nil {
		return nil
	}
	clone := &Catalog{
		order:    append([]string(nil), c.order...),
		products: make(map[string]*Product, len(c.products)),
	}
	for name, p := range c.products {
		clone.products[name] = p.Clone()
	}
	return clone
}
