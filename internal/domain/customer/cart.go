package customer

import "iter"

// Cart holds unpriced quantities per product, in first-added order.
type Cart struct {
	order      []string
	quantities map[string]int
}

func NewCart() *Cart {
	return &Cart{quantities: make(map[string]int)}
}

func (c *Cart) Add(productName string, quantity int) {
	if _, ok := c.quantities[productName]; !ok {
		c.order = append(c.order, productName)
	}
	c.quantities[productName] += quantity
}

func (c *Cart) Quantity(productName string) int {
	return c.quantities[productName]
}

// Lines yields product name and accumulated quantity.
func (c *Cart) Lines() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for _, name := range c.order {
			if !yield(name, c.quantities[name]) {
				return
			}
		}
	}
}

func (c *Cart) Len() int {
	return len(c.order)
}

func (c *Cart) IsEmpty() bool {
	return len(c.order) == 0
}

func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	clone := &Cart{
		order:      append([]string(nil), c.order...),
		quantities: make(map[string]int, len(c.quantities)),
	}
	for k, v := range c.quantities {
		clone.quantities[k] = v
	}
	return clone
}
