// Package cart holds the checkout-session shopping cart. The cart is
// ephemeral client state: it is never persisted and only its flattened
// snapshot reaches the order collection on submit.
package cart

import (
	"github.com/shopspring/decimal"
)

type Line struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Qty       int
}

type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// AddItem merges by product id: an existing line gains one unit, otherwise a
// new line with quantity 1 is appended at the end.
func (c *Cart) AddItem(productID, name string, price decimal.Decimal) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Qty++
			return
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: productID,
		Name:      name,
		Price:     price,
		Qty:       1,
	})
}

// UpdateQuantity adjusts a line by delta, flooring at 1. Removing a line is
// RemoveItem, never a quantity of zero.
func (c *Cart) UpdateQuantity(productID string, delta int) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			qty := c.lines[i].Qty + delta
			if qty < 1 {
				qty = 1
			}
			c.lines[i].Qty = qty
			return
		}
	}
}

func (c *Cart) RemoveItem(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Lines() []Line {
	return c.lines
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Total recomputes on every call; it is never cached.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Qty))))
	}
	return total
}

type OrderItem struct {
	Name  string
	Qty   int
	Price decimal.Decimal
}

// ToOrderItems projects each line to the immutable snapshot stored on the
// order, decoupled from any later product edit.
func (c *Cart) ToOrderItems() []OrderItem {
	items := make([]OrderItem, 0, len(c.lines))
	for _, line := range c.lines {
		items = append(items, OrderItem{
			Name:  line.Name,
			Qty:   line.Qty,
			Price: line.Price,
		})
	}
	return items
}
