package cart

import "bakehouse/internal/models"

// Line is one (product, quantity) pair in a cart. The product fields are
// copied in at add time so the cart renders without extra catalog lookups.
type Line struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Quantity  int     `json:"quantity"`
}

// Cart is an ordered collection of lines for one browsing session. It holds
// at most one line per product ID and never stores its total; the total is
// recomputed from the lines on every read so it cannot drift.
//
// Cart is not safe for concurrent use; the Store serializes access to it.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem adds one unit of the product. If a line for the product already
// exists its quantity is incremented, otherwise a new line is appended with
// quantity 1.
func (c *Cart) AddItem(product *models.Product) {
	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
		Quantity:  1,
	})
}

// UpdateQuantity sets the quantity of the line for productID. A quantity of
// zero or below removes the line; updating an absent line is a no-op.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem removes the line for productID if present.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// ItemCount returns the sum of quantities across all lines. This feeds the
// cart badge and is distinct from the number of lines.
func (c *Cart) ItemCount() int {
	count := 0
	for _, l := range c.lines {
		count += l.Quantity
	}
	return count
}

// Total returns Σ(price × quantity) over all lines.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, l := range c.lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}
