package domain

import (
	"sync"

	"github.com/shopspring/decimal"
)

type CartLine struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Qty   int
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// Cart maps item id to a line with qty >= 1. Lines keep insertion order.
// A line whose quantity drops to zero or below is removed, never stored.
type Cart struct {
	mu    sync.Mutex
	lines map[string]*CartLine
	order []string
}

func NewCart() *Cart {
	return &Cart{lines: make(map[string]*CartLine)}
}

// AddOrIncrement creates a line with qty 1 or bumps an existing one. The
// price captured on the first add is kept on repeat adds.
func (c *Cart) AddOrIncrement(item Item) CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[item.ID]
	if !ok {
		line = &CartLine{ID: item.ID, Name: item.Name, Price: item.Price, Qty: 1}
		c.lines[item.ID] = line
		c.order = append(c.order, item.ID)
		return *line
	}

	line.Qty++
	return *line
}

// AdjustQty adds delta to the line quantity and removes the line when the
// result is not positive. It reports whether a line with that id existed.
func (c *Cart) AdjustQty(id string, delta int) (CartLine, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[id]
	if !ok {
		return CartLine{}, false
	}

	line.Qty += delta
	if line.Qty <= 0 {
		c.removeLocked(id)
		return CartLine{ID: id, Name: line.Name, Price: line.Price}, true
	}
	return *line, true
}

func (c *Cart) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lines[id]; !ok {
		return false
	}
	c.removeLocked(id)
	return true
}

func (c *Cart) removeLocked(id string) {
	delete(c.lines, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = make(map[string]*CartLine)
	c.order = nil
}

// Settle takes each submitted quantity off its line and removes lines that
// reach zero. Lines added or raised after the submission stay in the cart.
func (c *Cart) Settle(submitted []OrderLine) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, sl := range submitted {
		line, ok := c.lines[sl.ItemID]
		if !ok {
			continue
		}
		line.Qty -= sl.Qty
		if line.Qty <= 0 {
			c.removeLocked(sl.ItemID)
		}
	}
}

// Total is recomputed from the lines on every call.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, line := range c.lines {
		n += line.Qty
	}
	return n
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return c.Len() == 0
}

func (c *Cart) Line(id string) (CartLine, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[id]
	if !ok {
		return CartLine{}, false
	}
	return *line, true
}

func (c *Cart) Lines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]CartLine, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

func (c *Cart) OrderLines() []OrderLine {
	lines := c.Lines()
	out := make([]OrderLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, OrderLine{ItemID: l.ID, Name: l.Name, Qty: l.Qty, PriceEach: l.Price})
	}
	return out
}

type CartView struct {
	Lines []CartLine
	Count int
	Total decimal.Decimal
}

// View takes a consistent snapshot of lines, count and total.
func (c *Cart) View() CartView {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := CartView{Lines: make([]CartLine, 0, len(c.order)), Total: decimal.Zero}
	for _, id := range c.order {
		line := *c.lines[id]
		view.Lines = append(view.Lines, line)
		view.Count += line.Qty
		view.Total = view.Total.Add(line.Subtotal())
	}
	return view
}
