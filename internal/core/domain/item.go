package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Item struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	SKU      string
	Category string
}

// NewItem carries the fields of an item-creation request. The server assigns the id.
type NewItem struct {
	Name     string          `validate:"required"`
	Price    decimal.Decimal `validate:"-"`
	SKU      string
	Category string
}

func (n NewItem) Normalize() NewItem {
	n.Name = strings.TrimSpace(n.Name)
	n.SKU = strings.TrimSpace(n.SKU)
	n.Category = strings.TrimSpace(n.Category)
	return n
}
