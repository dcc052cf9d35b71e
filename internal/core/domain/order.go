package domain

import "github.com/shopspring/decimal"

type CheckoutState string

const (
	CheckoutIdle       CheckoutState = "idle"
	CheckoutSubmitting CheckoutState = "submitting"
	CheckoutCommitted  CheckoutState = "committed"
	CheckoutFailed     CheckoutState = "failed"
)

// OrderLine is the wire snapshot of one cart line inside a createInvoice request.
type OrderLine struct {
	ItemID    string
	Name      string
	Qty       int
	PriceEach decimal.Decimal
}

type OrderRequest struct {
	RequestID string
	Cashier   string
	Lines     []OrderLine
}

type OrderConfirmation struct {
	Status    string
	InvoiceID string
}

func (c OrderConfirmation) Committed() bool {
	return c.Status == "success" && c.InvoiceID != ""
}
