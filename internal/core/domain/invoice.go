package domain

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
)

type Invoice struct {
	InvoiceID string
	CreatedAt string
	Total     decimal.Decimal
}

type InvoiceLine struct {
	Name      string
	Qty       int
	Subtotal  decimal.Decimal
	PriceEach decimal.Decimal
}

// Amount prefers the server subtotal and falls back to price_each * qty.
func (l InvoiceLine) Amount() decimal.Decimal {
	if !l.Subtotal.IsZero() {
		return l.Subtotal
	}
	return l.PriceEach.Mul(decimal.NewFromInt(int64(l.Qty)))
}

type InvoiceDetail struct {
	Invoice Invoice
	Lines   []InvoiceLine
}

type Receipt struct {
	InvoiceID string
	Date      string
	Total     decimal.Decimal
	Lines     []InvoiceLine
	ShopName  string
	ShopPhone string
	Thanks    string
}

const receiptDateLayout = "2006-01-02 15:04:05"

// NewReceipt fills gaps in the server record: the requested id stands in for
// a missing invoice_id and now for a missing created_at.
func NewReceipt(requestedID string, detail InvoiceDetail, s Settings, now time.Time) Receipt {
	r := Receipt{
		InvoiceID: detail.Invoice.InvoiceID,
		Date:      detail.Invoice.CreatedAt,
		Total:     detail.Invoice.Total,
		Lines:     detail.Lines,
		ShopName:  s.ShopName,
		ShopPhone: s.ShopPhone,
		Thanks:    s.ShopThanks,
	}
	if r.InvoiceID == "" {
		r.InvoiceID = requestedID
	}
	if r.Date == "" {
		r.Date = now.Format(receiptDateLayout)
	}
	if r.ShopName == "" {
		r.ShopName = DefaultSettings().ShopName
	}
	if r.Thanks == "" {
		r.Thanks = DefaultSettings().ShopThanks
	}
	return r
}

// Render writes a printable plain-text receipt.
func (r Receipt) Render(w io.Writer) error {
	rule := strings.Repeat("-", 32)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, r.ShopName)
	if r.ShopPhone != "" {
		fmt.Fprintln(tw, r.ShopPhone)
	}
	fmt.Fprintln(tw, rule)
	fmt.Fprintf(tw, "Invoice: %s\n", r.InvoiceID)
	fmt.Fprintf(tw, "Date: %s\n", r.Date)
	fmt.Fprintln(tw, rule)
	for _, l := range r.Lines {
		fmt.Fprintf(tw, "%s x%d\t%s\t\n", l.Name, l.Qty, FormatMoney(l.Amount()))
	}
	fmt.Fprintln(tw, rule)
	fmt.Fprintf(tw, "TOTAL\t%s\t\n", FormatMoney(r.Total))
	fmt.Fprintln(tw, rule)
	fmt.Fprintln(tw, r.Thanks)
	return tw.Flush()
}
