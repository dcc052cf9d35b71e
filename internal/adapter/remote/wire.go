package remote

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rl1809/smart-pos/internal/core/domain"
)

// flexString accepts a JSON string or number. Spreadsheet ids arrive as either.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexDecimal accepts a number, a numeric string, "" or null. The last two are zero.
type flexDecimal struct {
	decimal.Decimal
}

func (f *flexDecimal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		f.Decimal = decimal.Zero
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			f.Decimal = decimal.Zero
			return nil
		}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return err
	}
	f.Decimal = d
	return nil
}

// flexInt accepts a number or numeric string.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	var d flexDecimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*f = flexInt(d.IntPart())
	return nil
}

type wireItem struct {
	ID       flexString  `json:"id"`
	Name     flexString  `json:"name"`
	Price    flexDecimal `json:"price"`
	SKU      flexString  `json:"sku"`
	Category flexString  `json:"category"`
}

func (w wireItem) toDomain() domain.Item {
	return domain.Item{
		ID:       string(w.ID),
		Name:     string(w.Name),
		Price:    w.Price.Decimal,
		SKU:      string(w.SKU),
		Category: string(w.Category),
	}
}

type itemsResponse struct {
	Items []wireItem `json:"items"`
}

type addItemRequest struct {
	Action   string      `json:"action"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	SKU      string      `json:"sku"`
	Category string      `json:"category"`
}

type addItemResponse struct {
	Item *wireItem `json:"item"`
}

type wireOrderLine struct {
	ItemID    string      `json:"item_id"`
	Name      string      `json:"name"`
	Qty       int         `json:"qty"`
	PriceEach json.Number `json:"price_each"`
}

type createInvoiceRequest struct {
	Action  string          `json:"action"`
	Cashier string          `json:"cashier"`
	Items   []wireOrderLine `json:"items"`
}

type wireInvoice struct {
	InvoiceID flexString  `json:"invoice_id"`
	CreatedAt flexString  `json:"created_at"`
	Total     flexDecimal `json:"total"`
}

type createInvoiceResponse struct {
	Status  string       `json:"status"`
	Invoice *wireInvoice `json:"invoice"`
}

type wireInvoiceLine struct {
	Name      flexString  `json:"name"`
	Qty       flexInt     `json:"qty"`
	Subtotal  flexDecimal `json:"subtotal"`
	PriceEach flexDecimal `json:"price_each"`
}

type getInvoiceResponse struct {
	Invoice *wireInvoice      `json:"invoice"`
	Items   []wireInvoiceLine `json:"items"`
}

func (r getInvoiceResponse) toDomain() domain.InvoiceDetail {
	var detail domain.InvoiceDetail
	if r.Invoice != nil {
		detail.Invoice = domain.Invoice{
			InvoiceID: string(r.Invoice.InvoiceID),
			CreatedAt: string(r.Invoice.CreatedAt),
			Total:     r.Invoice.Total.Decimal,
		}
	}
	for _, l := range r.Items {
		detail.Lines = append(detail.Lines, domain.InvoiceLine{
			Name:      string(l.Name),
			Qty:       int(l.Qty),
			Subtotal:  l.Subtotal.Decimal,
			PriceEach: l.PriceEach.Decimal,
		})
	}
	return detail
}

type logScanRequest struct {
	Action   string `json:"action"`
	Barcode  string `json:"barcode"`
	Datetime string `json:"datetime"`
}

type saveOrderRequest struct {
	Action string   `json:"action"`
	Order  []string `json:"order"`
}

// jsonPrice renders a price as a bare JSON number.
func jsonPrice(d decimal.Decimal) json.Number {
	if d.IsInteger() {
		return json.Number(strconv.FormatInt(d.IntPart(), 10))
	}
	return json.Number(d.String())
}
