package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rl1809/smart-pos/internal/core/domain"
	"github.com/rl1809/smart-pos/internal/port"
)

const (
	DefaultTimeout = 15 * time.Second

	scanTimeLayout  = "2006-01-02T15:04:05.000Z07:00"
	maxResponseBody = 8 << 20
)

// Client talks to the spreadsheet web app. The base URL is read from the
// endpoint on every call so a settings change takes effect immediately.
type Client struct {
	endpoint port.Endpoint
	http     *http.Client
	log      logrus.FieldLogger
}

func NewClient(endpoint port.Endpoint, httpClient *http.Client, log logrus.FieldLogger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		endpoint: endpoint,
		http:     httpClient,
		log:      log.WithField("component", "remote"),
	}
}

func (c *Client) base() (string, error) {
	base := c.endpoint.APIBase()
	if base == "" {
		return "", domain.ErrConfig
	}
	return base, nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	base, err := c.base()
	if err != nil {
		return err
	}
	u, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("%w: parse api url: %w", domain.ErrConfig, err)
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", domain.ErrNetwork, err)
	}
	return c.do(req, params.Get("action"), out)
}

func (c *Client) post(ctx context.Context, action string, body, out any) error {
	base, err := c.base()
	if err != nil {
		return err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: build request: %w", domain.ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, action, out)
}

func (c *Client) do(req *http.Request, action string, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrNetwork, action, err)
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"action":   action,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("remote call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		return fmt.Errorf("%w: %s: http status %d", domain.ErrNetwork, action, resp.StatusCode)
	}
	if out == nil {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: decode response: %w", domain.ErrNetwork, action, err)
	}
	return nil
}

func (c *Client) GetItems(ctx context.Context) ([]domain.Item, error) {
	var resp itemsResponse
	if err := c.get(ctx, url.Values{"action": {"getItems"}}, &resp); err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(resp.Items))
	for _, w := range resp.Items {
		items = append(items, w.toDomain())
	}
	return items, nil
}

// AddItem returns nil when the server answers without an item.
func (c *Client) AddItem(ctx context.Context, fields domain.NewItem) (*domain.Item, error) {
	req := addItemRequest{
		Action:   "addItem",
		Name:     fields.Name,
		Price:    jsonPrice(fields.Price),
		SKU:      fields.SKU,
		Category: fields.Category,
	}
	var resp addItemResponse
	if err := c.post(ctx, req.Action, req, &resp); err != nil {
		return nil, err
	}
	if resp.Item == nil {
		return nil, nil
	}
	item := resp.Item.toDomain()
	return &item, nil
}

func (c *Client) CreateInvoice(ctx context.Context, order domain.OrderRequest) (domain.OrderConfirmation, error) {
	req := createInvoiceRequest{
		Action:  "createInvoice",
		Cashier: order.Cashier,
		Items:   make([]wireOrderLine, 0, len(order.Lines)),
	}
	for _, l := range order.Lines {
		req.Items = append(req.Items, wireOrderLine{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Qty:       l.Qty,
			PriceEach: jsonPrice(l.PriceEach),
		})
	}

	var resp createInvoiceResponse
	if err := c.post(ctx, req.Action, req, &resp); err != nil {
		return domain.OrderConfirmation{}, err
	}

	conf := domain.OrderConfirmation{Status: resp.Status}
	if resp.Invoice != nil {
		conf.InvoiceID = string(resp.Invoice.InvoiceID)
	}
	return conf, nil
}

func (c *Client) GetInvoice(ctx context.Context, invoiceID string) (domain.InvoiceDetail, error) {
	var resp getInvoiceResponse
	params := url.Values{"action": {"getInvoice"}, "invoice_id": {invoiceID}}
	if err := c.get(ctx, params, &resp); err != nil {
		return domain.InvoiceDetail{}, err
	}
	return resp.toDomain(), nil
}

func (c *Client) LogScan(ctx context.Context, event domain.ScanEvent) error {
	req := logScanRequest{
		Action:   "logScan",
		Barcode:  event.Barcode,
		Datetime: event.ScannedAt.UTC().Format(scanTimeLayout),
	}
	return c.post(ctx, req.Action, req, nil)
}

func (c *Client) SaveOrder(ctx context.Context, ids []string) error {
	req := saveOrderRequest{Action: "saveOrder", Order: ids}
	return c.post(ctx, req.Action, req, nil)
}
