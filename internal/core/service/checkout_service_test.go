package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/smart-pos/internal/core/domain"
)

func newTestCheckout(api *mockAPI, endpoint string) (*CheckoutService, *recordingNotifier) {
	notifier := &recordingNotifier{}
	settings := NewSettingsService(newMockStore(), quietLogger(), "")
	return NewCheckoutService(api, stubEndpoint(endpoint), settings, notifier, quietLogger(), ""), notifier
}

func filledCart() *domain.Cart {
	cart := domain.NewCart()
	a := domain.Item{ID: "A", Name: "Rice", Price: decimal.NewFromInt(500)}
	cart.AddOrIncrement(a)
	cart.AddOrIncrement(a)
	cart.AddOrIncrement(domain.Item{ID: "B", Name: "Oil", Price: decimal.NewFromInt(1200)})
	return cart
}

func TestCheckout_EmptyCartMakesNoCall(t *testing.T) {
	api := &mockAPI{}
	svc, notifier := newTestCheckout(api, "https://api.example")

	_, err := svc.Checkout(context.Background(), domain.NewCart())

	assert.ErrorIs(t, err, domain.ErrCartEmpty)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, api.orderCount())
	assert.Equal(t, domain.CheckoutIdle, svc.State())
	assert.Equal(t, []string{"Cart empty"}, notifier.messages())
}

func TestCheckout_NoEndpoint(t *testing.T) {
	api := &mockAPI{}
	svc, _ := newTestCheckout(api, "")
	cart := filledCart()

	_, err := svc.Checkout(context.Background(), cart)

	assert.ErrorIs(t, err, domain.ErrConfig)
	assert.Equal(t, 0, api.orderCount())
	assert.Equal(t, 2, cart.Len())
}

func TestCheckout_CommittedClearsCartAndReadsInvoice(t *testing.T) {
	api := &mockAPI{
		confirmation: domain.OrderConfirmation{Status: "success", InvoiceID: "INV1"},
		detail: domain.InvoiceDetail{
			Invoice: domain.Invoice{InvoiceID: "INV1", CreatedAt: "2026-10-18 10:00", Total: decimal.NewFromInt(2200)},
			Lines:   []domain.InvoiceLine{{Name: "Rice", Qty: 2, PriceEach: decimal.NewFromInt(500)}},
		},
	}
	svc, notifier := newTestCheckout(api, "https://api.example")
	cart := filledCart()

	result, err := svc.Checkout(context.Background(), cart)
	require.NoError(t, err)

	assert.True(t, cart.IsEmpty())
	assert.Equal(t, domain.CheckoutCommitted, svc.State())
	assert.Equal(t, "INV1", result.InvoiceID)
	assert.Equal(t, []string{"INV1"}, api.invoiceReads)
	require.NotNil(t, result.Receipt)
	assert.Equal(t, "INV1", result.Receipt.InvoiceID)
	assert.NoError(t, result.ReceiptErr)
	assert.Contains(t, notifier.messages(), "Checkout saved")

	require.Len(t, api.orders, 1)
	order := api.orders[0]
	assert.Equal(t, DefaultCashier, order.Cashier)
	assert.NotEmpty(t, order.RequestID)
	assert.Equal(t, []domain.OrderLine{
		{ItemID: "A", Name: "Rice", Qty: 2, PriceEach: decimal.NewFromInt(500)},
		{ItemID: "B", Name: "Oil", Qty: 1, PriceEach: decimal.NewFromInt(1200)},
	}, order.Lines)
}

func TestCheckout_RejectedLeavesCartIdentical(t *testing.T) {
	for name, conf := range map[string]domain.OrderConfirmation{
		"error status":       {Status: "error"},
		"success without id": {Status: "success"},
		"empty body":         {},
	} {
		t.Run(name, func(t *testing.T) {
			api := &mockAPI{confirmation: conf}
			svc, notifier := newTestCheckout(api, "https://api.example")
			cart := filledCart()
			before := cart.Lines()

			_, err := svc.Checkout(context.Background(), cart)

			assert.ErrorIs(t, err, domain.ErrServerRejection)
			assert.Equal(t, before, cart.Lines())
			assert.Equal(t, domain.CheckoutFailed, svc.State())
			assert.Empty(t, api.invoiceReads)
			assert.Equal(t, []string{"Checkout failed"}, notifier.messages())
		})
	}
}

func TestCheckout_TransportErrorLeavesCartIdentical(t *testing.T) {
	api := &mockAPI{invoiceErr: errTransport}
	svc, notifier := newTestCheckout(api, "https://api.example")
	cart := filledCart()
	before := cart.Lines()

	_, err := svc.Checkout(context.Background(), cart)

	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.ErrorIs(t, err, errTransport)
	assert.Equal(t, before, cart.Lines())
	assert.Equal(t, domain.CheckoutFailed, svc.State())
	assert.Equal(t, []string{"Checkout error"}, notifier.messages())
	assert.Equal(t, 1, api.orderCount(), "no automatic retry")
}

func TestCheckout_RetryAfterFailure(t *testing.T) {
	api := &mockAPI{invoiceErr: errTransport}
	svc, _ := newTestCheckout(api, "https://api.example")
	cart := filledCart()

	_, err := svc.Checkout(context.Background(), cart)
	require.Error(t, err)

	api.invoiceErr = nil
	api.confirmation = domain.OrderConfirmation{Status: "success", InvoiceID: "INV2"}
	result, err := svc.Checkout(context.Background(), cart)

	require.NoError(t, err)
	assert.Equal(t, "INV2", result.InvoiceID)
	assert.True(t, cart.IsEmpty())
}

func TestCheckout_ReceiptFailureDoesNotResurrectCart(t *testing.T) {
	api := &mockAPI{
		confirmation: domain.OrderConfirmation{Status: "success", InvoiceID: "INV3"},
		detailErr:    fmt.Errorf("%w: bad gateway", domain.ErrNetwork),
	}
	svc, notifier := newTestCheckout(api, "https://api.example")
	cart := filledCart()

	result, err := svc.Checkout(context.Background(), cart)

	require.NoError(t, err)
	assert.Equal(t, "INV3", result.InvoiceID)
	assert.Nil(t, result.Receipt)
	assert.ErrorIs(t, result.ReceiptErr, domain.ErrNetwork)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, domain.CheckoutCommitted, svc.State())
	assert.Contains(t, notifier.messages(), "Receipt load failed")
}

func TestCheckout_DoubleSubmitRefused(t *testing.T) {
	block := make(chan struct{})
	api := &mockAPI{
		confirmation: domain.OrderConfirmation{Status: "success", InvoiceID: "INV4"},
		block:        block,
	}
	svc, _ := newTestCheckout(api, "https://api.example")
	cart := filledCart()

	done := make(chan error, 1)
	go func() {
		_, err := svc.Checkout(context.Background(), cart)
		done <- err
	}()

	require.Eventually(t, func() bool { return svc.State() == domain.CheckoutSubmitting }, time.Second, 5*time.Millisecond)

	_, err := svc.Checkout(context.Background(), cart)
	assert.ErrorIs(t, err, domain.ErrCheckoutInProgress)
	assert.Equal(t, 2, cart.Len(), "cart untouched while submitting")

	close(block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, api.orderCount())
	assert.True(t, cart.IsEmpty())
}

func TestCheckout_ScanDuringSubmitSurvivesCommit(t *testing.T) {
	block := make(chan struct{})
	api := &mockAPI{
		confirmation: domain.OrderConfirmation{Status: "success", InvoiceID: "INV5"},
		block:        block,
	}
	svc, _ := newTestCheckout(api, "https://api.example")
	cart := filledCart()

	done := make(chan error, 1)
	go func() {
		_, err := svc.Checkout(context.Background(), cart)
		done <- err
	}()

	require.Eventually(t, func() bool { return svc.State() == domain.CheckoutSubmitting }, time.Second, 5*time.Millisecond)
	cart.AddOrIncrement(domain.Item{ID: "C", Name: "Salt", Price: decimal.NewFromInt(300)})
	cart.AddOrIncrement(domain.Item{ID: "A", Name: "Rice", Price: decimal.NewFromInt(500)})

	close(block)
	require.NoError(t, <-done)

	require.Len(t, api.orders, 1)
	assert.Len(t, api.orders[0].Lines, 2)

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "A", lines[0].ID)
	assert.Equal(t, 1, lines[0].Qty)
	assert.Equal(t, "C", lines[1].ID)
	assert.Equal(t, 1, lines[1].Qty)
}

func TestReceipt_Standalone(t *testing.T) {
	api := &mockAPI{detail: domain.InvoiceDetail{Lines: []domain.InvoiceLine{{Name: "Tea", Qty: 1, Subtotal: decimal.NewFromInt(500)}}}}
	svc, _ := newTestCheckout(api, "https://api.example")
	svc.now = func() time.Time { return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC) }

	r, err := svc.Receipt(context.Background(), "INV9")

	require.NoError(t, err)
	assert.Equal(t, "INV9", r.InvoiceID)
	assert.Equal(t, "2026-10-18 09:30:00", r.Date)
	assert.Equal(t, "Smart POS", r.ShopName)
}

func TestReceipt_Validation(t *testing.T) {
	svc, _ := newTestCheckout(&mockAPI{}, "https://api.example")

	_, err := svc.Receipt(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
