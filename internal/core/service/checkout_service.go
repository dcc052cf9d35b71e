package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rl1809/smart-pos/internal/core/domain"
	"github.com/rl1809/smart-pos/internal/port"
)

const DefaultCashier = "SmartPOS"

type OrderCart interface {
	OrderLines() []domain.OrderLine
	Settle(submitted []domain.OrderLine)
}

type settingsSource interface {
	Current() domain.Settings
}

type CheckoutResult struct {
	RequestID string
	InvoiceID string
	Receipt   *domain.Receipt
	// ReceiptErr is set when the order was committed but the receipt read failed.
	ReceiptErr error
}

// CheckoutService runs Idle -> Submitting -> Committed|Failed. The submitted
// lines leave the cart only after the server confirms the invoice.
type CheckoutService struct {
	api      port.RemoteAPI
	endpoint port.Endpoint
	settings settingsSource
	notifier port.Notifier
	log      logrus.FieldLogger
	cashier  string
	now      func() time.Time

	mu    sync.Mutex
	state domain.CheckoutState
}

func NewCheckoutService(api port.RemoteAPI, endpoint port.Endpoint, settings settingsSource, notifier port.Notifier, log logrus.FieldLogger, cashier string) *CheckoutService {
	if cashier == "" {
		cashier = DefaultCashier
	}
	return &CheckoutService{
		api:      api,
		endpoint: endpoint,
		settings: settings,
		notifier: notifier,
		log:      log.WithField("component", "checkout"),
		cashier:  cashier,
		now:      time.Now,
		state:    domain.CheckoutIdle,
	}
}

func (s *CheckoutService) State() domain.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *CheckoutService) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == domain.CheckoutSubmitting {
		return domain.ErrCheckoutInProgress
	}
	s.state = domain.CheckoutSubmitting
	return nil
}

func (s *CheckoutService) finish(state domain.CheckoutState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *CheckoutService) Checkout(ctx context.Context, cart OrderCart) (CheckoutResult, error) {
	lines := cart.OrderLines()
	if len(lines) == 0 {
		notify(s.notifier, domain.NoticeWarn, "Cart empty")
		return CheckoutResult{}, domain.ErrCartEmpty
	}
	if s.endpoint.APIBase() == "" {
		notify(s.notifier, domain.NoticeWarn, "API not set")
		return CheckoutResult{}, fmt.Errorf("checkout: %w", domain.ErrConfig)
	}
	if err := s.begin(); err != nil {
		return CheckoutResult{}, err
	}

	req := domain.OrderRequest{RequestID: uuid.New().String(), Cashier: s.cashier, Lines: lines}
	log := s.log.WithFields(logrus.Fields{"request_id": req.RequestID, "lines": len(lines)})

	conf, err := s.api.CreateInvoice(ctx, req)
	if err != nil {
		s.finish(domain.CheckoutFailed)
		log.WithError(err).Error("checkout error")
		notify(s.notifier, domain.NoticeError, "Checkout error")
		if !errors.Is(err, domain.ErrNetwork) && !errors.Is(err, domain.ErrServerRejection) {
			err = fmt.Errorf("%w: %w", domain.ErrNetwork, err)
		}
		return CheckoutResult{RequestID: req.RequestID}, fmt.Errorf("checkout: %w", err)
	}
	if !conf.Committed() {
		s.finish(domain.CheckoutFailed)
		log.WithField("status", conf.Status).Warn("createInvoice rejected")
		notify(s.notifier, domain.NoticeError, "Checkout failed")
		return CheckoutResult{RequestID: req.RequestID}, fmt.Errorf("checkout: %w: status %q", domain.ErrServerRejection, conf.Status)
	}

	cart.Settle(lines)
	s.finish(domain.CheckoutCommitted)
	log.WithField("invoice_id", conf.InvoiceID).Info("checkout committed")
	notify(s.notifier, domain.NoticeInfo, "Checkout saved")

	result := CheckoutResult{RequestID: req.RequestID, InvoiceID: conf.InvoiceID}
	receipt, err := s.Receipt(ctx, conf.InvoiceID)
	if err != nil {
		result.ReceiptErr = err
		return result, nil
	}
	result.Receipt = &receipt
	return result, nil
}

// Receipt reads an invoice for display. It never touches the cart.
func (s *CheckoutService) Receipt(ctx context.Context, invoiceID string) (domain.Receipt, error) {
	if invoiceID == "" {
		return domain.Receipt{}, fmt.Errorf("%w: invoice id required", domain.ErrValidation)
	}
	if s.endpoint.APIBase() == "" {
		return domain.Receipt{}, fmt.Errorf("receipt: %w", domain.ErrConfig)
	}

	detail, err := s.api.GetInvoice(ctx, invoiceID)
	if err != nil {
		s.log.WithError(err).WithField("invoice_id", invoiceID).Error("receipt load failed")
		notify(s.notifier, domain.NoticeError, "Receipt load failed")
		return domain.Receipt{}, fmt.Errorf("receipt %s: %w", invoiceID, err)
	}

	return domain.NewReceipt(invoiceID, detail, s.settings.Current(), s.now()), nil
}
