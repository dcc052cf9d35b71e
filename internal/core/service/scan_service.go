package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rl1809/smart-pos/internal/core/domain"
	"github.com/rl1809/smart-pos/internal/port"
)

const scanLogTimeout = 5 * time.Second

type CartAdder interface {
	AddOrIncrement(item domain.Item) domain.CartLine
}

type skuLookup interface {
	LookupBySKU(code string) (domain.Item, bool)
}

// ScanService resolves barcodes against the catalog. Every scan is queued
// for the remote scan log; the queue never blocks the caller.
type ScanService struct {
	catalog  skuLookup
	api      port.RemoteAPI
	endpoint port.Endpoint
	log      logrus.FieldLogger

	mu        sync.RWMutex
	closed    bool
	scanQueue chan domain.ScanEvent
	wg        sync.WaitGroup
}

func NewScanService(catalog skuLookup, api port.RemoteAPI, endpoint port.Endpoint, log logrus.FieldLogger, queueSize int) *ScanService {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &ScanService{
		catalog:   catalog,
		api:       api,
		endpoint:  endpoint,
		log:       log.WithField("component", "scan"),
		scanQueue: make(chan domain.ScanEvent, queueSize),
	}
}

// Start launches the scan log worker.
func (s *ScanService) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.workerLoop()
	}()
}

// Scan adds the matching item to the cart on a hit. On a miss the outcome
// carries a creation candidate with the code as SKU and the cart is untouched.
func (s *ScanService) Scan(ctx context.Context, code string, cart CartAdder) (domain.ScanOutcome, error) {
	if code == "" {
		return domain.ScanOutcome{}, domain.ErrEmptyBarcode
	}

	event := domain.ScanEvent{ID: uuid.New().String(), Barcode: code, ScannedAt: time.Now().UTC()}
	s.enqueue(event)
	log := s.log.WithFields(logrus.Fields{"scan_id": event.ID, "barcode": code})

	if item, ok := s.catalog.LookupBySKU(code); ok {
		line := cart.AddOrIncrement(item)
		log.WithFields(logrus.Fields{"item_id": item.ID, "qty": line.Qty}).Debug("scan hit")
		return domain.ScanOutcome{Code: code, Hit: true, Line: line}, nil
	}

	log.Info("scan miss, offering item creation")
	return domain.ScanOutcome{Code: code, Candidate: &domain.NewItem{SKU: code}}, nil
}

func (s *ScanService) enqueue(event domain.ScanEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		s.log.WithField("barcode", event.Barcode).Debug("scan log closed, dropped")
		return
	}

	select {
	case s.scanQueue <- event:
	default:
		s.log.WithFields(logrus.Fields{"scan_id": event.ID, "barcode": event.Barcode}).Warn("scan log queue full, dropped")
	}
}

func (s *ScanService) workerLoop() {
	for event := range s.scanQueue {
		if s.endpoint.APIBase() == "" {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), scanLogTimeout)
		if err := s.api.LogScan(ctx, event); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{"scan_id": event.ID, "barcode": event.Barcode}).Debug("log scan failed")
		}
		cancel()
	}
}

// Close stops accepting scan log entries and waits for the worker to drain.
func (s *ScanService) Close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.scanQueue)
	}
	s.mu.Unlock()

	s.wg.Wait()
}
