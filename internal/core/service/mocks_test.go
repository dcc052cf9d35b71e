package service

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/rl1809/smart-pos/internal/core/domain"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Mock LocalStore
type mockStore struct {
	mu     sync.Mutex
	data   map[string]string
	sets   int
	getErr error
	setErr error
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mockStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.data[key] = value
	return nil
}

type stubEndpoint string

func (e stubEndpoint) APIBase() string { return string(e) }

// Mock RemoteAPI
type mockAPI struct {
	mu sync.Mutex

	items    []domain.Item
	itemsErr error

	added    *domain.Item
	addErr   error
	addCalls []domain.NewItem

	confirmation domain.OrderConfirmation
	invoiceErr   error
	orders       []domain.OrderRequest
	// block, when set, holds CreateInvoice until closed
	block chan struct{}

	detail        domain.InvoiceDetail
	detailErr     error
	invoiceReads  []string
	scans         []domain.ScanEvent
	scanErr       error
	savedOrder    []string
	saveOrderErr  error
	getItemsCalls int
}

func (m *mockAPI) GetItems(ctx context.Context) ([]domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getItemsCalls++
	if m.itemsErr != nil {
		return nil, m.itemsErr
	}
	return append([]domain.Item(nil), m.items...), nil
}

func (m *mockAPI) AddItem(ctx context.Context, item domain.NewItem) (*domain.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addCalls = append(m.addCalls, item)
	return m.added, m.addErr
}

func (m *mockAPI) CreateInvoice(ctx context.Context, req domain.OrderRequest) (domain.OrderConfirmation, error) {
	m.mu.Lock()
	m.orders = append(m.orders, req)
	block := m.block
	m.mu.Unlock()

	if block != nil {
		<-block
	}
	return m.confirmation, m.invoiceErr
}

func (m *mockAPI) GetInvoice(ctx context.Context, invoiceID string) (domain.InvoiceDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoiceReads = append(m.invoiceReads, invoiceID)
	return m.detail, m.detailErr
}

func (m *mockAPI) LogScan(ctx context.Context, event domain.ScanEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scans = append(m.scans, event)
	return m.scanErr
}

func (m *mockAPI) SaveOrder(ctx context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.savedOrder = ids
	return m.saveOrderErr
}

func (m *mockAPI) orderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

func (m *mockAPI) scanCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.scans)
}

var errTransport = errors.New("connection refused")

type recordingNotifier struct {
	mu      sync.Mutex
	notices []domain.Notice
}

func (r *recordingNotifier) Notify(n domain.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recordingNotifier) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.notices))
	for _, n := range r.notices {
		out = append(out, n.Message)
	}
	return out
}

type recordingPublisher struct {
	mu    sync.Mutex
	views []domain.CartView
}

func (r *recordingPublisher) PublishCart(v domain.CartView) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, v)
}

func (r *recordingPublisher) last() domain.CartView {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.views[len(r.views)-1]
}
