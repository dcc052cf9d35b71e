package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rl1809/smart-pos/internal/core/domain"
	"github.com/rl1809/smart-pos/internal/port"
)

const catalogSnapshotKey = "smartpos_items"

type snapshotItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	SKU      string          `json:"sku,omitempty"`
	Category string          `json:"category,omitempty"`
}

// CatalogService mirrors the remote catalog in memory. A failed refresh keeps
// the last good copy.
type CatalogService struct {
	api      port.RemoteAPI
	endpoint port.Endpoint
	store    port.LocalStore
	notifier port.Notifier
	log      logrus.FieldLogger
	validate *validator.Validate

	mu    sync.RWMutex
	items []domain.Item
}

func NewCatalogService(api port.RemoteAPI, endpoint port.Endpoint, store port.LocalStore, notifier port.Notifier, log logrus.FieldLogger) *CatalogService {
	return &CatalogService{
		api:      api,
		endpoint: endpoint,
		store:    store,
		notifier: notifier,
		log:      log.WithField("component", "catalog"),
		validate: validator.New(),
	}
}

func (s *CatalogService) Refresh(ctx context.Context) error {
	if s.endpoint.APIBase() == "" {
		s.replace(nil)
		notify(s.notifier, domain.NoticeWarn, "API not set. Open Settings to set Apps Script URL.")
		return fmt.Errorf("refresh catalog: %w", domain.ErrConfig)
	}

	items, err := s.api.GetItems(ctx)
	if err != nil {
		s.log.WithError(err).Error("load items failed")
		notify(s.notifier, domain.NoticeError, "Failed loading items")
		return fmt.Errorf("refresh catalog: %w", err)
	}

	s.replace(items)
	s.log.WithField("count", len(items)).Info("catalog refreshed")
	s.persist(ctx)
	return nil
}

// Warm loads the last persisted snapshot when the cache is still empty.
func (s *CatalogService) Warm(ctx context.Context) int {
	raw, ok, err := s.store.Get(ctx, catalogSnapshotKey)
	if err != nil {
		s.log.WithError(err).Warn("catalog snapshot unavailable")
		return 0
	}
	if !ok || raw == "" {
		return 0
	}

	var snap []snapshotItem
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		s.log.WithError(err).Warn("corrupt catalog snapshot")
		return 0
	}

	items := make([]domain.Item, 0, len(snap))
	for _, it := range snap {
		items = append(items, domain.Item{ID: it.ID, Name: it.Name, Price: it.Price, SKU: it.SKU, Category: it.Category})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.items) > 0 {
		return 0
	}
	s.items = items
	return len(items)
}

func (s *CatalogService) persist(ctx context.Context) {
	s.mu.RLock()
	snap := make([]snapshotItem, 0, len(s.items))
	for _, it := range s.items {
		snap = append(snap, snapshotItem{ID: it.ID, Name: it.Name, Price: it.Price, SKU: it.SKU, Category: it.Category})
	}
	s.mu.RUnlock()

	data, err := json.Marshal(snap)
	if err != nil {
		s.log.WithError(err).Warn("encode catalog snapshot")
		return
	}
	if err := s.store.Set(ctx, catalogSnapshotKey, string(data)); err != nil {
		s.log.WithError(err).Warn("save catalog snapshot")
	}
}

func (s *CatalogService) replace(items []domain.Item) {
	s.mu.Lock()
	s.items = append([]domain.Item(nil), items...)
	s.mu.Unlock()
}

func (s *CatalogService) Items() []domain.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Item(nil), s.items...)
}

func (s *CatalogService) Get(id string) (domain.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return domain.Item{}, false
}

// LookupBySKU is an exact, case-sensitive match. The first match wins.
func (s *CatalogService) LookupBySKU(code string) (domain.Item, bool) {
	if code == "" {
		return domain.Item{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, it := range s.items {
		if it.SKU != "" && it.SKU == code {
			return it, true
		}
	}
	return domain.Item{}, false
}

func (s *CatalogService) CreateItem(ctx context.Context, fields domain.NewItem) (domain.Item, error) {
	fields = fields.Normalize()
	if err := s.validate.Struct(fields); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Name" {
			return domain.Item{}, domain.ErrNameRequired
		}
		return domain.Item{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if fields.Price.IsNegative() {
		return domain.Item{}, domain.ErrNegativePrice
	}
	if s.endpoint.APIBase() == "" {
		notify(s.notifier, domain.NoticeWarn, "API not set")
		return domain.Item{}, fmt.Errorf("create item: %w", domain.ErrConfig)
	}

	created, err := s.api.AddItem(ctx, fields)
	if err != nil {
		s.log.WithError(err).Error("add item failed")
		notify(s.notifier, domain.NoticeError, "Add item failed")
		return domain.Item{}, fmt.Errorf("create item: %w", err)
	}
	if created == nil || created.ID == "" {
		notify(s.notifier, domain.NoticeWarn, "Add item returned nothing")
		return domain.Item{}, fmt.Errorf("create item: %w: no item returned", domain.ErrServerRejection)
	}

	s.mu.Lock()
	s.items = append(s.items, *created)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"id": created.ID, "sku": created.SKU}).Info("item created")
	return *created, nil
}

// Search filters by case-insensitive name substring and exact category.
// Empty arguments match everything.
func (s *CatalogService) Search(query, category string) []domain.Item {
	query = strings.ToLower(strings.TrimSpace(query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Item, 0, len(s.items))
	for _, it := range s.items {
		if query != "" && !strings.Contains(strings.ToLower(it.Name), query) {
			continue
		}
		if category != "" && category != it.Category {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Categories lists distinct non-empty categories in catalog order.
func (s *CatalogService) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, it := range s.items {
		if it.Category == "" {
			continue
		}
		if _, ok := seen[it.Category]; ok {
			continue
		}
		seen[it.Category] = struct{}{}
		out = append(out, it.Category)
	}
	return out
}

// Move swaps an entry with its neighbour. Edges and unknown ids are no-ops.
func (s *CatalogService) Move(id string, up bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, it := range s.items {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	switch {
	case up && idx > 0:
		s.items[idx-1], s.items[idx] = s.items[idx], s.items[idx-1]
	case !up && idx < len(s.items)-1:
		s.items[idx], s.items[idx+1] = s.items[idx+1], s.items[idx]
	default:
		return false
	}
	return true
}

func (s *CatalogService) SaveOrder(ctx context.Context) error {
	if s.endpoint.APIBase() == "" {
		notify(s.notifier, domain.NoticeWarn, "API not set")
		return fmt.Errorf("save order: %w", domain.ErrConfig)
	}

	s.mu.RLock()
	ids := make([]string, 0, len(s.items))
	for _, it := range s.items {
		ids = append(ids, it.ID)
	}
	s.mu.RUnlock()

	if err := s.api.SaveOrder(ctx, ids); err != nil {
		s.log.WithError(err).Error("save order failed")
		notify(s.notifier, domain.NoticeError, "Save failed")
		return fmt.Errorf("save order: %w", err)
	}

	notify(s.notifier, domain.NoticeInfo, "Order saved")
	return nil
}
