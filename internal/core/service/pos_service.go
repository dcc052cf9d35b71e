package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rl1809/smart-pos/internal/core/domain"
	"github.com/rl1809/smart-pos/internal/port"
)

// POSService is the application context of one terminal. It owns settings,
// catalog, cart, scanning and checkout, and every surface drives it through
// these command handlers.
type POSService struct {
	Settings     *SettingsService
	Catalog      *CatalogService
	Scanner      *ScanService
	CheckoutFlow *CheckoutService

	cart      *domain.Cart
	publisher port.CartPublisher
	notifier  port.Notifier
	log       logrus.FieldLogger
}

type POSDeps struct {
	// Settings is optional; set it when the remote client needs the
	// settings as its endpoint before the POS exists.
	Settings  *SettingsService
	Store     port.LocalStore
	API       port.RemoteAPI
	Notifier  port.Notifier
	Publisher port.CartPublisher
	Log       logrus.FieldLogger

	DefaultAPIBase string
	Cashier        string
	ScanQueueSize  int
}

func NewPOSService(d POSDeps) *POSService {
	settings := d.Settings
	if settings == nil {
		settings = NewSettingsService(d.Store, d.Log, d.DefaultAPIBase)
	}
	catalog := NewCatalogService(d.API, settings, d.Store, d.Notifier, d.Log)

	return &POSService{
		Settings:     settings,
		Catalog:      catalog,
		Scanner:      NewScanService(catalog, d.API, settings, d.Log, d.ScanQueueSize),
		CheckoutFlow: NewCheckoutService(d.API, settings, settings, d.Notifier, d.Log, d.Cashier),
		cart:         domain.NewCart(),
		publisher:    d.Publisher,
		notifier:     d.Notifier,
		log:          d.Log.WithField("component", "pos"),
	}
}

// Init loads settings before anything else, warms the catalog from its
// snapshot and refreshes it. Refresh failures surface as notices only.
func (p *POSService) Init(ctx context.Context) {
	p.Settings.Load(ctx)
	p.Scanner.Start()

	if n := p.Catalog.Warm(ctx); n > 0 {
		p.log.WithField("count", n).Info("catalog warmed from snapshot")
	}
	if err := p.Catalog.Refresh(ctx); err != nil {
		p.log.WithError(err).Warn("initial catalog refresh failed")
	}
	p.publish()
}

func (p *POSService) Close() {
	p.Scanner.Close()
}

func (p *POSService) publish() {
	if p.publisher != nil {
		p.publisher.PublishCart(p.cart.View())
	}
}

func (p *POSService) Cart() domain.CartView {
	return p.cart.View()
}

func (p *POSService) AddToCart(id string) (domain.CartLine, error) {
	item, ok := p.Catalog.Get(id)
	if !ok {
		notify(p.notifier, domain.NoticeWarn, "Item not found")
		return domain.CartLine{}, fmt.Errorf("add %s: %w", id, domain.ErrItemNotFound)
	}

	line := p.cart.AddOrIncrement(item)
	p.publish()
	return line, nil
}

// AdjustQuantity applies delta; a line reaching zero is removed.
func (p *POSService) AdjustQuantity(id string, delta int) (domain.CartView, error) {
	if _, ok := p.cart.AdjustQty(id, delta); !ok {
		return p.cart.View(), fmt.Errorf("adjust %s: %w", id, domain.ErrItemNotFound)
	}
	p.publish()
	return p.cart.View(), nil
}

func (p *POSService) RemoveLine(id string) (domain.CartView, error) {
	if !p.cart.Remove(id) {
		return p.cart.View(), fmt.Errorf("remove %s: %w", id, domain.ErrItemNotFound)
	}
	p.publish()
	return p.cart.View(), nil
}

func (p *POSService) Scan(ctx context.Context, code string) (domain.ScanOutcome, error) {
	outcome, err := p.Scanner.Scan(ctx, code, p.cart)
	if err != nil {
		return outcome, err
	}
	if outcome.Hit {
		p.publish()
	}
	return outcome, nil
}

// CreateItem registers a new item remotely and puts it in the cart.
func (p *POSService) CreateItem(ctx context.Context, fields domain.NewItem) (domain.Item, error) {
	item, err := p.Catalog.CreateItem(ctx, fields)
	if err != nil {
		return domain.Item{}, err
	}

	p.cart.AddOrIncrement(item)
	p.publish()
	return item, nil
}

func (p *POSService) Checkout(ctx context.Context) (CheckoutResult, error) {
	result, err := p.CheckoutFlow.Checkout(ctx, p.cart)
	if err == nil {
		p.publish()
	}
	return result, err
}

func (p *POSService) Receipt(ctx context.Context, invoiceID string) (domain.Receipt, error) {
	return p.CheckoutFlow.Receipt(ctx, invoiceID)
}

func (p *POSService) SetTheme(ctx context.Context, name string) (domain.Theme, error) {
	theme, changed, err := p.Settings.SetTheme(ctx, name)
	if err != nil {
		p.log.WithError(err).Warn("theme not persisted")
		return theme, err
	}
	if changed {
		notify(p.notifier, domain.NoticeInfo, "Theme set: "+string(theme))
	}
	return theme, nil
}

func (p *POSService) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	return p.Settings.Update(ctx, patch)
}

// SetAPIBase stores the endpoint and reloads the catalog from it. A failed
// reload is reported through notices only; the endpoint stays saved.
func (p *POSService) SetAPIBase(ctx context.Context, url string) error {
	if err := p.Settings.SetAPIBase(ctx, url); err != nil {
		if errors.Is(err, domain.ErrAPIURLEmpty) {
			notify(p.notifier, domain.NoticeWarn, "API URL empty")
		}
		return err
	}
	notify(p.notifier, domain.NoticeInfo, "API saved")

	if err := p.Catalog.Refresh(ctx); err != nil {
		p.log.WithError(err).Warn("catalog refresh after endpoint change failed")
	}
	return nil
}

func (p *POSService) CurrentSettings() domain.Settings {
	return p.Settings.Current()
}

func (p *POSService) RefreshCatalog(ctx context.Context) ([]domain.Item, error) {
	err := p.Catalog.Refresh(ctx)
	return p.Catalog.Items(), err
}

func (p *POSService) SearchItems(query, category string) []domain.Item {
	return p.Catalog.Search(query, category)
}

func (p *POSService) Categories() []string {
	return p.Catalog.Categories()
}

func (p *POSService) MoveItem(id string, up bool) ([]domain.Item, error) {
	if _, ok := p.Catalog.Get(id); !ok {
		return nil, fmt.Errorf("move %s: %w", id, domain.ErrItemNotFound)
	}
	p.Catalog.Move(id, up)
	return p.Catalog.Items(), nil
}

func (p *POSService) SaveOrder(ctx context.Context) error {
	return p.Catalog.SaveOrder(ctx)
}
