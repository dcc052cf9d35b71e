package port

import (
	"context"

	"github.com/rl1809/smart-pos/internal/core/domain"
)

// Endpoint exposes the user-configured API base URL. Empty means unset.
type Endpoint interface {
	APIBase() string
}

type RemoteAPI interface {
	// GetItems fetches the full catalog
	GetItems(ctx context.Context) ([]domain.Item, error)

	// AddItem creates an item and returns the canonical server copy, nil when the server returned none
	AddItem(ctx context.Context, item domain.NewItem) (*domain.Item, error)

	// CreateInvoice submits one order atomically
	CreateInvoice(ctx context.Context, req domain.OrderRequest) (domain.OrderConfirmation, error)

	// GetInvoice reads a persisted order for receipt display
	GetInvoice(ctx context.Context, invoiceID string) (domain.InvoiceDetail, error)

	// LogScan records a scanned barcode
	LogScan(ctx context.Context, event domain.ScanEvent) error

	// SaveOrder persists the display ordering of catalog entries
	SaveOrder(ctx context.Context, ids []string) error
}
