package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/rl1809/smart-pos/internal/adapter/notice"
	"github.com/rl1809/smart-pos/internal/adapter/remote"
	"github.com/rl1809/smart-pos/internal/adapter/storage"
	"github.com/rl1809/smart-pos/internal/core/service"
)

// fakeSheet plays the spreadsheet web app.
type fakeSheet struct {
	mu          sync.Mutex
	items       string
	invoiceResp string
	invoices    []map[string]any
	block       chan struct{}
}

func newFakeSheet() *fakeSheet {
	return &fakeSheet{
		items: `{"items":[
			{"id":1,"name":"A","price":1000,"sku":"111","category":"Drinks"},
			{"id":2,"name":"B","price":"200","sku":"222","category":"Food"}
		]}`,
		invoiceResp: `{"status":"success","invoice":{"invoice_id":"INV1"}}`,
	}
}

func (f *fakeSheet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		switch r.URL.Query().Get("action") {
		case "getItems":
			f.mu.Lock()
			io.WriteString(w, f.items)
			f.mu.Unlock()
		case "getInvoice":
			io.WriteString(w, `{"invoice":{"invoice_id":"`+r.URL.Query().Get("invoice_id")+`","created_at":"2024-01-02 10:00:00","total":2200},
				"items":[{"name":"A","qty":2,"subtotal":2000},{"name":"B","qty":1,"price_each":200}]}`)
		default:
			http.NotFound(w, r)
		}
		return
	}

	var body map[string]any
	json.NewDecoder(r.Body).Decode(&body)
	switch body["action"] {
	case "createInvoice":
		f.mu.Lock()
		f.invoices = append(f.invoices, body)
		block := f.block
		resp := f.invoiceResp
		f.mu.Unlock()
		if block != nil {
			<-block
		}
		io.WriteString(w, resp)
	case "addItem":
		io.WriteString(w, `{"item":{"id":9,"name":"`+body["name"].(string)+`","price":`+string(mustJSON(body["price"]))+`,"sku":"`+body["sku"].(string)+`"}}`)
	default:
		io.WriteString(w, `{}`)
	}
}

func (f *fakeSheet) invoiceCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.invoices)
}

func mustJSON(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}

type testEnv struct {
	sheet    *fakeSheet
	sheetURL string
	pos      *service.POSService
	inbox    *notice.Inbox
	hub      *DisplayHub
	assets   *service.AssetCacheService
	store    *storage.MemoryAdapter
	server   *httptest.Server
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestEnv(t *testing.T, configured bool) *testEnv {
	t.Helper()
	log := quietLogger()

	sheet := newFakeSheet()
	sheetSrv := httptest.NewServer(sheet)
	t.Cleanup(sheetSrv.Close)

	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/index.html":
			w.Header().Set("Content-Type", "text/html")
			io.WriteString(w, "<h1>Smart POS</h1>")
		case "/assets/js/app.js":
			w.Header().Set("Content-Type", "application/javascript")
			io.WriteString(w, "init()")
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(origin.Close)

	base := ""
	if configured {
		base = sheetSrv.URL + "/exec"
	}

	store := storage.NewMemoryAdapter()
	settings := service.NewSettingsService(store, log, base)
	hub := NewDisplayHub(log)
	inbox := notice.NewInbox(log, 0, hub)
	client := remote.NewClient(settings, sheetSrv.Client(), log)

	pos := service.NewPOSService(service.POSDeps{
		Settings:      settings,
		Store:         store,
		API:           client,
		Notifier:      inbox,
		Publisher:     hub,
		Log:           log,
		ScanQueueSize: 16,
	})
	assets := service.NewAssetCacheService(store, remote.NewAssetOrigin(origin.URL, origin.Client()), log, "", []string{"index.html", "assets/js/app.js"})

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	pos.Init(ctx)
	t.Cleanup(func() {
		pos.Close()
		cancel()
	})

	srv := httptest.NewServer(NewHTTPHandler(pos, inbox, assets, hub, log).Routes())
	t.Cleanup(srv.Close)

	return &testEnv{sheet: sheet, sheetURL: sheetSrv.URL + "/exec", pos: pos, inbox: inbox, hub: hub, assets: assets, store: store, server: srv}
}
