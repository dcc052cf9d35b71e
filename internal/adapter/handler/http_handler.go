package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rl1809/smart-pos/internal/core/domain"
	"github.com/rl1809/smart-pos/internal/core/service"
)

type noticeFeed interface {
	Recent() []domain.Notice
	Dismiss()
}

type HTTPHandler struct {
	pos     *service.POSService
	notices noticeFeed
	assets  *service.AssetCacheService
	hub     *DisplayHub
	log     logrus.FieldLogger

	upgrader websocket.Upgrader
}

func NewHTTPHandler(pos *service.POSService, notices noticeFeed, assets *service.AssetCacheService, hub *DisplayHub, log logrus.FieldLogger) *HTTPHandler {
	return &HTTPHandler{
		pos:     pos,
		notices: notices,
		assets:  assets,
		hub:     hub,
		log:     log.WithField("component", "http"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *HTTPHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/cart", h.GetCart)
		r.Post("/cart/items", h.AddToCart)
		r.Post("/cart/items/{id}/adjust", h.AdjustQuantity)
		r.Delete("/cart/items/{id}", h.RemoveLine)
		r.Post("/scan", h.Scan)
		r.Post("/checkout", h.Checkout)
		r.Get("/receipts/{id}", h.GetReceipt)

		r.Get("/items", h.ListItems)
		r.Post("/items", h.CreateItem)
		r.Post("/items/refresh", h.RefreshItems)
		r.Post("/items/{id}/move", h.MoveItem)
		r.Post("/items/order", h.SaveOrder)
		r.Get("/categories", h.ListCategories)

		r.Get("/settings", h.GetSettings)
		r.Patch("/settings", h.UpdateSettings)
		r.Put("/settings/theme", h.SetTheme)
		r.Put("/settings/api", h.SetAPIBase)

		r.Get("/notices", h.ListNotices)
		r.Delete("/notices", h.DismissNotices)
	})

	if h.hub != nil {
		r.Get("/ws/display", h.DisplayFeed)
	}
	if h.assets != nil {
		r.Get("/app/*", h.ServeAsset)
	}
	return r
}

func (h *HTTPHandler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("request")
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, err error) {
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		h.log.WithError(err).Error("request failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errInvalidBody
	}
	return nil
}

var errInvalidBody = errors.New("invalid request body")

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCart(h.pos.Cart()))
}

type addToCartRequest struct {
	ItemID string `json:"item_id"`
}

func (h *HTTPHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeBody(r, &req); err != nil || req.ItemID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "item_id is required"})
		return
	}
	if _, err := h.pos.AddToCart(req.ItemID); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCart(h.pos.Cart()))
}

type adjustRequest struct {
	Delta int `json:"delta"`
}

func (h *HTTPHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := decodeBody(r, &req); err != nil || req.Delta == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "non-zero delta is required"})
		return
	}
	view, err := h.pos.AdjustQuantity(chi.URLParam(r, "id"), req.Delta)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCart(view))
}

func (h *HTTPHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	view, err := h.pos.RemoveLine(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCart(view))
}

type scanRequest struct {
	Barcode string `json:"barcode"`
}

func (h *HTTPHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	outcome, err := h.pos.Scan(r.Context(), strings.TrimSpace(req.Barcode))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toScanResponse(outcome, h.pos.Cart()))
}

func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	result, err := h.pos.Checkout(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCheckoutResponse(result))
}

func (h *HTTPHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.pos.Receipt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if err := receipt.Render(w); err != nil {
			h.log.WithError(err).Warn("receipt render")
		}
		return
	}
	writeJSON(w, http.StatusOK, toReceipt(receipt))
}

func (h *HTTPHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, toItems(h.pos.SearchItems(q.Get("q"), q.Get("category"))))
}

func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats := h.pos.Categories()
	if cats == nil {
		cats = []string{}
	}
	writeJSON(w, http.StatusOK, cats)
}

type createItemRequest struct {
	Name     string          `json:"name"`
	Price    json.RawMessage `json:"price"`
	SKU      string          `json:"sku"`
	Category string          `json:"category"`
}

// parsePrice accepts a number or numeric string; empty and null are zero.
func parsePrice(raw json.RawMessage) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	if s == "null" {
		return decimal.Zero, nil
	}
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, err
		}
	}
	return parsePriceText(s)
}

// parsePriceText treats a blank price as zero.
func parsePriceText(s string) (decimal.Decimal, error) {
	if s = strings.TrimSpace(s); s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func (h *HTTPHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid price"})
		return
	}

	item, err := h.pos.CreateItem(r.Context(), domain.NewItem{
		Name:     req.Name,
		Price:    price,
		SKU:      req.SKU,
		Category: req.Category,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toItem(item))
}

func (h *HTTPHandler) RefreshItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.pos.RefreshCatalog(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toItems(items))
}

type moveRequest struct {
	Direction string `json:"direction"`
}

func (h *HTTPHandler) MoveItem(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeBody(r, &req); err != nil || (req.Direction != "up" && req.Direction != "down") {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "direction must be up or down"})
		return
	}
	items, err := h.pos.MoveItem(chi.URLParam(r, "id"), req.Direction == "up")
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toItems(items))
}

func (h *HTTPHandler) SaveOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.pos.SaveOrder(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

type settingsResponse struct {
	domain.Settings
	APIBase string `json:"apiBase"`
}

func (h *HTTPHandler) settingsView() settingsResponse {
	return settingsResponse{Settings: h.pos.CurrentSettings(), APIBase: h.pos.Settings.APIBase()}
}

func (h *HTTPHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.settingsView())
}

func (h *HTTPHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch domain.SettingsPatch
	if err := decodeBody(r, &patch); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if _, err := h.pos.UpdateSettings(r.Context(), patch); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.settingsView())
}

type themeRequest struct {
	Theme string `json:"theme"`
}

func (h *HTTPHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if _, err := h.pos.SetTheme(r.Context(), req.Theme); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.settingsView())
}

type apiBaseRequest struct {
	URL string `json:"url"`
}

func (h *HTTPHandler) SetAPIBase(w http.ResponseWriter, r *http.Request) {
	var req apiBaseRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := h.pos.SetAPIBase(r.Context(), req.URL); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.settingsView())
}

func (h *HTTPHandler) ListNotices(w http.ResponseWriter, r *http.Request) {
	recent := h.notices.Recent()
	out := make([]noticeDTO, 0, len(recent))
	for _, n := range recent {
		out = append(out, toNotice(n))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *HTTPHandler) DismissNotices(w http.ResponseWriter, r *http.Request) {
	h.notices.Dismiss()
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandler) DisplayFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("display upgrade failed")
		return
	}
	h.hub.Attach(conn)
}

func (h *HTTPHandler) ServeAsset(w http.ResponseWriter, r *http.Request) {
	path := "/" + chi.URLParam(r, "*")
	if path == "/" {
		path = "/index.html"
	}

	asset, err := h.assets.Fetch(r.Context(), path)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if asset.ContentType != "" {
		w.Header().Set("Content-Type", asset.ContentType)
	}
	w.Header().Set("X-Cache-Name", h.assets.CacheName())
	w.WriteHeader(http.StatusOK)
	w.Write(asset.Body)
}
