package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/cart"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/catalog"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/discount"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/domain"
	"github.com/developer-25/Mini-E-commerce-Cart-System/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductCatalog interface {
	FindByID(productID string) (domain.Product, error)
	List() []domain.Product
}

type PromotionLister interface {
	Rules() []discount.Rule
}

type CurrencyLister interface {
	SupportedCurrencies() []string
}

type ReceiptStore interface {
	Save(ctx context.Context, receipt domain.Receipt) error
	Get(ctx context.Context, receiptID string) (domain.Receipt, error)
}

type Dependencies struct {
	Catalog    ProductCatalog
	Promotions PromotionLister
	Currencies CurrencyLister
	Checkout   service.CheckoutService
	Receipts   ReceiptStore
}

// Handler serves the API for a single cart owned by the process. The mutex
// serializes every cart access so the cart keeps a single owner.
type Handler struct {
	mu   sync.Mutex
	cart *cart.Cart

	deps   Dependencies
	logger *zap.Logger
}

func NewHandler(deps Dependencies, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		cart:   cart.New(),
		deps:   deps,
		logger: logger,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CheckoutRequestDTO struct {
	Currency  string `json:"currency"`
	ClearCart bool   `json:"clear_cart"`
}

type LineItemDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartResponseDTO struct {
	Items    []LineItemDTO `json:"items"`
	Subtotal string        `json:"subtotal"`
	Currency string        `json:"currency"`
}

type RemoveItemResponseDTO struct {
	ProductID string          `json:"product_id"`
	Removed   bool            `json:"removed"`
	Quantity  int             `json:"quantity"`
	Cart      CartResponseDTO `json:"cart"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// GET /api/v1/products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.deps.Catalog.List())
}

// GET /api/v1/cart
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	resp := h.cartResponse()
	h.mu.Unlock()

	respondJSON(w, http.StatusOK, resp)
}

// POST /api/v1/cart/items
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, err := h.deps.Catalog.FindByID(req.ProductID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.mu.Lock()
	err = h.cart.AddItem(product, req.Quantity)
	resp := h.cartResponse()
	h.mu.Unlock()
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("item added to cart",
		zap.String("product_id", product.ID),
		zap.Int("quantity", req.Quantity))
	respondJSON(w, http.StatusCreated, resp)
}

// DELETE /api/v1/cart/items/{product_id}?quantity=n
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity query parameter must be an integer")
		return
	}

	h.mu.Lock()
	res, err := h.cart.RemoveItem(productID, quantity)
	resp := h.cartResponse()
	h.mu.Unlock()
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, RemoveItemResponseDTO{
		ProductID: productID,
		Removed:   res.Removed,
		Quantity:  res.Quantity,
		Cart:      resp,
	})
}

// GET /api/v1/discounts
func (h *Handler) ListDiscounts(w http.ResponseWriter, r *http.Request) {
	rules := h.deps.Promotions.Rules()
	summaries := make([]string, 0, len(rules))
	for _, rule := range rules {
		summaries = append(summaries, rule.Summary())
	}
	respondJSON(w, http.StatusOK, map[string][]string{"discounts": summaries})
}

// GET /api/v1/currencies
func (h *Handler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"base":       domain.BaseCurrency,
		"currencies": h.deps.Currencies.SupportedCurrencies(),
	})
}

// POST /api/v1/checkout
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	// an empty body checks out in USD
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	h.mu.Lock()
	receipt, err := h.deps.Checkout.Checkout(h.cart, req.Currency)
	if err == nil && req.ClearCart {
		h.cart.Clear()
	}
	h.mu.Unlock()
	if err != nil {
		h.handleError(w, err)
		return
	}

	// the receipt is still valid when it cannot be stored
	if errSave := h.deps.Receipts.Save(r.Context(), receipt); errSave != nil {
		h.logger.Warn("receipt not stored", zap.String("receipt_id", receipt.ID), zap.Error(errSave))
	}

	h.logger.Info("checkout completed",
		zap.String("receipt_id", receipt.ID),
		zap.String("total_usd", receipt.TotalUSD.StringFixed(2)),
		zap.String("unsupported_currency", receipt.UnsupportedCurrency))
	respondJSON(w, http.StatusCreated, receipt)
}

// GET /api/v1/receipts/{receipt_id}
func (h *Handler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.deps.Receipts.Get(r.Context(), chi.URLParam(r, "receipt_id"))
	if err != nil {
		h.handleError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, receipt)
}

// cartResponse must be called with h.mu held
func (h *Handler) cartResponse() CartResponseDTO {
	items := h.cart.LineItems()
	resp := CartResponseDTO{
		Items:    make([]LineItemDTO, 0, len(items)),
		Subtotal: h.cart.Subtotal().StringFixed(2),
		Currency: domain.BaseCurrency,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, LineItemDTO{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Category:  item.Product.Category.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.Product.UnitPrice,
			LineTotal: item.Total(),
		})
	}
	return resp
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "invalid_quantity", err.Error())
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, cart.ErrProductNotInCart):
		respondError(w, http.StatusNotFound, "not_in_cart", err.Error())
	case errors.Is(err, service.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", err.Error())
	case errors.Is(err, service.ErrReceiptNotFound):
		respondError(w, http.StatusNotFound, "receipt_not_found", err.Error())
	default:
		h.logger.Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
