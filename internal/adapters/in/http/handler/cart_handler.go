// internal/adapters/in/http/handler/cart_handler.go
package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	usecase "agromart/internal/application/usecase"
	cartdom "agromart/internal/domain/cart"
	"agromart/internal/domain/money"
)

// CartQueryService abstracts the cart read-model.
type CartQueryService interface {
	GetCartQuery(ctx context.Context, cartID string) (any, error)
}

// CartHandler serves the shop cart endpoints.
//
//	GET    /shop/me/cart          current cart (absent -> empty cart, 200)
//	DELETE /shop/me/cart          clear (persists the empty cart)
//	POST   /shop/me/cart/items    add item (body carries the product snapshot)
//	PUT    /shop/me/cart/items    set absolute quantity
//	DELETE /shop/me/cart/items    remove item
//	GET    /shop/me/cart/total    total accessor
type CartHandler struct {
	uc *usecase.CartUsecase

	cartQuery CartQueryService
}

func NewCartHandler(uc *usecase.CartUsecase, cartQuery CartQueryService) http.Handler {
	return &CartHandler{uc: uc, cartQuery: cartQuery}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := strings.TrimRight(r.URL.Path, "/")
	if path == "" {
		path = "/"
	}

	if h.uc == nil {
		log.Printf("[cart_handler] exit status=500 reason=cart usecase is nil elapsed=%s", time.Since(start))
		writeErr(w, http.StatusInternalServerError, "cart handler is not configured")
		return
	}

	isGET := r.Method == http.MethodGet
	isDEL := r.Method == http.MethodDelete
	isPOST := r.Method == http.MethodPost
	isPUT := r.Method == http.MethodPut

	switch {
	case isGET && strings.HasSuffix(path, "/cart/total"):
		h.handleTotal(w, r, start)

	case isGET && strings.HasSuffix(path, "/cart"):
		h.handleGet(w, r, start)

	case isDEL && strings.HasSuffix(path, "/cart"):
		h.handleClear(w, r, start)

	case isPOST && strings.HasSuffix(path, "/cart/items"):
		h.handleAddItem(w, r, start)

	case isPUT && strings.HasSuffix(path, "/cart/items"):
		h.handleSetQty(w, r, start)

	case isDEL && strings.HasSuffix(path, "/cart/items"):
		h.handleRemoveItem(w, r, start)

	default:
		log.Printf("[cart_handler] exit status=404 method=%s path=%q elapsed=%s", r.Method, path, time.Since(start))
		writeErr(w, http.StatusNotFound, "not found")
	}
}

// -------------------------
// request DTOs
// -------------------------

type productReq struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Price    money.Amount `json:"price"`
	Stock    int          `json:"stock"`
	Unit     string       `json:"unit"`
	Category string       `json:"category"`
	ImageURL string       `json:"imageUrl"`
}

type addItemReq struct {
	CartID  string     `json:"cartId"`
	Product productReq `json:"product"`
	Qty     *int       `json:"quantity"` // defaults to 1 when omitted
}

type itemReq struct {
	CartID    string `json:"cartId"`
	ProductID string `json:"productId"`
	Qty       int    `json:"quantity"`
}

// -------------------------
// handlers
// -------------------------

func (h *CartHandler) handleGet(w http.ResponseWriter, r *http.Request, start time.Time) {
	cartID := readCartID(r, "")
	if cartID == "" {
		writeErr(w, http.StatusBadRequest, "cartId is required")
		return
	}
	h.respondCartDTO(w, r, cartID, start)
}

func (h *CartHandler) handleTotal(w http.ResponseWriter, r *http.Request, start time.Time) {
	cartID := readCartID(r, "")
	if cartID == "" {
		writeErr(w, http.StatusBadRequest, "cartId is required")
		return
	}

	total, err := h.uc.Total(r.Context(), cartID)
	if err != nil {
		log.Printf("[cart_handler] GET total uc error cartId=%q err=%v", cartID, err)
		h.writeUcErr(w, err)
		return
	}

	log.Printf("[cart_handler] GET total ok cartId=%q total=%s elapsed=%s", cartID, total, time.Since(start))
	writeJSON(w, http.StatusOK, map[string]any{
		"cartId": cartID,
		"total":  total,
	})
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req addItemReq
	if err := readJSON(r, &req); err != nil {
		log.Printf("[cart_handler] POST add-item exit status=400 reason=invalid json err=%v", err)
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	cartID := readCartID(r, req.CartID)
	pid := strings.TrimSpace(req.Product.ID)

	qty := 1
	if req.Qty != nil {
		qty = *req.Qty
	}

	log.Printf("[cart_handler] POST add-item request cartId=%q productId=%q qty=%d", cartID, pid, qty)

	if cartID == "" || pid == "" || qty <= 0 {
		writeErr(w, http.StatusBadRequest, "cartId, product.id, quantity(>=1) are required")
		return
	}

	_, err := h.uc.AddItem(r.Context(), cartID, cartdom.ProductSnapshot{
		ID:       pid,
		Name:     strings.TrimSpace(req.Product.Name),
		Price:    req.Product.Price,
		Stock:    req.Product.Stock,
		Unit:     strings.TrimSpace(req.Product.Unit),
		Category: strings.TrimSpace(req.Product.Category),
		ImageURL: strings.TrimSpace(req.Product.ImageURL),
	}, qty)
	if err != nil {
		log.Printf("[cart_handler] POST add-item uc error cartId=%q err=%v", cartID, err)
		h.writeUcErr(w, err)
		return
	}

	h.respondCartDTO(w, r, cartID, start)
}

func (h *CartHandler) handleSetQty(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req itemReq
	if err := readJSON(r, &req); err != nil {
		log.Printf("[cart_handler] PUT set-qty exit status=400 reason=invalid json err=%v", err)
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	cartID := readCartID(r, req.CartID)
	pid := strings.TrimSpace(req.ProductID)

	log.Printf("[cart_handler] PUT set-qty request cartId=%q productId=%q qty=%d", cartID, pid, req.Qty)

	if cartID == "" || pid == "" {
		writeErr(w, http.StatusBadRequest, "cartId and productId are required")
		return
	}

	// qty <= 0 removes the item (same as DELETE)
	if _, err := h.uc.SetItemQty(r.Context(), cartID, pid, req.Qty); err != nil {
		log.Printf("[cart_handler] PUT set-qty uc error cartId=%q err=%v", cartID, err)
		h.writeUcErr(w, err)
		return
	}

	h.respondCartDTO(w, r, cartID, start)
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req itemReq
	if err := readJSON(r, &req); err != nil {
		log.Printf("[cart_handler] DELETE remove-item exit status=400 reason=invalid json err=%v", err)
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	cartID := readCartID(r, req.CartID)
	pid := strings.TrimSpace(req.ProductID)

	log.Printf("[cart_handler] DELETE remove-item request cartId=%q productId=%q", cartID, pid)

	if cartID == "" || pid == "" {
		writeErr(w, http.StatusBadRequest, "cartId and productId are required")
		return
	}

	if _, err := h.uc.RemoveItem(r.Context(), cartID, pid); err != nil {
		log.Printf("[cart_handler] DELETE remove-item uc error cartId=%q err=%v", cartID, err)
		h.writeUcErr(w, err)
		return
	}

	h.respondCartDTO(w, r, cartID, start)
}

func (h *CartHandler) handleClear(w http.ResponseWriter, r *http.Request, start time.Time) {
	cartID := readCartID(r, "")
	if cartID == "" {
		writeErr(w, http.StatusBadRequest, "cartId is required")
		return
	}

	log.Printf("[cart_handler] DELETE clear request cartId=%q", cartID)

	if _, err := h.uc.Clear(r.Context(), cartID); err != nil {
		log.Printf("[cart_handler] DELETE clear uc error cartId=%q err=%v", cartID, err)
		h.writeUcErr(w, err)
		return
	}

	h.respondCartDTO(w, r, cartID, start)
}

func (h *CartHandler) respondCartDTO(w http.ResponseWriter, r *http.Request, cartID string, start time.Time) {
	if h.cartQuery == nil {
		writeErr(w, http.StatusInternalServerError, "cart_query is not configured")
		return
	}

	v, err := h.cartQuery.GetCartQuery(r.Context(), cartID)
	if err != nil {
		log.Printf("[cart_handler] respondCartDTO cartQuery error cartId=%q err=%v", cartID, err)
		h.writeUcErr(w, err)
		return
	}

	log.Printf("[cart_handler] ok status=200 cartId=%q elapsed=%s", cartID, time.Since(start))
	writeJSON(w, http.StatusOK, v)
}

func (h *CartHandler) writeUcErr(w http.ResponseWriter, err error) {
	if err == nil {
		writeErr(w, http.StatusInternalServerError, "unknown error")
		return
	}
	if errors.Is(err, usecase.ErrCartInvalidArgument) || errors.Is(err, cartdom.ErrInvalidCart) {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	writeErr(w, http.StatusInternalServerError, err.Error())
}
