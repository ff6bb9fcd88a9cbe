// internal/adapters/in/http/handler/wishlist_handler.go
package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	query "agromart/internal/application/query"
	usecase "agromart/internal/application/usecase"
	cartdom "agromart/internal/domain/cart"
	wldom "agromart/internal/domain/wishlist"
)

// WishlistHandler serves the shop wishlist endpoints.
//
//	GET    /shop/me/wishlist
//	DELETE /shop/me/wishlist
//	POST   /shop/me/wishlist/items
//	DELETE /shop/me/wishlist/items
type WishlistHandler struct {
	uc *usecase.WishlistUsecase
}

func NewWishlistHandler(uc *usecase.WishlistUsecase) http.Handler {
	return &WishlistHandler{uc: uc}
}

type wishlistItemReq struct {
	UserID    string     `json:"userId"`
	ProductID string     `json:"productId"`
	Product   productReq `json:"product"`
}

func (h *WishlistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := strings.TrimRight(r.URL.Path, "/")

	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "wishlist handler is not configured")
		return
	}

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/wishlist"):
		h.handleGet(w, r, start)

	case r.Method == http.MethodDelete && strings.HasSuffix(path, "/wishlist"):
		h.handleClear(w, r, start)

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/wishlist/items"):
		h.handleAddItem(w, r, start)

	case r.Method == http.MethodDelete && strings.HasSuffix(path, "/wishlist/items"):
		h.handleRemoveItem(w, r, start)

	default:
		writeErr(w, http.StatusNotFound, "not found")
	}
}

func (h *WishlistHandler) handleGet(w http.ResponseWriter, r *http.Request, start time.Time) {
	userID := readUserID(r, "")
	if userID == "" {
		writeErr(w, http.StatusBadRequest, "userId is required")
		return
	}

	wl, err := h.uc.Get(r.Context(), userID)
	if err != nil {
		log.Printf("[wishlist_handler] GET uc error userId=%q err=%v", userID, err)
		h.writeUcErr(w, err)
		return
	}

	log.Printf("[wishlist_handler] GET ok userId=%q items=%d elapsed=%s", userID, len(wl.Items), time.Since(start))
	writeJSON(w, http.StatusOK, query.ToWishlistDTO(wl))
}

func (h *WishlistHandler) handleAddItem(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req wishlistItemReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	userID := readUserID(r, req.UserID)
	pid := strings.TrimSpace(req.Product.ID)
	if pid == "" {
		pid = strings.TrimSpace(req.ProductID)
	}

	if userID == "" || pid == "" {
		writeErr(w, http.StatusBadRequest, "userId and product.id are required")
		return
	}

	wl, err := h.uc.AddItem(r.Context(), userID, cartdom.ProductSnapshot{
		ID:       pid,
		Name:     strings.TrimSpace(req.Product.Name),
		Price:    req.Product.Price,
		Stock:    req.Product.Stock,
		Unit:     strings.TrimSpace(req.Product.Unit),
		Category: strings.TrimSpace(req.Product.Category),
		ImageURL: strings.TrimSpace(req.Product.ImageURL),
	})
	if err != nil {
		log.Printf("[wishlist_handler] POST add-item uc error userId=%q err=%v", userID, err)
		h.writeUcErr(w, err)
		return
	}

	log.Printf("[wishlist_handler] POST add-item ok userId=%q productId=%q elapsed=%s", userID, pid, time.Since(start))
	writeJSON(w, http.StatusOK, query.ToWishlistDTO(wl))
}

func (h *WishlistHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request, start time.Time) {
	var req wishlistItemReq
	if err := readJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	userID := readUserID(r, req.UserID)
	pid := strings.TrimSpace(req.ProductID)

	if userID == "" || pid == "" {
		writeErr(w, http.StatusBadRequest, "userId and productId are required")
		return
	}

	wl, err := h.uc.RemoveItem(r.Context(), userID, pid)
	if err != nil {
		log.Printf("[wishlist_handler] DELETE remove-item uc error userId=%q err=%v", userID, err)
		h.writeUcErr(w, err)
		return
	}

	log.Printf("[wishlist_handler] DELETE remove-item ok userId=%q productId=%q elapsed=%s", userID, pid, time.Since(start))
	writeJSON(w, http.StatusOK, query.ToWishlistDTO(wl))
}

func (h *WishlistHandler) handleClear(w http.ResponseWriter, r *http.Request, start time.Time) {
	userID := readUserID(r, "")
	if userID == "" {
		writeErr(w, http.StatusBadRequest, "userId is required")
		return
	}

	wl, err := h.uc.Clear(r.Context(), userID)
	if err != nil {
		log.Printf("[wishlist_handler] DELETE clear uc error userId=%q err=%v", userID, err)
		h.writeUcErr(w, err)
		return
	}

	log.Printf("[wishlist_handler] DELETE clear ok userId=%q elapsed=%s", userID, time.Since(start))
	writeJSON(w, http.StatusOK, query.ToWishlistDTO(wl))
}

func (h *WishlistHandler) writeUcErr(w http.ResponseWriter, err error) {
	if err == nil {
		writeErr(w, http.StatusInternalServerError, "unknown error")
		return
	}
	if errors.Is(err, usecase.ErrWishlistInvalidArgument) || errors.Is(err, wldom.ErrInvalidWishlist) {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	writeErr(w, http.StatusInternalServerError, err.Error())
}
