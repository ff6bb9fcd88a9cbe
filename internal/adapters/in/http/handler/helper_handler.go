// internal/adapters/in/http/handler/helper_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"agromart/internal/adapters/in/http/middleware"
)

// ============================================================
// HTTP helpers
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": strings.TrimSpace(msg),
	})
}

func readJSON(r *http.Request, dst any) error {
	if dst == nil {
		return errors.New("dst is nil")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)) // 1MB
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// readCartID resolves the cart identity for the request.
// Priority: ?cartId= query -> X-Cart-Id header -> verified uid -> fallback.
// The verified uid keeps one cart per signed-in shopper; anonymous callers
// carry their own cartId (session id minted by the storefront).
func readCartID(r *http.Request, fallback string) string {
	if v := strings.TrimSpace(r.URL.Query().Get("cartId")); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.Header.Get("X-Cart-Id")); v != "" {
		return v
	}
	if uid, ok := middleware.CurrentUserUID(r); ok {
		return uid
	}
	return strings.TrimSpace(fallback)
}

// readUserID resolves the wishlist identity (verified uid preferred).
func readUserID(r *http.Request, fallback string) string {
	if uid, ok := middleware.CurrentUserUID(r); ok {
		return uid
	}
	if v := strings.TrimSpace(r.URL.Query().Get("userId")); v != "" {
		return v
	}
	return strings.TrimSpace(fallback)
}
