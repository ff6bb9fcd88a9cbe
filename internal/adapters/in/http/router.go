// internal/adapters/in/http/router.go
package http

import (
	"log"
	"net/http"
)

// Deps is the shopper-facing handler set.
type Deps struct {
	Cart     http.Handler
	Wishlist http.Handler
}

// handleSafe registers pattern with h.
// If h is nil, it logs and registers NotFoundHandler instead (boot must not crash).
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[shop.router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers shopper-facing routes onto mux.
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	// cart
	handleSafe(mux, "/shop/me/cart", deps.Cart, "Cart")
	handleSafe(mux, "/shop/me/cart/", deps.Cart, "Cart")

	// wishlist
	handleSafe(mux, "/shop/me/wishlist", deps.Wishlist, "Wishlist")
	handleSafe(mux, "/shop/me/wishlist/", deps.Wishlist, "Wishlist")
}
