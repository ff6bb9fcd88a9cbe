// internal/platform/di/register.go
package di

import (
	"encoding/json"
	"log"
	"net/http"

	shophttp "agromart/internal/adapters/in/http"
	"agromart/internal/adapters/in/http/handler"
	"agromart/internal/adapters/in/http/middleware"
)

// notImplemented returns a non-nil handler (so deps are never nil) for
// endpoints that are not wired yet.
func notImplemented(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotImplemented)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "not_implemented",
			"name":  name,
		})
	})
}

// requireUserAuth wraps handler with UserAuthMiddleware (fail-closed).
// If middleware is not initialized, it returns 503 so the bug is obvious.
func requireUserAuth(mw *middleware.UserAuthMiddleware, h http.Handler, name string) http.Handler {
	if h == nil {
		h = http.NotFoundHandler()
	}
	if mw == nil || mw.FirebaseAuth == nil {
		log.Printf("[shop.register] ERROR: UserAuthMiddleware is not initialized (endpoint=%s). returning 503", name)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "user_auth_not_initialized",
				"name":  name,
			})
		})
	}
	return mw.Handler(h)
}

// optionalUserAuth wraps handler so a presented Firebase token is verified
// but anonymous requests pass through (carts identify by cartId).
func optionalUserAuth(mw *middleware.UserAuthMiddleware, h http.Handler) http.Handler {
	if h == nil {
		h = http.NotFoundHandler()
	}
	if mw == nil {
		return h
	}
	return mw.OptionalHandler(h)
}

// Register registers shop routes onto mux.
// Pure DI: construct handlers and pass into the shop router.
// - Cart: auth optional (anonymous carts carry their own cartId)
// - Wishlist: auth required (identity is the verified uid)
func Register(mux *http.ServeMux, cont *Container) {
	if mux == nil || cont == nil {
		return
	}

	var userAuthMW *middleware.UserAuthMiddleware
	if cont.Infra != nil && cont.Infra.FirebaseAuth != nil {
		userAuthMW = &middleware.UserAuthMiddleware{FirebaseAuth: cont.Infra.FirebaseAuth}
	} else {
		log.Printf("[shop.register] WARN: FirebaseAuth is nil (wishlist endpoints will return 503)")
		userAuthMW = &middleware.UserAuthMiddleware{FirebaseAuth: nil}
	}

	cartH := notImplemented("Cart")
	wishlistH := notImplemented("Wishlist")

	if cont.CartUC != nil {
		cartH = handler.NewCartHandler(cont.CartUC, cont.CartQ)
	}
	if cont.WishlistUC != nil {
		wishlistH = handler.NewWishlistHandler(cont.WishlistUC)
	}

	cartH = optionalUserAuth(userAuthMW, cartH)
	wishlistH = requireUserAuth(userAuthMW, wishlistH, "Wishlist")

	shophttp.Register(mux, shophttp.Deps{
		Cart:     cartH,
		Wishlist: wishlistH,
	})
	log.Printf("[boot] shop routes registered")
}
