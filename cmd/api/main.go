// cmd/api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"agromart/internal/adapters/in/http/middleware"
	"agromart/internal/platform/di"
)

// atomicHandler allows swapping the underlying handler at runtime safely.
type atomicHandler struct {
	v atomic.Value // stores http.Handler
}

func newAtomicHandler(initial http.Handler) *atomicHandler {
	ah := &atomicHandler{}
	if initial == nil {
		initial = http.NotFoundHandler()
	}
	ah.v.Store(initial)
	return ah
}

func (h *atomicHandler) Store(next http.Handler) {
	if next == nil {
		return
	}
	h.v.Store(next)
}

func (h *atomicHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cur := h.v.Load()
	if cur == nil {
		http.NotFound(w, r)
		return
	}
	cur.(http.Handler).ServeHTTP(w, r)
}

func main() {
	ctx := context.Background()

	// ─────────────────────────────────────────────────────────────
	// Port resolution: env PORT (Cloud Run) → 8080
	// ─────────────────────────────────────────────────────────────
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	corsOrigin := strings.TrimSpace(os.Getenv("CORS_ORIGIN"))

	// ─────────────────────────────────────────────────────────────
	// Start listening ASAP with lightweight mux (healthz only)
	// ─────────────────────────────────────────────────────────────
	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	switcher := newAtomicHandler(middleware.CORS(corsOrigin, healthMux))

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      switcher,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─────────────────────────────────────────────────────────────
	// Lifetime management (infra)
	// ─────────────────────────────────────────────────────────────
	var infraHolder atomic.Value // stores *di.Infra (or nil)
	infraHolder.Store((*di.Infra)(nil))

	shuttingDown := make(chan struct{})

	// ─────────────────────────────────────────────────────────────
	// Graceful shutdown
	// ─────────────────────────────────────────────────────────────
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		sig := <-c

		close(shuttingDown)
		log.Printf("[boot] received signal: %v; shutting down...", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[boot] server shutdown error: %v", err)
		}

		if v := infraHolder.Load(); v != nil {
			if infra, ok := v.(*di.Infra); ok && infra != nil {
				log.Printf("[boot] closing infra resources...")
				if err := infra.Close(); err != nil {
					log.Printf("[boot] infra close error: %v", err)
				}
				infraHolder.Store((*di.Infra)(nil))
			}
		}

		close(idleConnsClosed)
	}()

	// Start server NOW (Cloud Run startup requirement)
	go func() {
		log.Printf("[boot] listening on :%s (shop)", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[boot] server error: %v", err)
		}
	}()

	// ─────────────────────────────────────────────────────────────
	// Heavy DI init in background; then swap handler to full app mux
	// ─────────────────────────────────────────────────────────────
	go func() {
		initCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()

		infra, err := di.NewInfra(initCtx)
		if err != nil {
			log.Printf("[boot] WARN: infra init failed: %v (serving /healthz only)", err)
			return
		}
		infraHolder.Store(infra)

		cont, err := di.NewContainer(initCtx, infra)
		if err != nil {
			_ = infra.Close()
			infraHolder.Store((*di.Infra)(nil))
			log.Printf("[boot] WARN: di init failed: %v (serving /healthz only)", err)
			return
		}

		select {
		case <-shuttingDown:
			_ = infra.Close()
			return
		default:
		}

		if v := strings.TrimSpace(infra.CORSOrigin); v != "" {
			corsOrigin = v
		}

		fullMux := http.NewServeMux()

		// keep healthz
		fullMux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})

		di.Register(fullMux, cont)

		switcher.Store(middleware.CORS(corsOrigin, middleware.Recover(fullMux)))
		log.Printf("[boot] handler switched to shop router")
	}()

	<-idleConnsClosed
	log.Printf("[boot] server stopped")
}
