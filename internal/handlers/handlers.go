// Package handlers registers the storefront's gin routes.
package handlers

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-mouse-storefront/internal/cart"
	"github.com/imrishuroy/go-mouse-storefront/internal/catalog"
	"github.com/imrishuroy/go-mouse-storefront/internal/checkout"
	"github.com/imrishuroy/go-mouse-storefront/internal/idempotency"
	"github.com/imrishuroy/go-mouse-storefront/internal/kv"
	"github.com/imrishuroy/go-mouse-storefront/internal/orders"
	"github.com/imrishuroy/go-mouse-storefront/internal/owner"
)

// HandlerConfig groups dependencies for the storefront routes.
type HandlerConfig struct {
	Store     *kv.Watched
	Owner     owner.Resolver
	Notifier  checkout.Notifier // optional
	TTLWindow time.Duration
}

// Services are the domain services behind the routes, all sharing one store.
type Services struct {
	Catalog     *catalog.Service
	Cart        *cart.Service
	Checkout    *checkout.Service
	Orders      *orders.Service
	Idempotency *idempotency.Store
	Changes     *kv.Watched
}

// NewServices wires every domain service over cfg.Store.
func NewServices(cfg HandlerConfig) *Services {
	products := catalog.NewStore(cfg.Store)
	carts := cart.NewStore(cfg.Store)
	history := orders.NewStore(cfg.Store)

	// cart, checkout and order status all rewrite the cart or orders keys
	writes := &sync.Mutex{}

	co := checkout.NewService(products, carts, history, checkout.NewKVCommitter(cfg.Store)).WithLock(writes)
	if cfg.Notifier != nil {
		co.WithNotifier(cfg.Notifier)
	}
	return &Services{
		Catalog:     catalog.NewService(products),
		Cart:        cart.NewService(carts, products).WithLock(writes),
		Checkout:    co,
		Orders:      orders.NewService(history).WithLock(writes),
		Idempotency: idempotency.NewStore(cfg.Store, cfg.TTLWindow),
		Changes:     cfg.Store,
	}
}

// RegisterRoutes registers shopper routes at the root and owner routes under
// /admin.
func RegisterRoutes(r *gin.Engine, cfg HandlerConfig) *Services {
	svc := NewServices(cfg)
	RegisterStorefrontRoutes(r, svc)
	RegisterAdminRoutes(r.Group("/admin", owner.Require(cfg.Owner)), svc)
	return svc
}

func internalError(c *gin.Context, code string, err error) {
	log.Printf("[http] %s %s: %s: %v", c.Request.Method, c.Request.URL.Path, code, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": code, "detail": err.Error()})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
}
