package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-mouse-storefront/internal/catalog"
	"github.com/imrishuroy/go-mouse-storefront/internal/kv"
	"github.com/imrishuroy/go-mouse-storefront/internal/orders"
	"github.com/imrishuroy/go-mouse-storefront/internal/validation"
)

// EventOrders is the SSE event name carrying the full order history.
const EventOrders = "orders"

type statusRequest struct {
	Status orders.Status `json:"status" binding:"required"`
}

// RegisterAdminRoutes registers the owner routes. r must already be behind
// the owner gate.
func RegisterAdminRoutes(r gin.IRouter, svc *Services) {
	r.GET("/products", func(c *gin.Context) {
		all, err := svc.Catalog.All(c.Request.Context())
		if err != nil {
			internalError(c, "products_read_failed", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": all})
	})

	r.GET("/products/:id", func(c *gin.Context) {
		p, err := svc.Catalog.Lookup(c.Request.Context(), c.Param("id"))
		if err != nil {
			internalError(c, "product_lookup_failed", err)
			return
		}
		if p == nil {
			notFound(c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": p, "draft": catalog.DraftOf(*p)})
	})

	r.POST("/products", func(c *gin.Context) {
		var d catalog.ProductDraft
		if err := validation.BindJSON(c, &d); err != nil {
			return
		}
		p, err := svc.Catalog.Create(c.Request.Context(), d)
		if err != nil {
			writeCatalogError(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	})

	r.PUT("/products/:id", func(c *gin.Context) {
		var d catalog.ProductDraft
		if err := validation.BindJSON(c, &d); err != nil {
			return
		}
		p, err := svc.Catalog.Update(c.Request.Context(), c.Param("id"), d)
		if err != nil {
			writeCatalogError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	})

	r.DELETE("/products/:id", func(c *gin.Context) {
		if err := svc.Catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeCatalogError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	r.POST("/products/:id/toggle-stock", func(c *gin.Context) {
		p, err := svc.Catalog.ToggleStock(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeCatalogError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	})

	r.GET("/orders", func(c *gin.Context) {
		view, err := svc.Orders.List(c.Request.Context(), c.Query("status"))
		if errors.Is(err, orders.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status", "detail": err.Error()})
			return
		}
		if err != nil {
			internalError(c, "orders_read_failed", err)
			return
		}
		c.JSON(http.StatusOK, view)
	})

	r.GET("/orders/stream", func(c *gin.Context) {
		streamOrders(c, svc)
	})

	r.GET("/orders/:id", func(c *gin.Context) {
		o, err := svc.Orders.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			internalError(c, "orders_read_failed", err)
			return
		}
		if o == nil {
			notFound(c)
			return
		}
		c.JSON(http.StatusOK, o)
	})

	r.PUT("/orders/:id/status", func(c *gin.Context) {
		var req statusRequest
		if err := validation.BindJSON(c, &req); err != nil {
			return
		}
		ctx := c.Request.Context()
		id := c.Param("id")
		err := svc.Orders.SetStatus(ctx, id, req.Status)
		if errors.Is(err, orders.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status", "detail": err.Error()})
			return
		}
		if err != nil {
			internalError(c, "order_update_failed", err)
			return
		}
		o, err := svc.Orders.Get(ctx, id)
		if err != nil {
			internalError(c, "orders_read_failed", err)
			return
		}
		if o == nil {
			// unknown ids are a no-op
			c.Status(http.StatusNoContent)
			return
		}
		c.JSON(http.StatusOK, o)
	})
}

func writeCatalogError(c *gin.Context, err error) {
	if validation.WriteError(c, err) {
		return
	}
	if errors.Is(err, catalog.ErrNotFound) {
		notFound(c)
		return
	}
	internalError(c, "catalog_update_failed", err)
}

// streamOrders sends the current order history, then the new history after
// every write to the orders key, until the client goes away.
func streamOrders(c *gin.Context, svc *Services) {
	ctx := c.Request.Context()
	updates, cancel := svc.Changes.Subscribe(kv.KeyOrders)
	defer cancel()

	view, err := svc.Orders.List(ctx, orders.FilterAll)
	if err != nil {
		internalError(c, "orders_read_failed", err)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.SSEvent(EventOrders, view.Orders)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case raw, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent(EventOrders, json.RawMessage(raw))
			return true
		}
	})
}
