package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-mouse-storefront/internal/cart"
	"github.com/imrishuroy/go-mouse-storefront/internal/catalog"
	"github.com/imrishuroy/go-mouse-storefront/internal/checkout"
	"github.com/imrishuroy/go-mouse-storefront/internal/idempotency"
	"github.com/imrishuroy/go-mouse-storefront/internal/validation"
)

// HeaderIdempotencyKey lets a client retry a checkout without placing a
// second order.
const HeaderIdempotencyKey = "Idempotency-Key"

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// RegisterStorefrontRoutes registers the shopper-facing routes.
func RegisterStorefrontRoutes(r gin.IRouter, svc *Services) {
	r.GET("/products", func(c *gin.Context) {
		var q catalog.Query
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_query", "detail": err.Error()})
			return
		}
		view, err := svc.Catalog.Browse(c.Request.Context(), q)
		if errors.Is(err, catalog.ErrInvalidSort) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_sort", "detail": err.Error()})
			return
		}
		if err != nil {
			internalError(c, "browse_failed", err)
			return
		}
		c.JSON(http.StatusOK, view)
	})

	r.GET("/products/:id", func(c *gin.Context) {
		p, err := svc.Catalog.Product(c.Request.Context(), c.Param("id"))
		if err != nil {
			internalError(c, "product_lookup_failed", err)
			return
		}
		if p == nil {
			notFound(c)
			return
		}
		c.JSON(http.StatusOK, p)
	})

	r.GET("/cart", func(c *gin.Context) {
		writeCart(c, svc)
	})

	r.DELETE("/cart", func(c *gin.Context) {
		if err := svc.Cart.Clear(c.Request.Context()); err != nil {
			internalError(c, "cart_update_failed", err)
			return
		}
		writeCart(c, svc)
	})

	r.POST("/cart/items", func(c *gin.Context) {
		var req addItemRequest
		if err := validation.BindJSON(c, &req); err != nil {
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		ctx := c.Request.Context()
		p, err := svc.Catalog.Product(ctx, req.ProductID)
		if err != nil {
			internalError(c, "product_lookup_failed", err)
			return
		}
		if p == nil {
			notFound(c)
			return
		}
		err = svc.Cart.AddItem(ctx, req.ProductID, req.Quantity)
		if errors.Is(err, cart.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_quantity", "detail": err.Error()})
			return
		}
		if err != nil {
			internalError(c, "cart_update_failed", err)
			return
		}
		writeCart(c, svc)
	})

	r.PUT("/cart/items/:id", func(c *gin.Context) {
		var req updateItemRequest
		if err := validation.BindJSON(c, &req); err != nil {
			return
		}
		err := svc.Cart.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity)
		if errors.Is(err, cart.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_quantity", "detail": err.Error()})
			return
		}
		if err != nil {
			internalError(c, "cart_update_failed", err)
			return
		}
		writeCart(c, svc)
	})

	r.DELETE("/cart/items/:id", func(c *gin.Context) {
		if err := svc.Cart.RemoveItem(c.Request.Context(), c.Param("id")); err != nil {
			internalError(c, "cart_update_failed", err)
			return
		}
		writeCart(c, svc)
	})

	r.POST("/checkout", func(c *gin.Context) {
		placeOrder(c, svc)
	})
}

func writeCart(c *gin.Context, svc *Services) {
	sum, err := svc.Cart.Summary(c.Request.Context())
	if err != nil {
		internalError(c, "cart_read_failed", err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// placeOrder runs a checkout. With an Idempotency-Key, a repeated request
// replays the first successful response instead of placing another order.
func placeOrder(c *gin.Context, svc *Services) {
	ctx := c.Request.Context()
	key := c.GetHeader(HeaderIdempotencyKey)

	if key != "" {
		claimed, err := svc.Idempotency.CreateIfNotExists(ctx, key)
		if err != nil {
			internalError(c, "idempotency_check_failed", err)
			return
		}
		if !claimed {
			replay(c, svc, key)
			return
		}
	}

	fail := func(note string) {
		if key == "" {
			return
		}
		// a failed record lets the client retry with the same key
		_ = svc.Idempotency.MarkFailed(ctx, key, note)
	}

	var form checkout.Form
	if err := validation.BindJSON(c, &form); err != nil {
		fail("invalid_request_body")
		return
	}

	order, err := svc.Checkout.Place(ctx, form)
	switch {
	case err == nil:
	case errors.Is(err, checkout.ErrEmptyCart):
		fail("empty_cart")
		c.JSON(http.StatusConflict, gin.H{"error": "empty_cart", "detail": "Your cart is empty"})
		return
	default:
		fail(err.Error())
		if validation.WriteError(c, err) {
			return
		}
		internalError(c, "checkout_failed", err)
		return
	}

	body, err := json.Marshal(order)
	if err != nil {
		internalError(c, "encode_failed", err)
		return
	}
	if key != "" {
		if err := svc.Idempotency.MarkDone(ctx, key, order.ID, string(body), http.StatusCreated); err != nil {
			// the order stands; a retry with this key sees IN_PROGRESS until the record expires
			log.Printf("[checkout] order=%s idempotency key=%s not marked done: %v", order.ID, key, err)
		}
	}
	c.Data(http.StatusCreated, "application/json; charset=utf-8", body)
}

func replay(c *gin.Context, svc *Services, key string) {
	rec, err := svc.Idempotency.Get(c.Request.Context(), key)
	if err != nil {
		internalError(c, "idempotency_check_failed", err)
		return
	}
	if rec == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "idempotency_conflict"})
		return
	}
	switch rec.Status {
	case idempotency.StatusDone:
		if rec.ResponseBody != "" {
			c.Data(rec.ResponseStatus, "application/json; charset=utf-8", []byte(rec.ResponseBody))
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": rec.OrderID})
	case idempotency.StatusInProgress:
		c.JSON(http.StatusAccepted, gin.H{"message": "request already in progress"})
	default:
		c.JSON(http.StatusConflict, gin.H{"error": "idempotency_conflict", "status": rec.Status})
	}
}
