package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultrypos/internal/app"
	"github.com/mamadbah2/poultrypos/internal/repository"
	"github.com/mamadbah2/poultrypos/internal/service/pos"
	"github.com/mamadbah2/poultrypos/internal/service/sales"
)

// POSHandler serves the cart and checkout endpoints.
type POSHandler struct {
	engine   *pos.Engine
	sales    *sales.Manager
	notifier *app.Notifier
	logger   *zap.Logger
}

// NewPOSHandler constructs the HTTP handler adapter.
func NewPOSHandler(engine *pos.Engine, salesMgr *sales.Manager, notifier *app.Notifier, logger *zap.Logger) *POSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &POSHandler{engine: engine, sales: salesMgr, notifier: notifier, logger: logger}
}

type cartLineRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// Cart returns the current cart lines and totals.
func (h *POSHandler) Cart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items":  h.engine.Cart(),
		"totals": h.engine.Totals(),
	})
}

// AddItem adds quantity of a product to the cart.
func (h *POSHandler) AddItem(c *gin.Context) {
	var req cartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if req.ProductID <= 0 || req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId and quantity must be positive"})
		return
	}

	if err := h.engine.AddToCart(c.Request.Context(), req.ProductID, req.Quantity); err != nil {
		h.respondCartError(c, err)
		return
	}

	h.Cart(c)
}

// UpdateItem sets the quantity of an existing cart line. A non-positive
// quantity removes the line.
func (h *POSHandler) UpdateItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.engine.UpdateQuantity(c.Request.Context(), id, req.Quantity); err != nil {
		h.respondCartError(c, err)
		return
	}

	h.Cart(c)
}

// RemoveItem drops a cart line.
func (h *POSHandler) RemoveItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.engine.RemoveFromCart(c.Request.Context(), id); err != nil {
		h.respondCartError(c, err)
		return
	}

	h.Cart(c)
}

// Clear empties the cart.
func (h *POSHandler) Clear(c *gin.Context) {
	if err := h.engine.ClearCart(c.Request.Context()); err != nil {
		h.respondCartError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Checkout commits the cart as a sale.
func (h *POSHandler) Checkout(c *gin.Context) {
	var req pos.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	sale, err := h.engine.Checkout(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("checkout rejected", zap.Error(err))
		switch {
		case errors.Is(err, pos.ErrInvalidPaymentMethod):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, pos.ErrEmptyCart),
			errors.Is(err, pos.ErrInsufficientPayment),
			errors.Is(err, pos.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, pos.ErrProductNotFound), errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(storeStatus(err), gin.H{"error": "checkout failed"})
		}
		return
	}

	h.sales.RecordToLedger(c.Request.Context(), *sale)
	h.notifier.Success(fmt.Sprintf("Sale #%d completed, total %.2f", sale.ID, sale.Total))

	c.JSON(http.StatusCreated, sale)
}

// respondCartError maps cart mutation errors onto status codes.
func (h *POSHandler) respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pos.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, pos.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("cart operation failed", zap.Error(err))
		c.JSON(storeStatus(err), gin.H{"error": "cart operation failed"})
	}
}
