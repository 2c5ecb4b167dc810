package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultrypos/internal/domain/models"
	"github.com/mamadbah2/poultrypos/internal/repository"
	"github.com/mamadbah2/poultrypos/internal/service/pos"
)

// ProductsHandler serves the product catalog.
type ProductsHandler struct {
	store  repository.Store
	engine *pos.Engine
	logger *zap.Logger
}

// NewProductsHandler constructs the HTTP handler adapter.
func NewProductsHandler(store repository.Store, engine *pos.Engine, logger *zap.Logger) *ProductsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductsHandler{store: store, engine: engine, logger: logger}
}

// List returns the catalog, optionally narrowed by ?q= substring search or an
// exact ?category= filter.
func (h *ProductsHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		products []models.Product
		err      error
	)
	switch {
	case c.Query("category") != "":
		products, err = h.engine.ProductsByCategory(ctx, models.Category(c.Query("category")))
	default:
		products, err = h.engine.SearchProducts(ctx, c.Query("q"))
	}
	if err != nil {
		h.logger.Error("failed listing products", zap.Error(err))
		c.JSON(storeStatus(err), gin.H{"error": "failed to list products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// Create adds a catalog product.
func (h *ProductsHandler) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := product.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := h.store.Products().Add(c.Request.Context(), &product); err != nil {
		h.logger.Error("failed creating product", zap.Error(err))
		c.JSON(storeStatus(err), gin.H{"error": "failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// Get returns one product by id.
func (h *ProductsHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.store.Products().Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// Update applies a partial update; absent fields are left untouched.
func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var update models.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := update.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.Products().Update(c.Request.Context(), id, update); err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "failed to update product"})
		return
	}

	product, err := h.store.Products().Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "failed to load product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// Delete removes a product from the catalog.
func (h *ProductsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.store.Products().Delete(c.Request.Context(), id); err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "failed to delete product"})
		return
	}

	c.Status(http.StatusNoContent)
}
