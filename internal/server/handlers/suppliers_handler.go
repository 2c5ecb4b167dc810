package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultrypos/internal/domain/models"
	"github.com/mamadbah2/poultrypos/internal/repository"
)

// SuppliersHandler serves the supplier contacts.
type SuppliersHandler struct {
	store  repository.Store
	logger *zap.Logger
}

// NewSuppliersHandler constructs the HTTP handler adapter.
func NewSuppliersHandler(store repository.Store, logger *zap.Logger) *SuppliersHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SuppliersHandler{store: store, logger: logger}
}

// List returns the suppliers, optionally narrowed by ?q= substring search
// over name, type and email.
func (h *SuppliersHandler) List(c *gin.Context) {
	suppliers, err := h.store.Suppliers().GetAll(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing suppliers", zap.Error(err))
		c.JSON(storeStatus(err), gin.H{"error": "failed to list suppliers"})
		return
	}

	if q := strings.ToLower(c.Query("q")); q != "" {
		var filtered []models.Supplier
		for _, s := range suppliers {
			if strings.Contains(strings.ToLower(s.Name), q) ||
				strings.Contains(strings.ToLower(s.Type), q) ||
				strings.Contains(strings.ToLower(s.Email), q) {
				filtered = append(filtered, s)
			}
		}
		suppliers = filtered
	}

	c.JSON(http.StatusOK, suppliers)
}

// Create adds a supplier.
func (h *SuppliersHandler) Create(c *gin.Context) {
	var supplier models.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := supplier.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	supplier.CreatedAt = now
	supplier.UpdatedAt = now

	if _, err := h.store.Suppliers().Add(c.Request.Context(), &supplier); err != nil {
		h.logger.Error("failed creating supplier", zap.Error(err))
		c.JSON(storeStatus(err), gin.H{"error": "failed to create supplier"})
		return
	}

	c.JSON(http.StatusCreated, supplier)
}

// Get returns one supplier by id.
func (h *SuppliersHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	supplier, err := h.store.Suppliers().Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "supplier not found"})
		return
	}

	c.JSON(http.StatusOK, supplier)
}

// Update applies a partial update; absent fields are left untouched.
func (h *SuppliersHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var update models.SupplierUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := update.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.Suppliers().Update(c.Request.Context(), id, update); err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "failed to update supplier"})
		return
	}

	supplier, err := h.store.Suppliers().Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "failed to load supplier"})
		return
	}

	c.JSON(http.StatusOK, supplier)
}

// Delete removes a supplier.
func (h *SuppliersHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.store.Suppliers().Delete(c.Request.Context(), id); err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "failed to delete supplier"})
		return
	}

	c.Status(http.StatusNoContent)
}
