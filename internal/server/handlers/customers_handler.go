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

// CustomersHandler serves the customer records.
type CustomersHandler struct {
	store  repository.Store
	logger *zap.Logger
}

// NewCustomersHandler constructs the HTTP handler adapter.
func NewCustomersHandler(store repository.Store, logger *zap.Logger) *CustomersHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomersHandler{store: store, logger: logger}
}

// List returns the customers, optionally narrowed by ?q= substring search
// over name, phone and email.
func (h *CustomersHandler) List(c *gin.Context) {
	customers, err := h.store.Customers().GetAll(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing customers", zap.Error(err))
		c.JSON(storeStatus(err), gin.H{"error": "failed to list customers"})
		return
	}

	if q := strings.ToLower(c.Query("q")); q != "" {
		var filtered []models.Customer
		for _, cu := range customers {
			if strings.Contains(strings.ToLower(cu.Name), q) ||
				strings.Contains(strings.ToLower(cu.Phone), q) ||
				strings.Contains(strings.ToLower(cu.Email), q) {
				filtered = append(filtered, cu)
			}
		}
		customers = filtered
	}

	c.JSON(http.StatusOK, customers)
}

// Create adds a customer.
func (h *CustomersHandler) Create(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := customer.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	if _, err := h.store.Customers().Add(c.Request.Context(), &customer); err != nil {
		h.logger.Error("failed creating customer", zap.Error(err))
		c.JSON(storeStatus(err), gin.H{"error": "failed to create customer"})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// Get returns one customer by id.
func (h *CustomersHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	customer, err := h.store.Customers().Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "customer not found"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// Update applies a partial update; absent fields are left untouched.
// TotalSpent cannot be set here, it only grows through checkout.
func (h *CustomersHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var update models.CustomerUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := update.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.Customers().Update(c.Request.Context(), id, update); err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "failed to update customer"})
		return
	}

	customer, err := h.store.Customers().Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "failed to load customer"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// Delete removes a customer.
func (h *CustomersHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.store.Customers().Delete(c.Request.Context(), id); err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "failed to delete customer"})
		return
	}

	c.Status(http.StatusNoContent)
}
