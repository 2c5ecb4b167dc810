package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultrypos/internal/domain/models"
	"github.com/mamadbah2/poultrypos/internal/repository"
	"github.com/mamadbah2/poultrypos/internal/service/inventory"
)

// BatchesHandler serves the live-bird batch records.
type BatchesHandler struct {
	store   repository.Store
	batches *inventory.BatchManager
	logger  *zap.Logger
}

// NewBatchesHandler constructs the HTTP handler adapter.
func NewBatchesHandler(store repository.Store, batches *inventory.BatchManager, logger *zap.Logger) *BatchesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchesHandler{store: store, batches: batches, logger: logger}
}

// List returns the batches, optionally narrowed by ?q= substring search.
func (h *BatchesHandler) List(c *gin.Context) {
	batches, err := h.batches.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.Error("failed listing batches", zap.Error(err))
		c.JSON(storeStatus(err), gin.H{"error": "failed to list batches"})
		return
	}
	c.JSON(http.StatusOK, batches)
}

// Stats returns the aggregate batch dashboard numbers.
func (h *BatchesHandler) Stats(c *gin.Context) {
	stats, err := h.batches.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed computing batch stats", zap.Error(err))
		c.JSON(storeStatus(err), gin.H{"error": "failed to compute batch stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Create adds a batch record.
func (h *BatchesHandler) Create(c *gin.Context) {
	var batch models.Batch
	if err := c.ShouldBindJSON(&batch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := batch.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	batch.CreatedAt = now
	batch.UpdatedAt = now

	if _, err := h.store.Batches().Add(c.Request.Context(), &batch); err != nil {
		h.logger.Error("failed creating batch", zap.Error(err))
		c.JSON(storeStatus(err), gin.H{"error": "failed to create batch"})
		return
	}

	c.JSON(http.StatusCreated, batch)
}

// Get returns one batch by id.
func (h *BatchesHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	batch, err := h.store.Batches().Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "batch not found"})
		return
	}

	c.JSON(http.StatusOK, batch)
}

// Update applies a partial update; absent fields are left untouched.
func (h *BatchesHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var update models.BatchUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := update.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.Batches().Update(c.Request.Context(), id, update); err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "failed to update batch"})
		return
	}

	batch, err := h.store.Batches().Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "failed to load batch"})
		return
	}

	c.JSON(http.StatusOK, batch)
}

// Delete removes a batch record.
func (h *BatchesHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.store.Batches().Delete(c.Request.Context(), id); err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "failed to delete batch"})
		return
	}

	c.Status(http.StatusNoContent)
}
