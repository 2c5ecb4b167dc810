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

// FeedHandler serves the feed supply records. Read endpoints return rows with
// the derived status attached.
type FeedHandler struct {
	store  repository.Store
	feed   *inventory.FeedManager
	logger *zap.Logger
}

// NewFeedHandler constructs the HTTP handler adapter.
func NewFeedHandler(store repository.Store, feed *inventory.FeedManager, logger *zap.Logger) *FeedHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedHandler{store: store, feed: feed, logger: logger}
}

// List returns the feed lots with derived statuses, optionally narrowed by
// ?q= substring search.
func (h *FeedHandler) List(c *gin.Context) {
	rows, err := h.feed.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.logger.Error("failed listing feed", zap.Error(err))
		c.JSON(storeStatus(err), gin.H{"error": "failed to list feed"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Stats returns the aggregate feed dashboard numbers.
func (h *FeedHandler) Stats(c *gin.Context) {
	stats, err := h.feed.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed computing feed stats", zap.Error(err))
		c.JSON(storeStatus(err), gin.H{"error": "failed to compute feed stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Create adds a feed lot.
func (h *FeedHandler) Create(c *gin.Context) {
	var item models.FeedItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := item.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	if _, err := h.store.Feed().Add(c.Request.Context(), &item); err != nil {
		h.logger.Error("failed creating feed item", zap.Error(err))
		c.JSON(storeStatus(err), gin.H{"error": "failed to create feed item"})
		return
	}

	c.JSON(http.StatusCreated, inventory.FeedRow{FeedItem: item, Status: item.StatusAt(now)})
}

// Get returns one feed lot by id, with its derived status.
func (h *FeedHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.store.Feed().Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "feed item not found"})
		return
	}

	c.JSON(http.StatusOK, inventory.FeedRow{FeedItem: *item, Status: item.StatusAt(time.Now().UTC())})
}

// Update applies a partial update; absent fields are left untouched.
func (h *FeedHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var update models.FeedItemUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := update.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.Feed().Update(c.Request.Context(), id, update); err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "failed to update feed item"})
		return
	}

	item, err := h.store.Feed().Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "failed to load feed item"})
		return
	}

	c.JSON(http.StatusOK, inventory.FeedRow{FeedItem: *item, Status: item.StatusAt(time.Now().UTC())})
}

// Delete removes a feed lot.
func (h *FeedHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.store.Feed().Delete(c.Request.Context(), id); err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "failed to delete feed item"})
		return
	}

	c.Status(http.StatusNoContent)
}
