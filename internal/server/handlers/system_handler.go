package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultrypos/internal/app"
	"github.com/mamadbah2/poultrypos/internal/assets"
)

// SystemHandler serves the notification feed and the cached static assets.
// The asset cache is optional; when absent the asset route responds 404.
type SystemHandler struct {
	notifier *app.Notifier
	cache    *assets.Cache
	logger   *zap.Logger
}

// NewSystemHandler constructs the HTTP handler adapter.
func NewSystemHandler(notifier *app.Notifier, cache *assets.Cache, logger *zap.Logger) *SystemHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SystemHandler{notifier: notifier, cache: cache, logger: logger}
}

// Notifications returns the retained notifications, oldest first.
func (h *SystemHandler) Notifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.notifier.Recent())
}

// InvalidateAssets switches the asset cache to a new version, dropping the
// cached entries so the next requests refetch from the origin.
func (h *SystemHandler) InvalidateAssets(c *gin.Context) {
	if h.cache == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset cache is not configured"})
		return
	}

	var req struct {
		Version string `json:"version"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Version == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "version is required"})
		return
	}

	h.cache.Invalidate(req.Version)
	c.JSON(http.StatusOK, gin.H{"version": h.cache.Version()})
}

// Asset serves a static asset cache-first, falling back to the origin.
func (h *SystemHandler) Asset(c *gin.Context) {
	if h.cache == nil {
		c.Status(http.StatusNotFound)
		return
	}

	path := c.Param("path")
	if path == "" || path == "/" {
		path = "/index.html"
	}

	body, contentType, err := h.cache.Get(c.Request.Context(), path)
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.logger.Error("failed serving asset", zap.String("path", path), zap.Error(err))
		c.Status(http.StatusBadGateway)
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, body)
}
