package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultrypos/internal/domain/models"
	"github.com/mamadbah2/poultrypos/internal/service/sales"
)

// SalesHandler serves the sales history, dashboard stats and the JSON export.
type SalesHandler struct {
	sales  *sales.Manager
	logger *zap.Logger
}

// NewSalesHandler constructs the HTTP handler adapter.
func NewSalesHandler(salesMgr *sales.Manager, logger *zap.Logger) *SalesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesHandler{sales: salesMgr, logger: logger}
}

// List returns sales, newest first and capped, optionally narrowed by ?q=
// substring search over id, customer and item names.
func (h *SalesHandler) List(c *gin.Context) {
	var (
		result []models.Sale
		err    error
	)
	if q := c.Query("q"); q != "" {
		result, err = h.sales.Search(c.Request.Context(), q)
	} else {
		result, err = h.sales.Recent(c.Request.Context())
	}
	if err != nil {
		h.logger.Error("failed listing sales", zap.Error(err))
		c.JSON(storeStatus(err), gin.H{"error": "failed to list sales"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Stats returns the sales dashboard numbers.
func (h *SalesHandler) Stats(c *gin.Context) {
	stats, err := h.sales.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed computing sales stats", zap.Error(err))
		c.JSON(storeStatus(err), gin.H{"error": "failed to compute sales stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Get returns one sale by id.
func (h *SalesHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	sale, err := h.sales.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(storeStatus(err), gin.H{"error": "sale not found"})
		return
	}

	c.JSON(http.StatusOK, sale)
}

// Export streams the full sales history as a downloadable JSON document.
func (h *SalesHandler) Export(c *gin.Context) {
	filename, data, err := h.sales.Export(c.Request.Context())
	if err != nil {
		h.logger.Error("failed exporting sales", zap.Error(err))
		c.JSON(storeStatus(err), gin.H{"error": "failed to export sales"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json", data)
}
