package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultrypos/internal/server/handlers"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Products  *handlers.ProductsHandler
	Batches   *handlers.BatchesHandler
	Feed      *handlers.FeedHandler
	Suppliers *handlers.SuppliersHandler
	Customers *handlers.CustomersHandler
	POS       *handlers.POSHandler
	Sales     *handlers.SalesHandler
	System    *handlers.SystemHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")

	products := api.Group("/products")
	products.GET("", h.Products.List)
	products.POST("", h.Products.Create)
	products.GET("/:id", h.Products.Get)
	products.PATCH("/:id", h.Products.Update)
	products.DELETE("/:id", h.Products.Delete)

	batches := api.Group("/batches")
	batches.GET("", h.Batches.List)
	batches.GET("/stats", h.Batches.Stats)
	batches.POST("", h.Batches.Create)
	batches.GET("/:id", h.Batches.Get)
	batches.PATCH("/:id", h.Batches.Update)
	batches.DELETE("/:id", h.Batches.Delete)

	feed := api.Group("/feed")
	feed.GET("", h.Feed.List)
	feed.GET("/stats", h.Feed.Stats)
	feed.POST("", h.Feed.Create)
	feed.GET("/:id", h.Feed.Get)
	feed.PATCH("/:id", h.Feed.Update)
	feed.DELETE("/:id", h.Feed.Delete)

	suppliers := api.Group("/suppliers")
	suppliers.GET("", h.Suppliers.List)
	suppliers.POST("", h.Suppliers.Create)
	suppliers.GET("/:id", h.Suppliers.Get)
	suppliers.PATCH("/:id", h.Suppliers.Update)
	suppliers.DELETE("/:id", h.Suppliers.Delete)

	customers := api.Group("/customers")
	customers.GET("", h.Customers.List)
	customers.POST("", h.Customers.Create)
	customers.GET("/:id", h.Customers.Get)
	customers.PATCH("/:id", h.Customers.Update)
	customers.DELETE("/:id", h.Customers.Delete)

	cart := api.Group("/cart")
	cart.GET("", h.POS.Cart)
	cart.POST("/items", h.POS.AddItem)
	cart.PUT("/items/:id", h.POS.UpdateItem)
	cart.DELETE("/items/:id", h.POS.RemoveItem)
	cart.DELETE("", h.POS.Clear)
	api.POST("/checkout", h.POS.Checkout)

	sales := api.Group("/sales")
	sales.GET("", h.Sales.List)
	sales.GET("/stats", h.Sales.Stats)
	sales.GET("/export", h.Sales.Export)
	sales.GET("/:id", h.Sales.Get)

	api.GET("/notifications", h.System.Notifications)
	api.POST("/assets/invalidate", h.System.InvalidateAssets)
	r.GET("/assets/*path", h.System.Asset)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
