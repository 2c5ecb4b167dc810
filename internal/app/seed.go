package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/poultrypos/internal/domain/models"
)

// sampleCatalog is the starter catalog loaded into an empty products
// collection so a fresh install has a working shop floor.
var sampleCatalog = []models.Product{
	{Name: "Whole Chicken", Category: models.CategoryProcessed, Unit: "each", Price: 12.99, Stock: 50, Description: "Fresh whole chicken"},
	{Name: "Chicken Breast", Category: models.CategoryProcessed, Unit: "kg", Price: 8.99, Stock: 30, Description: "Boneless chicken breast"},
	{Name: "Chicken Thighs", Category: models.CategoryProcessed, Unit: "kg", Price: 6.99, Stock: 40, Description: "Chicken thighs with bone"},
	{Name: "Chicken Wings", Category: models.CategoryProcessed, Unit: "kg", Price: 5.99, Stock: 35, Description: "Fresh chicken wings"},
	{Name: "Live Broiler", Category: models.CategoryLive, Unit: "each", Price: 15.99, Stock: 100, Description: "Live broiler chicken"},
	{Name: "Live Layer", Category: models.CategoryLive, Unit: "each", Price: 18.99, Stock: 80, Description: "Live layer chicken for eggs"},
	{Name: "Fresh Eggs", Category: models.CategoryEggs, Unit: "dozen", Price: 3.99, Stock: 200, Description: "Farm fresh eggs"},
	{Name: "Jumbo Eggs", Category: models.CategoryEggs, Unit: "dozen", Price: 4.99, Stock: 150, Description: "Jumbo size fresh eggs"},
	{Name: "Organic Eggs", Category: models.CategoryEggs, Unit: "dozen", Price: 6.99, Stock: 100, Description: "Organic free-range eggs"},
	{Name: "Starter Feed", Category: models.CategoryFeed, Unit: "bag", Price: 25.99, Stock: 50, Description: "25kg bag - chicks 0-3 weeks"},
	{Name: "Grower Feed", Category: models.CategoryFeed, Unit: "bag", Price: 23.99, Stock: 40, Description: "25kg bag - chickens 3-6 weeks"},
	{Name: "Layer Feed", Category: models.CategoryFeed, Unit: "bag", Price: 27.99, Stock: 30, Description: "25kg bag - egg production"},
}

// seedCatalog inserts the sample products when the catalog is empty. A
// populated catalog is left alone, so the seed runs at most once per store.
func (a *App) seedCatalog(ctx context.Context) error {
	existing, err := a.Store.Products().GetAll(ctx)
	if err != nil {
		return fmt.Errorf("checking catalog: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, product := range sampleCatalog {
		product.CreatedAt = now
		product.UpdatedAt = now
		if _, err := a.Store.Products().Add(ctx, &product); err != nil {
			return fmt.Errorf("seeding product %s: %w", product.Name, err)
		}
	}
	a.logger.Info("seeded sample catalog", zap.Int("products", len(sampleCatalog)))
	return nil
}
