// Package sales holds the sales history manager: display aggregates, search,
// the recent listing and the export surface.
package sales

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/poultrypos/internal/domain/models"
	"github.com/mamadbah2/poultrypos/internal/repository"
)

// recentLimit caps the sales table to the newest entries.
const recentLimit = 10

// Stats summarizes the sales history for the dashboard.
type Stats struct {
	TodayRevenue float64 `json:"todayRevenue"`
	TotalOrders  int     `json:"totalOrders"`
	AvgOrder     float64 `json:"avgOrder"`
	TopProduct   string  `json:"topProduct"`
}

// Ledger receives completed sales for an external record, such as a
// spreadsheet. Implementations must tolerate being called once per sale.
type Ledger interface {
	AppendSale(ctx context.Context, sale models.Sale) error
}

// Manager loads the sales history and derives its display statistics.
type Manager struct {
	store  repository.Store
	ledger Ledger
	logger *zap.Logger
	now    func() time.Time
}

// NewManager wires a sales manager. ledger may be nil when no external record
// is configured.
func NewManager(store repository.Store, ledger Ledger, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, ledger: ledger, logger: logger, now: time.Now}
}

// Load fetches the full sales history.
func (m *Manager) Load(ctx context.Context) ([]models.Sale, error) {
	sales, err := m.store.Sales().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}
	m.logger.Debug("sales loaded", zap.Int("count", len(sales)))
	return sales, nil
}

// Get fetches one sale.
func (m *Manager) Get(ctx context.Context, id int64) (*models.Sale, error) {
	return m.store.Sales().Get(ctx, id)
}

// Stats computes today's revenue, order counts, the average order value and
// the top product by summed line quantity.
func (m *Manager) Stats(ctx context.Context) (Stats, error) {
	sales, err := m.Load(ctx)
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	stats.TotalOrders = len(sales)

	today := m.now().UTC().Format("2006-01-02")
	var revenue float64
	for _, sale := range sales {
		revenue += sale.Total
		if sale.Date.UTC().Format("2006-01-02") == today {
			stats.TodayRevenue += sale.Total
		}
	}
	if len(sales) > 0 {
		stats.AvgOrder = revenue / float64(len(sales))
	}
	stats.TopProduct = topProduct(sales)
	return stats, nil
}

// topProduct sums line quantities grouped by product name and returns the
// highest. Ties resolve to the name encountered first, via a stable
// descending sort over encounter order.
func topProduct(sales []models.Sale) string {
	counts := map[string]int{}
	var order []string
	for _, sale := range sales {
		for _, item := range sale.Items {
			if _, seen := counts[item.Name]; !seen {
				order = append(order, item.Name)
			}
			counts[item.Name] += item.Quantity
		}
	}
	if len(order) == 0 {
		return ""
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return order[0]
}

// Recent returns the newest sales, date descending, capped to ten entries.
func (m *Manager) Recent(ctx context.Context) ([]models.Sale, error) {
	sales, err := m.Load(ctx)
	if err != nil {
		return nil, err
	}
	return sortRecent(sales), nil
}

// Search filters the history by sale id, customer name or line-item name and
// returns the newest matches, capped like Recent.
func (m *Manager) Search(ctx context.Context, query string) ([]models.Sale, error) {
	sales, err := m.Load(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return sortRecent(sales), nil
	}

	q := strings.ToLower(query)
	var out []models.Sale
	for _, sale := range sales {
		if matchSale(sale, q) {
			out = append(out, sale)
		}
	}
	return sortRecent(out), nil
}

func matchSale(sale models.Sale, q string) bool {
	if strings.Contains(strconv.FormatInt(sale.ID, 10), q) {
		return true
	}
	if strings.Contains(strings.ToLower(sale.Customer), q) {
		return true
	}
	for _, item := range sale.Items {
		if strings.Contains(strings.ToLower(item.Name), q) {
			return true
		}
	}
	return false
}

func sortRecent(sales []models.Sale) []models.Sale {
	sorted := append([]models.Sale(nil), sales...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > recentLimit {
		sorted = sorted[:recentLimit]
	}
	return sorted
}

// RecordToLedger forwards a completed sale to the external ledger when one is
// configured. Ledger failures are logged, never surfaced: the sale is already
// committed locally.
func (m *Manager) RecordToLedger(ctx context.Context, sale models.Sale) {
	if m.ledger == nil {
		return
	}
	if err := m.ledger.AppendSale(ctx, sale); err != nil {
		m.logger.Error("failed to append sale to ledger",
			zap.Int64("sale_id", sale.ID), zap.Error(err))
		return
	}
	m.logger.Debug("sale appended to ledger", zap.Int64("sale_id", sale.ID))
}
