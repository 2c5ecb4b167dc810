package sales

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/poultrypos/internal/domain/models"
	"github.com/mamadbah2/poultrypos/internal/repository/memory"
)

func newTestManager(t *testing.T) (*Manager, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Open(context.Background()))
	return NewManager(store, nil, nil), store
}

func addSale(t *testing.T, store *memory.Store, date time.Time, total float64, items ...models.SaleItem) models.Sale {
	t.Helper()
	sale := models.Sale{
		Date:          date,
		Items:         items,
		Subtotal:      total,
		Total:         total,
		PaymentMethod: models.PaymentCash,
		CreatedAt:     date,
	}
	_, err := store.Sales().Add(context.Background(), &sale)
	require.NoError(t, err)
	return sale
}

func item(name string, qty int) models.SaleItem {
	return models.SaleItem{Name: name, Quantity: qty, Price: 1}
}

func TestStats(t *testing.T) {
	mgr, store := newTestManager(t)
	ctx := context.Background()

	now := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)
	mgr.now = func() time.Time { return now }

	addSale(t, store, now.Add(-48*time.Hour), 100, item("Whole Chicken", 2))
	addSale(t, store, now.Add(-2*time.Hour), 30, item("Organic Eggs", 5))
	addSale(t, store, now.Add(-1*time.Hour), 20, item("Organic Eggs", 1))

	stats, err := mgr.Stats(ctx)
	require.NoError(t, err)

	assert.InDelta(t, 50, stats.TodayRevenue, 1e-9, "only today's sales count")
	assert.Equal(t, 3, stats.TotalOrders)
	assert.InDelta(t, 50, stats.AvgOrder, 1e-9)
	assert.Equal(t, "Organic Eggs", stats.TopProduct, "quantities sum across sales")
}

func TestStatsEmptyHistory(t *testing.T) {
	mgr, _ := newTestManager(t)

	stats, err := mgr.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TodayRevenue)
	assert.Zero(t, stats.TotalOrders)
	assert.Zero(t, stats.AvgOrder)
	assert.Empty(t, stats.TopProduct)
}

func TestTopProductTieKeepsFirstSeen(t *testing.T) {
	sales := []models.Sale{
		{Items: []models.SaleItem{item("Wings", 3)}},
		{Items: []models.SaleItem{item("Drumsticks", 3)}},
	}
	assert.Equal(t, "Wings", topProduct(sales))
}

func TestRecentCapsAndSorts(t *testing.T) {
	mgr, store := newTestManager(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		addSale(t, store, base.Add(time.Duration(i)*time.Hour), float64(i+1), item("Eggs", 1))
	}

	recent, err := mgr.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 10)

	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i].Date.After(recent[i-1].Date), "dates must descend")
	}
	assert.Equal(t, base.Add(14*time.Hour), recent[0].Date)
}

func TestSearch(t *testing.T) {
	mgr, store := newTestManager(t)
	ctx := context.Background()

	now := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)
	first := addSale(t, store, now, 10, item("Whole Chicken", 1))
	addWithCustomer(t, store, now.Add(time.Hour), "Mariama Diallo")

	byItem, err := mgr.Search(ctx, "chicken")
	require.NoError(t, err)
	require.Len(t, byItem, 1)
	assert.Equal(t, first.ID, byItem[0].ID)

	byCustomer, err := mgr.Search(ctx, "mariama")
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)

	byID, err := mgr.Search(ctx, fmt.Sprintf("%d", first.ID))
	require.NoError(t, err)
	assert.NotEmpty(t, byID)

	none, err := mgr.Search(ctx, "nothing-matches")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func addWithCustomer(t *testing.T, store *memory.Store, date time.Time, customer string) models.Sale {
	t.Helper()
	sale := models.Sale{
		Date:          date,
		Items:         []models.SaleItem{item("Organic Eggs", 2)},
		Total:         10,
		PaymentMethod: models.PaymentCard,
		Customer:      customer,
		CreatedAt:     date,
	}
	_, err := store.Sales().Add(context.Background(), &sale)
	require.NoError(t, err)
	return sale
}

func TestExport(t *testing.T) {
	mgr, store := newTestManager(t)
	ctx := context.Background()

	fixed := time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC)
	mgr.now = func() time.Time { return fixed }

	addSale(t, store, fixed, 42.87, item("Whole Chicken", 3))

	filename, data, err := mgr.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sales-export-2025-06-15.json", filename)

	var decoded []models.Sale
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.InDelta(t, 42.87, decoded[0].Total, 1e-9)

	assert.Contains(t, string(data), "\n  ", "export is pretty printed")
}

type recordingLedger struct {
	appended []models.Sale
	err      error
}

func (l *recordingLedger) AppendSale(_ context.Context, sale models.Sale) error {
	if l.err != nil {
		return l.err
	}
	l.appended = append(l.appended, sale)
	return nil
}

func TestRecordToLedger(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Open(context.Background()))

	ledger := &recordingLedger{}
	mgr := NewManager(store, ledger, nil)

	sale := models.Sale{ID: 1, Total: 10}
	mgr.RecordToLedger(context.Background(), sale)
	require.Len(t, ledger.appended, 1)

	ledger.err = errors.New("sheet offline")
	mgr.RecordToLedger(context.Background(), sale)
	assert.Len(t, ledger.appended, 1, "ledger failures are swallowed")

	nilLedgerMgr := NewManager(store, nil, nil)
	nilLedgerMgr.RecordToLedger(context.Background(), sale)
}
