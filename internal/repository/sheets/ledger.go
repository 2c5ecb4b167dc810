// Package sheets appends completed sales to a Google Sheets ledger, giving
// the shop an off-device record without a sync protocol.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/poultrypos/internal/config"
	"github.com/mamadbah2/poultrypos/internal/domain/models"
)

const salesWriteRange = "Sales!A:H"

// Ledger writes sale rows through the official Google Sheets API.
type Ledger struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewLedger builds a Sheets-backed sales ledger.
func NewLedger(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*Ledger, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &Ledger{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendSale writes one row per sale: date, id, item summary, subtotal, tax,
// total, payment method and customer.
func (l *Ledger) AppendSale(ctx context.Context, sale models.Sale) error {
	row := []interface{}{
		sale.Date.UTC().Format("2006-01-02 15:04:05"),
		sale.ID,
		itemSummary(sale.Items),
		sale.Subtotal,
		sale.Tax,
		sale.Total,
		string(sale.PaymentMethod),
		sale.Customer,
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}
	call := l.service.Spreadsheets.Values.Append(l.spreadsheetID, salesWriteRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append sale %d into range %s: %w", sale.ID, salesWriteRange, err)
	}

	l.logger.Debug("sale row appended to sheet", zap.Int64("sale_id", sale.ID))
	return nil
}

func itemSummary(items []models.SaleItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
	}
	return strings.Join(parts, ", ")
}
