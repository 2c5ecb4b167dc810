package sales

import (
	"context"
	"encoding/json"
	"fmt"
)

// Export serializes the full sales history as a pretty-printed JSON array and
// returns it with its download file name, sales-export-<date>.json.
func (m *Manager) Export(ctx context.Context) (string, []byte, error) {
	sales, err := m.Load(ctx)
	if err != nil {
		return "", nil, err
	}

	data, err := json.MarshalIndent(sales, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("encode sales export: %w", err)
	}

	filename := fmt.Sprintf("sales-export-%s.json", m.now().UTC().Format("2006-01-02"))
	return filename, data, nil
}
