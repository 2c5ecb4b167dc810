package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, BackendMongoDB, cfg.Store.Backend)
	assert.Equal(t, "poultrypos", cfg.Store.DBName)
	assert.InDelta(t, 0.10, cfg.POS.TaxRate, 1e-9)
	assert.Equal(t, "0 8 * * *", cfg.Digest.CronSchedule)
	assert.True(t, cfg.Store.SeedCatalog, "catalog seeding is on unless opted out")
	assert.Equal(t, "inventory-pos-v1", cfg.Assets.CacheVersion)
	assert.False(t, cfg.Sheets.Enabled())
	assert.False(t, cfg.Assets.Enabled())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORE_BACKEND", BackendMemory)
	t.Setenv("POS_TAX_RATE", "0.18")
	t.Setenv("ASSET_ORIGIN_URL", "http://localhost:8000")
	t.Setenv("SEED_SAMPLE_CATALOG", "false")

	cfg, err := Load("does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.InDelta(t, 0.18, cfg.POS.TaxRate, 1e-9)
	assert.True(t, cfg.Assets.Enabled())
	assert.False(t, cfg.Store.SeedCatalog)
}

func TestLoadRejectsBadSeedFlag(t *testing.T) {
	t.Setenv("SEED_SAMPLE_CATALOG", "maybe")
	_, err := Load("does-not-exist.env")
	assert.Error(t, err)
}

func TestLoadRejectsBadTaxRate(t *testing.T) {
	t.Setenv("POS_TAX_RATE", "lots")
	_, err := Load("does-not-exist.env")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server: ServerConfig{Port: "8080"},
			Store:  StoreConfig{Backend: BackendMongoDB, URI: "mongodb://localhost:27017", DBName: "poultrypos"},
			POS:    POSConfig{TaxRate: 0.10},
			Digest: DigestConfig{CronSchedule: "0 8 * * *", Timezone: "UTC"},
			Assets: AssetsConfig{CacheVersion: "inventory-pos-v1"},
		}
	}

	assert.NoError(t, base().Validate())

	noPort := base()
	noPort.Server.Port = ""
	assert.Error(t, noPort.Validate())

	badBackend := base()
	badBackend.Store.Backend = "postgres"
	assert.Error(t, badBackend.Validate())

	noURI := base()
	noURI.Store.URI = ""
	assert.Error(t, noURI.Validate())

	memoryNoURI := base()
	memoryNoURI.Store.Backend = BackendMemory
	memoryNoURI.Store.URI = ""
	assert.NoError(t, memoryNoURI.Validate(), "memory backend needs no URI")

	negativeTax := base()
	negativeTax.POS.TaxRate = -0.1
	assert.Error(t, negativeTax.Validate())

	halfSheets := base()
	halfSheets.Sheets.SpreadsheetID = "sheet-id"
	assert.Error(t, halfSheets.Validate(), "sheets settings must come in pairs")

	fullSheets := base()
	fullSheets.Sheets.CredentialsPath = "/etc/creds.json"
	fullSheets.Sheets.SpreadsheetID = "sheet-id"
	assert.NoError(t, fullSheets.Validate())
	assert.True(t, fullSheets.Sheets.Enabled())
}
