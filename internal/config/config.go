package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage backend selectors.
const (
	BackendMongoDB = "mongodb"
	BackendMemory  = "memory"
)

// Config represents the full application configuration surface.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	POS    POSConfig
	Digest DigestConfig
	Sheets SheetsConfig
	Assets AssetsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// StoreConfig selects and parameterizes the persistence backend. SeedCatalog
// populates an empty products collection with the starter catalog on startup.
type StoreConfig struct {
	Backend     string
	URI         string
	DBName      string
	SeedCatalog bool
}

// POSConfig holds point-of-sale options.
type POSConfig struct {
	TaxRate float64
}

// DigestConfig holds the stock digest scheduler settings.
type DigestConfig struct {
	CronSchedule string
	Timezone     string
}

// SheetsConfig contains configuration required to mirror sales into a Google
// Sheets ledger. The ledger is enabled only when both fields are set.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// AssetsConfig holds the offline asset cache settings. The cache is enabled
// only when OriginURL is set.
type AssetsConfig struct {
	OriginURL    string
	CacheVersion string
}

// Enabled reports whether the sales ledger is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// Enabled reports whether the asset cache is configured.
func (c AssetsConfig) Enabled() bool {
	return c.OriginURL != ""
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	taxRate, err := getenvFloat("POS_TAX_RATE", 0.10)
	if err != nil {
		return nil, err
	}

	seedCatalog, err := getenvBool("SEED_SAMPLE_CATALOG", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Store: StoreConfig{
			Backend:     getenvWithDefault("STORE_BACKEND", BackendMongoDB),
			URI:         getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName:      getenvWithDefault("MONGODB_DB_NAME", "poultrypos"),
			SeedCatalog: seedCatalog,
		},
		POS: POSConfig{
			TaxRate: taxRate,
		},
		Digest: DigestConfig{
			CronSchedule: getenvWithDefault("DIGEST_CRON_SCHEDULE", "0 8 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "Africa/Conakry"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_LEDGER_ID"),
		},
		Assets: AssetsConfig{
			OriginURL:    os.Getenv("ASSET_ORIGIN_URL"),
			CacheVersion: getenvWithDefault("ASSET_CACHE_VERSION", "inventory-pos-v1"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch c.Store.Backend {
	case BackendMemory:
	case BackendMongoDB:
		if c.Store.URI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
		if c.Store.DBName == "" {
			return errors.New("MONGODB_DB_NAME must be provided")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	if c.POS.TaxRate < 0 {
		return errors.New("POS_TAX_RATE must not be negative")
	}

	if c.Digest.CronSchedule == "" {
		return errors.New("DIGEST_CRON_SCHEDULE must be provided")
	}
	if c.Digest.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	// The ledger needs both credentials and a spreadsheet; one without the
	// other is a misconfiguration rather than a disabled feature.
	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_LEDGER_ID must be set together")
	}

	if c.Assets.Enabled() && c.Assets.CacheVersion == "" {
		return errors.New("ASSET_CACHE_VERSION must not be empty")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvBool(key string, fallback bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return parsed, nil
}

func getenvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return parsed, nil
}
