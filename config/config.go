package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	Env              string
	BaseDataDir      string // directory holding the catalog and cart CSV files
	UploadDir        string
	PayOSClientID    string
	PayOSAPIKey      string
	PayOSChecksumKey string
	WebDomain        string // used as both cancel and return URL
}

// Load reads configuration from the environment. A .env file is honored when
// present but is not required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		BaseDataDir:      os.Getenv("BASE_DATA_DIR"),
		UploadDir:        getEnv("UPLOAD_DIR", "static/uploads"),
		PayOSClientID:    os.Getenv("PAYOS_CLIENT_ID"),
		PayOSAPIKey:      os.Getenv("PAYOS_API_KEY"),
		PayOSChecksumKey: os.Getenv("PAYOS_CHECKSUM_KEY"),
		WebDomain:        os.Getenv("WEB_DOMAIN"),
	}

	if cfg.BaseDataDir == "" || cfg.PayOSClientID == "" || cfg.PayOSAPIKey == "" ||
		cfg.PayOSChecksumKey == "" || cfg.WebDomain == "" {
		return nil, fmt.Errorf("missing required environment variables")
	}

	// The upload folder is served statically and inspected by /check_uploads.
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	return cfg, nil
}

// CatalogPath returns the path of the flash-sale catalog CSV.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.BaseDataDir, "analysis.csv")
}

// CartPath returns the path of the shopping-cart CSV.
func (c *Config) CartPath() string {
	return filepath.Join(c.BaseDataDir, "shoppingcart.csv")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
