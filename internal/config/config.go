package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Client Client
	Stub   Stub
}

// Client configures the storefront client.
type Client struct {
	BaseURL        string
	Timeout        time.Duration
	StorageDir     string
	Env            string
	SearchDebounce time.Duration
}

// Stub configures the local development API stub.
type Stub struct {
	Port         string
	Env          string
	JWTSecret    string
	AccessExpiry time.Duration
}

func Load() *Config {
	// .env is optional; environment variables win either way.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("API_BASE_URL", "http://localhost:3200")
	viper.SetDefault("API_TIMEOUT_SECONDS", 15)
	viper.SetDefault("STORAGE_DIR", defaultStorageDir())
	viper.SetDefault("STOREFRONT_ENV", "development")
	viper.SetDefault("SEARCH_DEBOUNCE_MS", 300)
	viper.SetDefault("STUB_PORT", "3200")
	viper.SetDefault("STUB_ENV", "development")
	viper.SetDefault("STUB_JWT_SECRET", "local-dev-secret")
	viper.SetDefault("STUB_ACCESS_EXPIRY_MINUTES", 60)

	return &Config{
		Client: Client{
			BaseURL:        viper.GetString("API_BASE_URL"),
			Timeout:        time.Duration(viper.GetInt("API_TIMEOUT_SECONDS")) * time.Second,
			StorageDir:     viper.GetString("STORAGE_DIR"),
			Env:            viper.GetString("STOREFRONT_ENV"),
			SearchDebounce: time.Duration(viper.GetInt("SEARCH_DEBOUNCE_MS")) * time.Millisecond,
		},
		Stub: Stub{
			Port:         viper.GetString("STUB_PORT"),
			Env:          viper.GetString("STUB_ENV"),
			JWTSecret:    viper.GetString("STUB_JWT_SECRET"),
			AccessExpiry: time.Duration(viper.GetInt("STUB_ACCESS_EXPIRY_MINUTES")) * time.Minute,
		},
	}
}

func defaultStorageDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".crickmart"
	}
	return filepath.Join(home, ".crickmart")
}
