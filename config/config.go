package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds every configuration parameter of the backend, populated from
// the environment. A .env file in the working directory is loaded first when
// present.
type Config struct {
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8000"`

	// StorageBackend selects the persistence layer: "mongo" or "csv".
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"mongo"`

	MongoURI string `env:"MONGODB_URI"`
	DBName   string `env:"DB_NAME" envDefault:"trackly"`

	// DataDir is where the csv backend keeps its collection files.
	DataDir string `env:"DATA_DIR" envDefault:"data"`

	// AllowedOrigins is the CORS allow-list; the default covers the local
	// development front ends.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000"`
}

// Load reads the configuration from the environment, loading a .env file
// first if one exists.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing configuration: %w", err)
	}

	if cfg.StorageBackend == "mongo" && cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required with the mongo storage backend")
	}

	return &cfg, nil
}
