// Package config provides a type-safe, cached way to load application
// configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
// values come from the process environment (optionally seeded from a .env
// file), are parsed into any annotated struct, and each configuration type
// is parsed at most once per process.
//
//	type Config struct {
//	    BaseURL string `env:"API_BASE_URL,required"`
//	    Limit   int    `env:"NOTIFICATIONS_PAGE_LIMIT" envDefault:"5"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Use ResetCache in tests that change the environment between loads.
package config
