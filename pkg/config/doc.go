// Package config provides a type-safe, generic and cached way to load
// application configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11 behind a
// small API: Load parses the environment into any struct with `env` field
// tags and caches the result by type, so each configuration type is parsed at
// most once per process even under concurrent access. MustLoad panics on
// failure for configuration the process cannot start without.
//
// # Usage
//
//	type ClientConfig struct {
//	    BaseURL string        `env:"BLOG_API_BASE_URL,required"`
//	    Timeout time.Duration `env:"BLOG_API_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg ClientConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// The default .env file in the working directory is loaded once, lazily,
// before the first parse; a missing file is not an error. Use LoadEnv to pull
// in additional .env files explicitly, and ResetCache in tests that mutate
// the process environment between loads.
package config
