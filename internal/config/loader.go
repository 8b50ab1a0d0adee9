package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if LADDER_CONFIG is set
//  3. env (prefix LADDER_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("LADDER_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Map env keys like LADDER_REDIS_ADDR -> redis_addr to match the
	// koanf tags on the struct.
	envProvider := env.Provider("LADDER_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "ladder_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.Store {
	case StoreMemory:
	case StorePostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("%w: postgres_url is required for the postgres store", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, c.Store)
	}
	if c.CacheTTLSeconds < 0 {
		return fmt.Errorf("%w: cache_ttl_seconds must not be negative", ErrInvalidConfig)
	}
	return nil
}
