package config

import (
	"github.com/Skotchmaster/marketplace/internal/search"
	"github.com/Skotchmaster/marketplace/pkg/config"
)

type ServiceConfig struct {
	config.Config

	ES         search.Config
	StoreIndex string
}

func Load() ServiceConfig {
	return ServiceConfig{
		Config: config.Load(),
		ES: search.Config{
			URL:      config.EnvDefault("ES_URL", ""),
			User:     config.EnvDefault("ES_USER", ""),
			Password: config.EnvDefault("ES_PASSWORD", ""),
		},
		StoreIndex: config.EnvDefault("ES_STORE_INDEX", search.DefaultStoreIndex),
	}
}

func (c ServiceConfig) SearchEnabled() bool {
	return c.ES.URL != ""
}

func (c ServiceConfig) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}
