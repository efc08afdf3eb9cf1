package otel

import "github.com/kelseyhightower/envconfig"

// Config holds OTEL exporter configuration.
type Config struct {
	Endpoint string `envconfig:"TOOLREP_OTEL_ENDPOINT"`
	Enabled  bool   `envconfig:"TOOLREP_OTEL_ENABLED"`
	Insecure bool   `envconfig:"TOOLREP_OTEL_INSECURE"`
}

// LoadConfig loads OTEL configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
