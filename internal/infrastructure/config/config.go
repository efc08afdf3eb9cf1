package config

import "github.com/kelseyhightower/envconfig"

// Paths holds the data set layout configuration.
type Paths struct {
	DataRoot  string `envconfig:"TOOLREP_DATA_ROOT" default:"data"`
	OutputDir string `envconfig:"TOOLREP_OUTPUT_DIR" default:"data/processed"`
	AtlasFile string `envconfig:"TOOLREP_ATLAS_FILE"`
}

// Figures holds the rendered figure dimensions in inches.
type Figures struct {
	Width  float64 `envconfig:"TOOLREP_FIG_WIDTH" default:"8"`
	Height float64 `envconfig:"TOOLREP_FIG_HEIGHT" default:"5"`
}

// Pipeline holds configuration for the analysis pipeline.
type Pipeline struct {
	Paths   Paths
	Figures Figures
}

// LoadPipeline loads pipeline configuration from environment variables.
func LoadPipeline() (*Pipeline, error) {
	var cfg Pipeline
	if err := envconfig.Process("", &cfg.Paths); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", &cfg.Figures); err != nil {
		return nil, err
	}
	return &cfg, nil
}
