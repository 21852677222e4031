package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level salescope.yaml configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Catalog CatalogConfig `yaml:"catalog"`
	Report  ReportConfig  `yaml:"report"`
}

// DataConfig holds input and output file paths.
type DataConfig struct {
	Input          string `yaml:"input"`
	EnrichedOutput string `yaml:"enriched_output"`
	ReportOutput   string `yaml:"report_output"`
}

// CatalogConfig configures the remote product catalog fetch.
type CatalogConfig struct {
	URL            string `yaml:"url"`
	Limit          int    `yaml:"limit"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ReportConfig controls report sizing.
type ReportConfig struct {
	TopProducts          int `yaml:"top_products"`
	TopCustomers         int `yaml:"top_customers"`
	TrendDays            int `yaml:"trend_days"`
	LowQuantityThreshold int `yaml:"low_quantity_threshold"`
}

// Load reads a salescope.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Input:          "data/sales_data.txt",
			EnrichedOutput: "data/enriched_sales_data.txt",
			ReportOutput:   "output/sales_report.txt",
		},
		Catalog: CatalogConfig{
			URL:            "https://dummyjson.com/products",
			Limit:          100,
			TimeoutSeconds: 10,
		},
		Report: ReportConfig{
			TopProducts:          5,
			TopCustomers:         5,
			TrendDays:            5,
			LowQuantityThreshold: 10,
		},
	}
}
