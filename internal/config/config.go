//-------------------------------------------------------------------------
//
// salespipe - Sales Data ETL Pipeline
//
// Copyright (c) 2025 - 2026, the salespipe authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for salespipe.
// Configuration is loaded from config files and CLI flags; CLI flags
// take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for salespipe.
type Config struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`

	// Pipeline holds configuration for the run subcommand.
	Pipeline PipelineConfig `mapstructure:"pipeline"`

	// Report holds configuration for the report subcommand.
	Report ReportConfig `mapstructure:"report"`
}

// GenerateConfig holds configuration for sample data generation.
type GenerateConfig struct {
	// Records is the number of sales records to generate.
	Records int `mapstructure:"records"`

	// NullRate is the per-cell probability of injecting a null,
	// in [0, 1). Nulls exercise the cleaning stage downstream.
	NullRate float64 `mapstructure:"null_rate"`

	// Output is the CSV file to write.
	Output string `mapstructure:"output"`

	// Seed makes generation reproducible when non-zero.
	Seed uint64 `mapstructure:"seed"`
}

// PipelineConfig holds configuration for the ETL run.
type PipelineConfig struct {
	// Input is the sales CSV file to load.
	Input string `mapstructure:"input"`
}

// ReportConfig holds configuration for report generation.
type ReportConfig struct {
	// OutputDir is the directory report files are written to.
	OutputDir string `mapstructure:"output_dir"`

	// Charts controls whether HTML charts are rendered.
	Charts bool `mapstructure:"charts"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Generate: GenerateConfig{
			Records:  1000,
			NullRate: 0.05,
			Output:   "sales_data.csv",
		},
		Pipeline: PipelineConfig{
			Input: "sales_data.csv",
		},
		Report: ReportConfig{
			OutputDir: "reports",
			Charts:    true,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./salespipe.yaml
// 3. ~/.config/salespipe/salespipe.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("salespipe")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "salespipe"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// ValidateGenerate checks configuration required for the generate command.
func (c *Config) ValidateGenerate() error {
	if c.Generate.Records < 1 {
		return fmt.Errorf("records must be at least 1")
	}
	if c.Generate.NullRate < 0 || c.Generate.NullRate >= 1 {
		return fmt.Errorf("null_rate must be in [0, 1)")
	}
	if c.Generate.Output == "" {
		return fmt.Errorf("output file is required")
	}
	return nil
}

// ValidateRun checks configuration required for the run command.
func (c *Config) ValidateRun() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	if c.Pipeline.Input == "" {
		return fmt.Errorf("input file is required")
	}
	return nil
}

// ValidateReport checks configuration required for the report command.
func (c *Config) ValidateReport() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	if c.Report.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	return nil
}
