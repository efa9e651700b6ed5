package config

import (
	"os"
	"strings"
)

const (
	DefaultInputPath  = "data/isolates.csv"
	DefaultOutputPath = "data/report.csv"
)

type Config struct {
	// Paths
	InputPath  string
	OutputPath string
	RulesPath  string

	// Table format; empty means pick by file extension.
	Delimiter string

	LogLevel string
}

func Load() *Config {
	return &Config{
		InputPath:  getEnv("VETPATHOGEN_INPUT", DefaultInputPath),
		OutputPath: getEnv("VETPATHOGEN_OUTPUT", DefaultOutputPath),
		RulesPath:  getEnv("VETPATHOGEN_RULES", ""),
		Delimiter:  getEnv("VETPATHOGEN_DELIMITER", ""),
		LogLevel:   strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
