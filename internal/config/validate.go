package config

import (
	"fmt"
	"strings"

	"github.com/khmer-numerals/pkg/khmer"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must be >= 0 (got %d)", c.Batch.Workers)
	}
	if c.Batch.MaxLineBytes <= 0 {
		return fmt.Errorf("batch.max_line_bytes must be > 0 (got %d)", c.Batch.MaxLineBytes)
	}

	if _, err := c.Converter.System(); err != nil {
		return fmt.Errorf("converter.output_system: %w", err)
	}
	if c.Converter.MaxRequestBytes <= 0 {
		return fmt.Errorf("converter.max_request_bytes must be > 0 (got %d)", c.Converter.MaxRequestBytes)
	}

	return nil
}

// System parses OutputSystem.
func (c ConverterConfig) System() (khmer.NumeralSystem, error) {
	return khmer.ParseNumeralSystem(c.OutputSystem)
}
