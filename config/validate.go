package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	switch c.Policy {
	case PolicySimple, PolicyPreload, PolicyLRU:
	default:
		return fmt.Errorf("policy must be one of %q, %q or %q, got %q", PolicySimple, PolicyPreload, PolicyLRU, c.Policy)
	}
	if err := c.PolicyConfig().Validate(); err != nil {
		return fmt.Errorf("paging: %w", err)
	}
	if c.Paging.PageSize <= 0 {
		return errors.New("paging.page_size must be positive")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not recognized", c.Logging.Level)
	}
	return nil
}
