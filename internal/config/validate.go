package config

import (
	"fmt"
	"regexp"
	"strings"
)

var prefixPattern = regexp.MustCompile(`^[A-Z]{2,8}$`)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Redis.validate(); err != nil {
		return fmt.Errorf("redis: %w", err)
	}

	if err := c.Reference.validate(); err != nil {
		return fmt.Errorf("reference: %w", err)
	}

	if c.Reconcile.Workers < 1 {
		return fmt.Errorf("reconcile.workers must be >= 1 (got %d)", c.Reconcile.Workers)
	}
	if c.Reconcile.Timeout <= 0 {
		return fmt.Errorf("reconcile.timeout must be > 0 (got %v)", c.Reconcile.Timeout)
	}
	if c.Reconcile.Interval < 0 {
		return fmt.Errorf("reconcile.interval must not be negative (got %v)", c.Reconcile.Interval)
	}

	return nil
}

func (r *RedisConfig) validate() error {
	if !r.Enabled {
		return nil
	}
	if r.Addr == "" {
		return fmt.Errorf("addr is required when enabled")
	}
	if r.Stream == "" {
		return fmt.Errorf("stream is required when enabled")
	}
	if r.PublishTimeout <= 0 {
		return fmt.Errorf("publish_timeout must be > 0 (got %v)", r.PublishTimeout)
	}
	return nil
}

func (r *ReferenceConfig) validate() error {
	if !prefixPattern.MatchString(r.ExpenditurePrefix) {
		return fmt.Errorf("expenditure_prefix %q must be 2-8 uppercase letters", r.ExpenditurePrefix)
	}
	if !prefixPattern.MatchString(r.RetirementPrefix) {
		return fmt.Errorf("retirement_prefix %q must be 2-8 uppercase letters", r.RetirementPrefix)
	}
	if r.ExpenditurePrefix == r.RetirementPrefix {
		return fmt.Errorf("expenditure_prefix and retirement_prefix must differ")
	}
	return nil
}
