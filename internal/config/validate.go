package config

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.PasswordHashCost < bcrypt.MinCost || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_hash_cost must be in [%d, %d] (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.PasswordHashCost)
	}
	if c.Auth.MinPasswordLen < 1 {
		return fmt.Errorf("auth.min_password_len must be >= 1 (got %d)", c.Auth.MinPasswordLen)
	}

	if err := c.Lookup.validate(); err != nil {
		return fmt.Errorf("lookup: %w", err)
	}

	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be > 0 (got %d)", c.LLM.MaxTokens)
	}

	if c.RateLimit.Enabled && (c.RateLimit.AuthPerMinute <= 0 || c.RateLimit.VerifyPerMinute <= 0) {
		return fmt.Errorf("rate_limit: per-minute limits must be > 0")
	}

	if c.Telemetry.SentrySampleRate < 0 || c.Telemetry.SentrySampleRate > 1 {
		return fmt.Errorf("telemetry.sentry_sample_rate must be in [0, 1] (got %v)", c.Telemetry.SentrySampleRate)
	}

	return nil
}

func (l *LookupConfig) validate() error {
	for name, raw := range map[string]string{
		"openfda_base_url":  l.OpenFDABaseURL,
		"dailymed_base_url": l.DailyMedBaseURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL (got %q)", name, raw)
		}
	}
	l.OpenFDABaseURL = strings.TrimRight(l.OpenFDABaseURL, "/")
	l.DailyMedBaseURL = strings.TrimRight(l.DailyMedBaseURL, "/")

	if l.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", l.Timeout)
	}
	if l.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must be >= 0 (got %v)", l.CacheTTL)
	}
	return nil
}
