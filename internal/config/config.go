package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Auth         AuthConfig         `yaml:"auth"`
	Log          LogConfig          `yaml:"log"`
	CORS         CORSConfig         `yaml:"cors"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`
	Lookup       LookupConfig       `yaml:"lookup"`
	LLM          LLMConfig          `yaml:"llm"`
	Verification VerificationConfig `yaml:"verification"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings. TrustProxy takes the client
// address from X-Forwarded-For.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	TrustProxy      bool          `yaml:"trust_proxy"      env:"SERVER_TRUST_PROXY"      env-default:"false"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"DATABASE_MIGRATE_ON_START"   env-default:"true"`
}

// AuthConfig holds session token and password settings.
type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"         env:"AUTH_JWT_SECRET"         env-required:"true"`
	JWTIssuer        string        `yaml:"jwt_issuer"         env:"AUTH_JWT_ISSUER"         env-default:"drugverify"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl"   env:"AUTH_ACCESS_TOKEN_TTL"   env-default:"15m"`
	RefreshTokenTTL  time.Duration `yaml:"refresh_token_ttl"  env:"AUTH_REFRESH_TOKEN_TTL"  env-default:"720h"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST" env-default:"12"`
	MinPasswordLen   int           `yaml:"min_password_len"   env:"AUTH_MIN_PASSWORD_LEN"   env-default:"8"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"           env:"RATE_LIMIT_ENABLED"           env-default:"true"`
	AuthPerMinute   int           `yaml:"auth_per_minute"   env:"RATE_LIMIT_AUTH_PER_MINUTE"   env-default:"10"`
	VerifyPerMinute int           `yaml:"verify_per_minute" env:"RATE_LIMIT_VERIFY_PER_MINUTE" env-default:"30"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"  env:"RATE_LIMIT_CLEANUP_INTERVAL"  env-default:"5m"`
}

// LookupConfig holds settings for the public drug data sources.
type LookupConfig struct {
	OpenFDABaseURL  string        `yaml:"openfda_base_url"  env:"LOOKUP_OPENFDA_BASE_URL"  env-default:"https://api.fda.gov"`
	OpenFDAAPIKey   string        `yaml:"openfda_api_key"   env:"LOOKUP_OPENFDA_API_KEY"`
	DailyMedBaseURL string        `yaml:"dailymed_base_url" env:"LOOKUP_DAILYMED_BASE_URL" env-default:"https://dailymed.nlm.nih.gov/dailymed/services/v2"`
	DailyMedEnabled bool          `yaml:"dailymed_enabled"  env:"LOOKUP_DAILYMED_ENABLED"  env-default:"true"`
	RecallsEnabled  bool          `yaml:"recalls_enabled"   env:"LOOKUP_RECALLS_ENABLED"   env-default:"true"`
	Timeout         time.Duration `yaml:"timeout"           env:"LOOKUP_TIMEOUT"           env-default:"10s"`
	CacheTTL        time.Duration `yaml:"cache_ttl"         env:"LOOKUP_CACHE_TTL"         env-default:"1h"`
}

// LLMConfig holds the hosted model settings. The primary model receives
// lookup evidence; the secondary answers from its own knowledge.
type LLMConfig struct {
	AnthropicAPIKey  string        `yaml:"anthropic_api_key"  env:"LLM_ANTHROPIC_API_KEY"`
	AnthropicModel   string        `yaml:"anthropic_model"    env:"LLM_ANTHROPIC_MODEL"    env-default:"claude-sonnet-4-20250514"`
	AnthropicBaseURL string        `yaml:"anthropic_base_url" env:"LLM_ANTHROPIC_BASE_URL"`
	OpenAIAPIKey     string        `yaml:"openai_api_key"     env:"LLM_OPENAI_API_KEY"`
	OpenAIModel      string        `yaml:"openai_model"       env:"LLM_OPENAI_MODEL"       env-default:"gpt-4o-mini"`
	OpenAIBaseURL    string        `yaml:"openai_base_url"    env:"LLM_OPENAI_BASE_URL"`
	MaxTokens        int64         `yaml:"max_tokens"         env:"LLM_MAX_TOKENS"         env-default:"2048"`
	Timeout          time.Duration `yaml:"timeout"            env:"LLM_TIMEOUT"            env-default:"45s"`
}

// HasAnthropic reports whether the primary model is configured.
func (c LLMConfig) HasAnthropic() bool { return c.AnthropicAPIKey != "" }

// HasOpenAI reports whether the secondary model is configured.
func (c LLMConfig) HasOpenAI() bool { return c.OpenAIAPIKey != "" }

// VerificationConfig holds verification policy.
type VerificationConfig struct {
	// AllowListRaw is a comma-separated list of product codes or exact drug
	// names that are treated as genuine unless a recall is found.
	AllowListRaw string `yaml:"allow_list" env:"VERIFY_ALLOW_LIST"`
}

// AllowList returns the configured allow-list entries, trimmed, empties dropped.
func (c VerificationConfig) AllowList() []string {
	var out []string
	for _, s := range strings.Split(c.AllowListRaw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// TelemetryConfig holds metrics and error reporting settings.
type TelemetryConfig struct {
	MetricsEnabled    bool    `yaml:"metrics_enabled"     env:"TELEMETRY_METRICS_ENABLED"     env-default:"true"`
	SentryDSN         string  `yaml:"sentry_dsn"          env:"TELEMETRY_SENTRY_DSN"`
	SentryEnvironment string  `yaml:"sentry_environment"  env:"TELEMETRY_SENTRY_ENVIRONMENT"  env-default:"production"`
	SentrySampleRate  float64 `yaml:"sentry_sample_rate"  env:"TELEMETRY_SENTRY_SAMPLE_RATE"  env-default:"1.0"`
}
