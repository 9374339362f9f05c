package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashimpk07/FMPortal-sub002/internal/secrets"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Gateway   GatewayConfig
	Cache     CacheConfig
	Dashboard DashboardConfig
	Auth      AuthConfig
	Secrets   SecretsConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	Security  SecurityConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

// GatewayConfig holds connectivity settings for the FM Portal gateway,
// the upstream API the dashboard payload and centre list are fetched from.
type GatewayConfig struct {
	// BaseURL is the gateway root, e.g. https://gateway.fmportal.app/api
	BaseURL string
	// APIKey authenticates requests to the gateway (from GATEWAY-API-KEY
	// secret in staging/production)
	APIKey string
	// RequestTimeout is the per-request timeout (seconds)
	RequestTimeout int
	// MaxRetries bounds connect-level retry attempts
	MaxRetries int
}

// CacheConfig controls the centre-list session cache.
// Mode "memory" keeps entries in-process; "redis" shares them.
type CacheConfig struct {
	Mode     string
	Address  string
	Password string
	DB       int
	// TTL is how long a cached centre list stays fresh (seconds)
	TTL int
}

// DashboardConfig holds the dashboard behaviour knobs.
type DashboardConfig struct {
	// MaxPastMonths bounds how far back the date range may reach
	MaxPastMonths int
	// DisableMinDateRestriction lifts the MaxPastMonths bound
	DisableMinDateRestriction bool
	// ResetToLastSevenDaysOnClear controls clear semantics of the range
	ResetToLastSevenDaysOnClear bool
	// RefreshCron schedules the background refresh job; empty disables it
	RefreshCron string
}

// AuthConfig holds bearer-token validation settings.
type AuthConfig struct {
	// Enabled toggles JWT validation on the API surface
	Enabled bool
	// SigningSecret verifies HS256 bearer tokens (from JWT-SIGNING-SECRET
	// secret in staging/production)
	SigningSecret string
	// Issuer is the expected token issuer, if non-empty
	Issuer string
}

type SecretsConfig struct {
	// Source determines where secrets are loaded from: "environment",
	// "vault", or "auto" (environment in development, vault otherwise)
	Source       string
	KeyVaultName string
	CacheEnabled bool
	CacheTTL     int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int
	EnableSwagger  bool
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	ContentSecurityPolicy string
	FrameOptions          string
	ContentTypeNosniff    bool
	ReferrerPolicy        string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled               bool
	RequestsPerMinute     int
	RequestsPerMinuteAuth int
	WhitelistIPs          []string
	WhitelistPaths        []string
}

// RequestTimeoutDuration returns the gateway request timeout as duration
func (g *GatewayConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(g.RequestTimeout) * time.Second
}

// TTLDuration returns the cache TTL as duration
func (c *CacheConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

// ReadTimeoutDuration returns read timeout as duration
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

// WriteTimeoutDuration returns write timeout as duration
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

// RequestTimeoutDuration returns request timeout as duration
func (s *ServerConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(s.RequestTimeout) * time.Second
}

// Load loads configuration from file and environment variables.
// Secrets are not resolved here; use LoadWithSecrets for that.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Development convenience: plain env vars for local runs without vault
	if cfg.Gateway.APIKey == "" {
		cfg.Gateway.APIKey = v.GetString("GATEWAY_API_KEY")
	}
	if cfg.Auth.SigningSecret == "" {
		cfg.Auth.SigningSecret = v.GetString("JWT_SIGNING_SECRET")
	}
	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	return &cfg, nil
}

// LoadWithSecrets loads configuration and resolves secrets from the
// configured source. In development (or when secrets.source is
// "environment") secrets come from env vars; in staging/production they
// come from Azure Key Vault.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.Source(cfg.Secrets.Source),
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider: %w", err)
	}

	if apiKey, err := provider.GetSecretOrEnv(ctx, "GATEWAY-API-KEY", "GATEWAY_API_KEY"); err == nil && apiKey != "" {
		cfg.Gateway.APIKey = apiKey
	}
	if signingSecret, err := provider.GetSecretOrEnv(ctx, "JWT-SIGNING-SECRET", "JWT_SIGNING_SECRET"); err == nil && signingSecret != "" {
		cfg.Auth.SigningSecret = signingSecret
	}
	if cachePassword, err := provider.GetSecretOrEnv(ctx, "CACHE-PASSWORD", "CACHE_PASSWORD"); err == nil && cachePassword != "" {
		cfg.Cache.Password = cachePassword
	}

	if cfg.Auth.Enabled && cfg.Auth.SigningSecret == "" {
		return nil, fmt.Errorf("auth is enabled but no signing secret is configured")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "FM Portal Dashboard API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	// Gateway defaults
	v.SetDefault("gateway.baseURL", "http://localhost:9000/api")
	v.SetDefault("gateway.requestTimeout", 30)
	v.SetDefault("gateway.maxRetries", 3)

	// Cache defaults
	v.SetDefault("cache.mode", "memory")
	v.SetDefault("cache.address", "localhost:6379")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", 900) // 15 minutes

	// Dashboard defaults
	v.SetDefault("dashboard.maxPastMonths", 6)
	v.SetDefault("dashboard.disableMinDateRestriction", false)
	v.SetDefault("dashboard.resetToLastSevenDaysOnClear", true)
	v.SetDefault("dashboard.refreshCron", "") // disabled unless configured

	// Auth defaults
	v.SetDefault("auth.enabled", false)

	// Secrets defaults
	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300) // 5 minutes

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Server defaults
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.requestTimeout", 60)
	v.SetDefault("server.enableSwagger", true)

	// CORS defaults - restrictive by default
	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	// Security header defaults
	v.SetDefault("security.enableHSTS", false)
	v.SetDefault("security.hstsMaxAge", 31536000) // 1 year
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")

	// Rate limiting defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 60)
	v.SetDefault("rateLimit.requestsPerMinuteAuth", 120)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/gateway"})
}
