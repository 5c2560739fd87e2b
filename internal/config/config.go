package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/blizon/ops-dashboard/internal/secrets"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App           AppConfig
	Auth          AuthConfig
	Search        SearchConfig
	Jobs          JobsConfig
	Notifications NotificationsConfig
	Secrets       SecretsConfig
	Logging       LoggingConfig
	Server        ServerConfig
	CORS          CORSConfig
	Security      SecurityConfig
	RateLimit     RateLimitConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
	// SeedData loads the sample clients, projects, team, interns and contracts at startup
	SeedData bool
}

// AuthConfig describes the single operator account and its session tokens
type AuthConfig struct {
	// SigningKey signs session tokens (from session-signing-key secret)
	SigningKey      string
	TokenTTLMinutes int
	AdminUsername   string
	// AdminPassword is loaded from the admin-password secret outside development
	AdminPassword             string
	AdminName                 string
	AdminRole                 string
	SessionIdleTimeoutMinutes int
}

type SearchConfig struct {
	DebounceMs int
}

// JobsConfig holds cron expressions for background jobs. An empty
// expression disables the job.
type JobsConfig struct {
	SessionSweepCron      string
	MilestoneReminderCron string
	// ReminderWindowDays is how far ahead the reminder job looks for due milestones
	ReminderWindowDays int
}

type NotificationsConfig struct {
	Limit int
}

type SecretsConfig struct {
	// Source determines where secrets are loaded from: "environment", "vault", or "auto"
	// "auto" uses environment in development, vault in staging/production
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
	// AllowedOrigins is a list of allowed origins for CORS requests
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	// MaxAge is the max age (in seconds) for preflight cache
	MaxAge int
}

// SecurityConfig holds security header configuration
type SecurityConfig struct {
	EnableHSTS            bool
	HSTSMaxAge            int
	HSTSIncludeSubdomains bool
	HSTSPreload           bool
	ContentSecurityPolicy string
	// FrameOptions sets the X-Frame-Options header (DENY, SAMEORIGIN, or empty to disable)
	FrameOptions       string
	ContentTypeNosniff bool
	XSSProtection      string
	ReferrerPolicy     string
	PermissionsPolicy  string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled bool
	// RequestsPerMinute is the default rate limit for unauthenticated requests (per IP)
	RequestsPerMinute int
	// RequestsPerMinuteAuth is the rate limit for authenticated requests (per session)
	RequestsPerMinuteAuth int
	BurstSize             int
	WhitelistIPs          []string
	// WhitelistPaths is a list of paths that bypass rate limiting (e.g., /health)
	WhitelistPaths []string
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

// TokenTTL returns the session token lifetime
func (a *AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// SessionIdleTimeout returns how long a session may stay unused before it is swept
func (a *AuthConfig) SessionIdleTimeout() time.Duration {
	return time.Duration(a.SessionIdleTimeoutMinutes) * time.Minute
}

// DebounceInterval returns the live search quiet period
func (s *SearchConfig) DebounceInterval() time.Duration {
	return time.Duration(s.DebounceMs) * time.Millisecond
}

// ReminderWindow returns the look-ahead of the milestone reminder job
func (j *JobsConfig) ReminderWindow() time.Duration {
	return time.Duration(j.ReminderWindowDays) * 24 * time.Hour
}

// IsDevelopment reports whether the app runs in a local development environment
func (a *AppConfig) IsDevelopment() bool {
	switch a.Environment {
	case "development", "local", "":
		return true
	}
	return false
}

// Load loads configuration from file and environment variables.
// It doesn't fetch secrets from vault; use LoadWithSecrets for that.
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

	if key := v.GetString("SESSION_SIGNING_KEY"); key != "" {
		cfg.Auth.SigningKey = key
	}
	if password := v.GetString("ADMIN_PASSWORD"); password != "" {
		cfg.Auth.AdminPassword = password
	}
	if cfg.Secrets.KeyVaultName == "" {
		cfg.Secrets.KeyVaultName = v.GetString("AZURE_KEY_VAULT_NAME")
	}

	return &cfg, nil
}

// Validate checks settings that have no safe default
func (c *Config) Validate() error {
	if c.Auth.SigningKey == "" {
		return fmt.Errorf("auth.signingKey is required")
	}
	if c.Auth.AdminUsername == "" || c.Auth.AdminPassword == "" {
		return fmt.Errorf("auth.adminUsername and auth.adminPassword are required")
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return fmt.Errorf("auth.tokenTTLMinutes must be positive, got %d", c.Auth.TokenTTLMinutes)
	}
	if c.Search.DebounceMs < 0 {
		return fmt.Errorf("search.debounceMs must not be negative, got %d", c.Search.DebounceMs)
	}
	return nil
}

// LoadWithSecrets loads configuration and resolves secrets from the configured source.
//
// Key Vault is used when BOTH conditions are met:
// 1. USE_AZURE_KEY_VAULT environment variable is set to "true"
// 2. Environment is "staging" or "production"
//
// Outside development the built-in signing key and admin password are never
// accepted; they must come from the vault or an explicit environment override.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	useKeyVault := strings.ToLower(os.Getenv("USE_AZURE_KEY_VAULT")) == "true"
	isValidEnv := cfg.App.Environment == "staging" || cfg.App.Environment == "production"

	if !useKeyVault || !isValidEnv {
		if useKeyVault {
			logger.Warn("USE_AZURE_KEY_VAULT is enabled but environment is not staging or production, using environment variables for secrets",
				zap.String("environment", cfg.App.Environment),
			)
		} else {
			logger.Info("USE_AZURE_KEY_VAULT not enabled, using environment variables for secrets",
				zap.String("environment", cfg.App.Environment),
			)
		}
		if err := rejectDevelopmentSecrets(cfg); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if cfg.Secrets.KeyVaultName == "" {
		return nil, fmt.Errorf("AZURE_KEY_VAULT_NAME is required when USE_AZURE_KEY_VAULT=true")
	}

	logger.Info("Azure Key Vault enabled for secrets",
		zap.String("environment", cfg.App.Environment),
		zap.String("key_vault_name", cfg.Secrets.KeyVaultName),
	)

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:       secrets.SourceVault,
		VaultName:    cfg.Secrets.KeyVaultName,
		Environment:  cfg.App.Environment,
		CacheEnabled: cfg.Secrets.CacheEnabled,
		CacheTTL:     time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider (USE_AZURE_KEY_VAULT=true requires valid vault): %w", err)
	}

	if err := ApplySecrets(ctx, cfg, provider); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info("Secrets loaded from vault successfully")
	return cfg, nil
}

// SecretSource is the part of the secrets provider the config needs
type SecretSource interface {
	GetSecretOrEnv(ctx context.Context, secretName, envName string) (string, error)
}

// ApplySecrets overwrites the signing key and admin password with values from src
func ApplySecrets(ctx context.Context, cfg *Config, src SecretSource) error {
	key, err := src.GetSecretOrEnv(ctx, "session-signing-key", "SESSION_SIGNING_KEY")
	if err != nil {
		return fmt.Errorf("failed to resolve session signing key: %w", err)
	}
	cfg.Auth.SigningKey = key

	password, err := src.GetSecretOrEnv(ctx, "admin-password", "ADMIN_PASSWORD")
	if err != nil {
		return fmt.Errorf("failed to resolve admin password: %w", err)
	}
	cfg.Auth.AdminPassword = password
	return nil
}

func rejectDevelopmentSecrets(cfg *Config) error {
	if cfg.App.IsDevelopment() {
		return nil
	}
	if cfg.Auth.SigningKey == developmentSigningKey {
		return fmt.Errorf("SESSION_SIGNING_KEY must be set in %s", cfg.App.Environment)
	}
	if cfg.Auth.AdminPassword == developmentAdminPassword {
		return fmt.Errorf("ADMIN_PASSWORD must be set in %s", cfg.App.Environment)
	}
	return nil
}

const (
	developmentSigningKey    = "ops-dashboard-development-signing-key"
	developmentAdminPassword = "admin"
)

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Ops Dashboard API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.seedData", true)

	// Auth defaults
	v.SetDefault("auth.signingKey", developmentSigningKey)
	v.SetDefault("auth.tokenTTLMinutes", 480)
	v.SetDefault("auth.adminUsername", "admin")
	v.SetDefault("auth.adminPassword", developmentAdminPassword)
	v.SetDefault("auth.adminName", "Admin User")
	v.SetDefault("auth.adminRole", "Administrator")
	v.SetDefault("auth.sessionIdleTimeoutMinutes", 60)

	v.SetDefault("search.debounceMs", 300)

	// Jobs defaults
	v.SetDefault("jobs.sessionSweepCron", "*/5 * * * *")
	v.SetDefault("jobs.milestoneReminderCron", "0 8 * * *")
	v.SetDefault("jobs.reminderWindowDays", 7)

	v.SetDefault("notifications.limit", 50)

	// Secrets defaults
	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheEnabled", true)
	v.SetDefault("secrets.cacheTTL", 300)

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
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Location", "X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	// Security header defaults - secure by default
	v.SetDefault("security.enableHSTS", false)
	v.SetDefault("security.hstsMaxAge", 31536000)
	v.SetDefault("security.hstsIncludeSubdomains", true)
	v.SetDefault("security.hstsPreload", false)
	v.SetDefault("security.contentSecurityPolicy", "default-src 'self'")
	v.SetDefault("security.frameOptions", "DENY")
	v.SetDefault("security.contentTypeNosniff", true)
	v.SetDefault("security.xssProtection", "1; mode=block")
	v.SetDefault("security.referrerPolicy", "strict-origin-when-cross-origin")
	v.SetDefault("security.permissionsPolicy", "geolocation=(), microphone=(), camera=()")

	// Rate limiting defaults
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 60)
	v.SetDefault("rateLimit.requestsPerMinuteAuth", 120)
	v.SetDefault("rateLimit.burstSize", 10)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/metrics"})
}
