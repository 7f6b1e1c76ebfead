package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	CORS      CORSConfig
	Ledger    LedgerConfig
	DB        DBConfig
	S3        S3Config
	IRN       IRNConfig
	Reconcile ReconcileConfig
	Assistant AssistantConfig
	Verifier  VerifierConfig
	News      NewsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LedgerConfig selects where the sales ledger is persisted.
// Driver is one of "sqlite", "postgres" or "memory".
type LedgerConfig struct {
	Driver     string `mapstructure:"driver"`
	ID         string `mapstructure:"id"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds object storage settings for archived invoice PDFs.
// Archiving is disabled when Bucket is empty.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// Enabled reports whether invoice archiving is configured.
func (s *S3Config) Enabled() bool {
	return s.Bucket != ""
}

// IRNConfig configures the mock IRN issuer.
type IRNConfig struct {
	SellerGSTIN string        `mapstructure:"seller_gstin"`
	Latency     time.Duration `mapstructure:"latency"`
	FailureRate float64       `mapstructure:"failure_rate"`
	QRBaseURL   string        `mapstructure:"qr_base_url"`
}

// ReconcileConfig configures the mock GST return matcher.
type ReconcileConfig struct {
	Latency    time.Duration `mapstructure:"latency"`
	MatchRatio float64       `mapstructure:"match_ratio"`
}

// AssistantConfig configures the upstream tax-answering model.
// Provider is "rules" (built-in responder only) or "granite".
type AssistantConfig struct {
	Provider    string `mapstructure:"provider"`
	URL         string `mapstructure:"url"`
	APIKey      string `mapstructure:"api_key"`
	ModelID     string `mapstructure:"model_id"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// VerifierConfig configures invoice verification.
// Provider is "mock" or "mastergst".
type VerifierConfig struct {
	Provider    string `mapstructure:"provider"`
	URL         string `mapstructure:"url"`
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// NewsConfig configures the news feed. An empty APIKey serves the fallback list.
type NewsConfig struct {
	URL         string `mapstructure:"url"`
	APIKey      string `mapstructure:"api_key"`
	Query       string `mapstructure:"query"`
	Limit       int    `mapstructure:"limit"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Load reads configuration from environment variables with the EGSTIFY_ prefix.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("EGSTIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":3001")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (local frontends)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Ledger defaults
	v.SetDefault("ledger.driver", "sqlite")
	v.SetDefault("ledger.id", "egstify_sales_data")
	v.SetDefault("ledger.sqlite_path", "egstify.db")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "egstify")
	v.SetDefault("db.password", "egstify_secret")
	v.SetDefault("db.name", "egstify_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// IRN defaults
	v.SetDefault("irn.seller_gstin", "27AAPFU0939F1ZV")
	v.SetDefault("irn.latency", "1500ms")
	v.SetDefault("irn.failure_rate", 0.0)
	v.SetDefault("irn.qr_base_url", "https://api.qrserver.com/v1/create-qr-code/")

	// Reconcile defaults
	v.SetDefault("reconcile.latency", "1s")
	v.SetDefault("reconcile.match_ratio", 0.7)

	// Assistant defaults
	v.SetDefault("assistant.provider", "rules")
	v.SetDefault("assistant.url", "")
	v.SetDefault("assistant.model_id", "granite-base")
	v.SetDefault("assistant.timeout_secs", 60)

	// Verifier defaults
	v.SetDefault("verifier.provider", "mock")
	v.SetDefault("verifier.url", "https://api.mastergst.com/v1/invoice/verify")
	v.SetDefault("verifier.timeout_secs", 30)

	// News defaults
	v.SetDefault("news.url", "https://newsapi.org/v2/everything")
	v.SetDefault("news.api_key", "")
	v.SetDefault("news.query", "GST India tax")
	v.SetDefault("news.limit", 10)
	v.SetDefault("news.timeout_secs", 10)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "EGSTIFY_SERVER_PORT",
		"server.read_timeout":    "EGSTIFY_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "EGSTIFY_SERVER_WRITE_TIMEOUT",
		"server.environment":     "EGSTIFY_SERVER_ENVIRONMENT",
		"log.level":              "EGSTIFY_LOG_LEVEL",
		"log.format":             "EGSTIFY_LOG_FORMAT",
		"cors.allowed_origins":   "EGSTIFY_CORS_ALLOWED_ORIGINS",
		"ledger.driver":          "EGSTIFY_LEDGER_DRIVER",
		"ledger.id":              "EGSTIFY_LEDGER_ID",
		"ledger.sqlite_path":     "EGSTIFY_LEDGER_SQLITE_PATH",
		"db.host":                "EGSTIFY_DB_HOST",
		"db.port":                "EGSTIFY_DB_PORT",
		"db.user":                "EGSTIFY_DB_USER",
		"db.password":            "EGSTIFY_DB_PASSWORD",
		"db.name":                "EGSTIFY_DB_NAME",
		"db.sslmode":             "EGSTIFY_DB_SSLMODE",
		"db.max_open":            "EGSTIFY_DB_MAX_OPEN",
		"db.max_idle":            "EGSTIFY_DB_MAX_IDLE",
		"s3.region":              "EGSTIFY_S3_REGION",
		"s3.bucket":              "EGSTIFY_S3_BUCKET",
		"s3.endpoint":            "EGSTIFY_S3_ENDPOINT",
		"s3.access_key":          "EGSTIFY_S3_ACCESS_KEY",
		"s3.secret_key":          "EGSTIFY_S3_SECRET_KEY",
		"s3.presign_expiry":      "EGSTIFY_S3_PRESIGN_EXPIRY",
		"irn.seller_gstin":       "EGSTIFY_IRN_SELLER_GSTIN",
		"irn.latency":            "EGSTIFY_IRN_LATENCY",
		"irn.failure_rate":       "EGSTIFY_IRN_FAILURE_RATE",
		"irn.qr_base_url":        "EGSTIFY_IRN_QR_BASE_URL",
		"reconcile.latency":      "EGSTIFY_RECONCILE_LATENCY",
		"reconcile.match_ratio":  "EGSTIFY_RECONCILE_MATCH_RATIO",
		"assistant.provider":     "EGSTIFY_ASSISTANT_PROVIDER",
		"assistant.url":          "EGSTIFY_ASSISTANT_URL",
		"assistant.api_key":      "EGSTIFY_ASSISTANT_API_KEY",
		"assistant.model_id":     "EGSTIFY_ASSISTANT_MODEL_ID",
		"assistant.timeout_secs": "EGSTIFY_ASSISTANT_TIMEOUT_SECS",
		"verifier.provider":      "EGSTIFY_VERIFIER_PROVIDER",
		"verifier.url":           "EGSTIFY_VERIFIER_URL",
		"verifier.api_key":       "EGSTIFY_VERIFIER_API_KEY",
		"verifier.timeout_secs":  "EGSTIFY_VERIFIER_TIMEOUT_SECS",
		"news.url":               "EGSTIFY_NEWS_URL",
		"news.api_key":           "EGSTIFY_NEWS_API_KEY",
		"news.query":             "EGSTIFY_NEWS_QUERY",
		"news.limit":             "EGSTIFY_NEWS_LIMIT",
		"news.timeout_secs":      "EGSTIFY_NEWS_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if EGSTIFY_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("EGSTIFY_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Ledger = LedgerConfig{
		Driver:     strings.ToLower(v.GetString("ledger.driver")),
		ID:         v.GetString("ledger.id"),
		SQLitePath: v.GetString("ledger.sqlite_path"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.IRN = IRNConfig{
		SellerGSTIN: v.GetString("irn.seller_gstin"),
		Latency:     v.GetDuration("irn.latency"),
		FailureRate: v.GetFloat64("irn.failure_rate"),
		QRBaseURL:   v.GetString("irn.qr_base_url"),
	}
	cfg.Reconcile = ReconcileConfig{
		Latency:    v.GetDuration("reconcile.latency"),
		MatchRatio: v.GetFloat64("reconcile.match_ratio"),
	}
	cfg.Assistant = AssistantConfig{
		Provider:    strings.ToLower(v.GetString("assistant.provider")),
		URL:         v.GetString("assistant.url"),
		APIKey:      v.GetString("assistant.api_key"),
		ModelID:     v.GetString("assistant.model_id"),
		TimeoutSecs: v.GetInt("assistant.timeout_secs"),
	}
	cfg.Verifier = VerifierConfig{
		Provider:    strings.ToLower(v.GetString("verifier.provider")),
		URL:         v.GetString("verifier.url"),
		APIKey:      v.GetString("verifier.api_key"),
		TimeoutSecs: v.GetInt("verifier.timeout_secs"),
	}
	cfg.News = NewsConfig{
		URL:         v.GetString("news.url"),
		APIKey:      v.GetString("news.api_key"),
		Query:       v.GetString("news.query"),
		Limit:       v.GetInt("news.limit"),
		TimeoutSecs: v.GetInt("news.timeout_secs"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Ledger.Driver {
	case "sqlite", "postgres", "memory":
	default:
		return fmt.Errorf("unsupported ledger driver %q (want sqlite, postgres or memory)", c.Ledger.Driver)
	}
	switch c.Assistant.Provider {
	case "rules":
	case "granite":
		if c.Assistant.URL == "" {
			return fmt.Errorf("assistant provider granite requires EGSTIFY_ASSISTANT_URL")
		}
	default:
		return fmt.Errorf("unsupported assistant provider %q (want rules or granite)", c.Assistant.Provider)
	}
	switch c.Verifier.Provider {
	case "mock", "mastergst":
	default:
		return fmt.Errorf("unsupported verifier provider %q (want mock or mastergst)", c.Verifier.Provider)
	}
	if c.IRN.FailureRate < 0 || c.IRN.FailureRate > 1 {
		return fmt.Errorf("irn failure_rate must be within [0, 1], got %v", c.IRN.FailureRate)
	}
	if c.Reconcile.MatchRatio < 0 || c.Reconcile.MatchRatio > 1 {
		return fmt.Errorf("reconcile match_ratio must be within [0, 1], got %v", c.Reconcile.MatchRatio)
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("cors allowed_origins must list at least one origin")
	}
	return nil
}
