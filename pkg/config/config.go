package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Store     StoreConfig
	Drafts    DraftsConfig
	Dashboard DashboardConfig
	Capture   CaptureConfig
	Printable PrintableConfig
	Exports   ExportsConfig
	Staff     StaffConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// StoreConfig selects the durable backend for the request collection.
type StoreConfig struct {
	Driver     string
	Key        string
	Dir        string
	SQLitePath string
}

// DraftsConfig controls how long unsubmitted intake forms survive.
type DraftsConfig struct {
	TTL       time.Duration
	SweepCron string
}

type DashboardConfig struct {
	ClearDelay time.Duration
	SessionTTL time.Duration
	SweepCron  string
}

// CaptureConfig bounds uploaded meter photos and paces the scanner loop.
type CaptureConfig struct {
	PhotoMaxWidth  int
	PhotoMaxHeight int
	ScanInterval   time.Duration
	ScanTimeout    time.Duration
}

// PrintableConfig carries the fixed text printed on the request form.
type PrintableConfig struct {
	SchoolName string
	FormCode   string
}

// ExportsConfig configures published CSV/PDF downloads.
type ExportsConfig struct {
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
	CleanupCron     string
}

// StaffConfig gates the staff endpoints behind a shared passcode.
type StaffConfig struct {
	AuthEnabled  bool
	PasscodeHash string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 12*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Store = StoreConfig{
		Driver:     strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		Key:        v.GetString("STORE_KEY"),
		Dir:        v.GetString("STORE_DIR"),
		SQLitePath: v.GetString("SQLITE_PATH"),
	}

	cfg.Drafts = DraftsConfig{
		TTL:       parseDuration(v.GetString("DRAFTS_TTL"), 24*time.Hour),
		SweepCron: v.GetString("DRAFTS_SWEEP_CRON"),
	}

	cfg.Dashboard = DashboardConfig{
		ClearDelay: parseDuration(v.GetString("DASHBOARD_CLEAR_DELAY"), 2*time.Second),
		SessionTTL: parseDuration(v.GetString("DASHBOARD_SESSION_TTL"), 12*time.Hour),
		SweepCron:  v.GetString("DASHBOARD_SWEEP_CRON"),
	}

	cfg.Capture = CaptureConfig{
		PhotoMaxWidth:  v.GetInt("PHOTO_MAX_WIDTH"),
		PhotoMaxHeight: v.GetInt("PHOTO_MAX_HEIGHT"),
		ScanInterval:   parseDuration(v.GetString("SCAN_INTERVAL"), 16*time.Millisecond),
		ScanTimeout:    parseDuration(v.GetString("SCAN_TIMEOUT"), 3*time.Second),
	}

	cfg.Printable = PrintableConfig{
		SchoolName: v.GetString("SCHOOL_NAME"),
		FormCode:   v.GetString("FORM_CODE"),
	}

	cfg.Exports = ExportsConfig{
		StorageDir:      v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret: v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), 24*time.Hour),
		CleanupCron:     v.GetString("EXPORTS_CLEANUP_CRON"),
	}

	cfg.Staff = StaffConfig{
		AuthEnabled:  v.GetBool("STAFF_AUTH_ENABLED"),
		PasscodeHash: v.GetString("STAFF_PASSCODE_HASH"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "print_requests")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "12h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("STORE_DRIVER", "file")
	v.SetDefault("STORE_KEY", "printRequests")
	v.SetDefault("STORE_DIR", "./data")
	v.SetDefault("SQLITE_PATH", "./data/print_requests.db")

	v.SetDefault("DRAFTS_TTL", "24h")
	v.SetDefault("DRAFTS_SWEEP_CRON", "@every 10m")
	v.SetDefault("DASHBOARD_CLEAR_DELAY", "2s")
	v.SetDefault("DASHBOARD_SESSION_TTL", "12h")
	v.SetDefault("DASHBOARD_SWEEP_CRON", "@every 30m")

	v.SetDefault("PHOTO_MAX_WIDTH", 1920)
	v.SetDefault("PHOTO_MAX_HEIGHT", 1920)
	v.SetDefault("SCAN_INTERVAL", "16ms")
	v.SetDefault("SCAN_TIMEOUT", "3s")

	v.SetDefault("SCHOOL_NAME", "St. Paul's Convent School")
	v.SetDefault("FORM_CODE", "Form T1")

	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "24h")
	v.SetDefault("EXPORTS_CLEANUP_CRON", "@hourly")

	v.SetDefault("STAFF_AUTH_ENABLED", false)
	v.SetDefault("STAFF_PASSCODE_HASH", "")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
