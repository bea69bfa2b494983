package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Catalog source modes.
const (
	CatalogSourceFile     = "file"
	CatalogSourceHTTP     = "http"
	CatalogSourcePostgres = "postgres"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Catalog   CatalogConfig
	Selection SelectionConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	Export    ExportConfig
}

// CatalogConfig describes where the raw course records come from. The
// catalog is fetched once at startup; a failed load leaves it empty.
type CatalogConfig struct {
	Source         string
	FilePath       string
	URL            string
	FetchTimeout   time.Duration
	PriorityFields []string
}

// SelectionConfig tunes the selection store and its snapshot persistence.
type SelectionConfig struct {
	SnapshotTTL time.Duration
	KeyPrefix   string
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

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ExportConfig covers the calendar and document export collaborators.
type ExportConfig struct {
	CalendarName string
	PDFTitle     string
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
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Catalog = CatalogConfig{
		Source:         v.GetString("CATALOG_SOURCE"),
		FilePath:       v.GetString("CATALOG_FILE_PATH"),
		URL:            v.GetString("CATALOG_URL"),
		FetchTimeout:   parseDuration(v.GetString("CATALOG_FETCH_TIMEOUT"), 30*time.Second),
		PriorityFields: splitAndTrim(v.GetString("CATALOG_PRIORITY_FIELDS")),
	}

	cfg.Selection = SelectionConfig{
		SnapshotTTL: parseDuration(v.GetString("SELECTION_SNAPSHOT_TTL"), 7*24*time.Hour),
		KeyPrefix:   v.GetString("SELECTION_KEY_PREFIX"),
	}

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

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Export = ExportConfig{
		CalendarName: v.GetString("EXPORT_CALENDAR_NAME"),
		PDFTitle:     v.GetString("EXPORT_PDF_TITLE"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("CATALOG_SOURCE", CatalogSourceFile)
	v.SetDefault("CATALOG_FILE_PATH", "./courses.json")
	v.SetDefault("CATALOG_URL", "")
	v.SetDefault("CATALOG_FETCH_TIMEOUT", "30s")
	v.SetDefault("CATALOG_PRIORITY_FIELDS", "")

	v.SetDefault("SELECTION_SNAPSHOT_TTL", "168h")
	v.SetDefault("SELECTION_KEY_PREFIX", "planner:selection")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "course_planner")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("EXPORT_CALENDAR_NAME", "Course Planner")
	v.SetDefault("EXPORT_PDF_TITLE", "Weekly Schedule")
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
