package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Upload   UploadConfig
	Analyzer AnalyzerConfig
	Strategy StrategyConfig
	Pipeline PipelineConfig
	Catalog  CatalogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
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

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UploadConfig holds document upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// AnalyzerConfig names every threshold the document analyzer uses.
type AnalyzerConfig struct {
	// MaxSampledPages bounds the representative page subset.
	MaxSampledPages int `mapstructure:"max_sampled_pages"`
	// ScannedImageRatio is the image-annotation ratio above which a page
	// counts as scanned content.
	ScannedImageRatio float64 `mapstructure:"scanned_image_ratio"`
	// ScannedTextByteRatio is the text-to-byte-size ratio below which a
	// single sampled page triggers immediate scanned classification.
	ScannedTextByteRatio float64 `mapstructure:"scanned_text_byte_ratio"`
	// DensityCeiling is the empirical characters-per-page ceiling used to
	// normalize text density into 0..1.
	DensityCeiling float64 `mapstructure:"density_ceiling"`
	// TextHeavyDensity is the density floor above which a document is
	// considered text heavy.
	TextHeavyDensity float64 `mapstructure:"text_heavy_density"`
	// ComplexColumnCount marks a layout complex at or above this many columns.
	ComplexColumnCount int `mapstructure:"complex_column_count"`
	// TableMinConsecutive is the run of tab-separated or consistently spaced
	// lines required before a table is detected.
	TableMinConsecutive int `mapstructure:"table_min_consecutive"`
	// LargePageCount and LargeMemoryMB bound the size class.
	LargePageCount int     `mapstructure:"large_page_count"`
	LargeMemoryMB  float64 `mapstructure:"large_memory_mb"`
	// MemoryPerByteFactor converts document byte size into an estimated
	// processing cost in MB.
	MemoryPerByteFactor float64 `mapstructure:"memory_per_byte_factor"`
}

// StrategyConfig holds the extraction parameter tuning knobs.
type StrategyConfig struct {
	MinBatchSize     int     `mapstructure:"min_batch_size"`
	MaxBatchSize     int     `mapstructure:"max_batch_size"`
	BatchMemoryMB    float64 `mapstructure:"batch_memory_mb"`
	PreviewDownscale float64 `mapstructure:"preview_downscale"`
	PreviewPageCount int     `mapstructure:"preview_page_count"`
}

// PipelineConfig holds parsing coordinator settings.
type PipelineConfig struct {
	// Timeout wraps one whole document pipeline run.
	Timeout time.Duration `mapstructure:"timeout"`
	// TelemetryCapacity bounds the parse attempt ring buffer.
	TelemetryCapacity int `mapstructure:"telemetry_capacity"`
	// CacheCapacity bounds the processing cache entry count.
	CacheCapacity int `mapstructure:"cache_capacity"`
}

// CatalogConfig holds abbreviation catalog settings.
type CatalogConfig struct {
	// Path to the versioned catalog JSON document.
	Path string `mapstructure:"path"`
	// Freshness suppresses catalog reloads within this window unless forced.
	Freshness time.Duration `mapstructure:"freshness"`
}

// Load reads configuration from environment variables with the PAYMAX_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PAYMAX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "paymax")
	v.SetDefault("db.password", "paymax_secret")
	v.SetDefault("db.name", "paymax_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 25)

	// Analyzer defaults
	v.SetDefault("analyzer.max_sampled_pages", 10)
	v.SetDefault("analyzer.scanned_image_ratio", 0.5)
	v.SetDefault("analyzer.scanned_text_byte_ratio", 0.001)
	v.SetDefault("analyzer.density_ceiling", 3000)
	v.SetDefault("analyzer.text_heavy_density", 0.4)
	v.SetDefault("analyzer.complex_column_count", 2)
	v.SetDefault("analyzer.table_min_consecutive", 3)
	v.SetDefault("analyzer.large_page_count", 50)
	v.SetDefault("analyzer.large_memory_mb", 200)
	v.SetDefault("analyzer.memory_per_byte_factor", 2.5)

	// Strategy defaults
	v.SetDefault("strategy.min_batch_size", 1)
	v.SetDefault("strategy.max_batch_size", 50)
	v.SetDefault("strategy.batch_memory_mb", 64)
	v.SetDefault("strategy.preview_downscale", 0.5)
	v.SetDefault("strategy.preview_page_count", 1)

	// Pipeline defaults
	v.SetDefault("pipeline.timeout", "60s")
	v.SetDefault("pipeline.telemetry_capacity", 200)
	v.SetDefault("pipeline.cache_capacity", 512)

	// Catalog defaults
	v.SetDefault("catalog.path", "data/abbreviations.json")
	v.SetDefault("catalog.freshness", "5m")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Viper reads list-valued env vars as comma-separated strings.
	if len(cfg.CORS.AllowedOrigins) == 1 && strings.Contains(cfg.CORS.AllowedOrigins[0], ",") {
		cfg.CORS.AllowedOrigins = strings.Split(cfg.CORS.AllowedOrigins[0], ",")
	}

	return &cfg, nil
}
