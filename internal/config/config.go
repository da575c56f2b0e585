// Package config provides configuration management for the Betlab services.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	DataSources DataSourcesConfig `mapstructure:"data_sources" validate:"required"`
	Ingestion   IngestionConfig   `mapstructure:"ingestion" validate:"required"`
	Backtest    BacktestConfig    `mapstructure:"backtest" validate:"required"`
	Analysis    AnalysisConfig    `mapstructure:"analysis" validate:"required"`
	Metrics     MetricsConfig     `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// DataSourcesConfig groups the external match and odds providers
type DataSourcesConfig struct {
	FootballData FootballDataConfig `mapstructure:"football_data" validate:"required"`
	OddsAPI      OddsAPIConfig      `mapstructure:"odds_api" validate:"required"`
}

// FootballDataConfig configures the football-data.org client
type FootballDataConfig struct {
	BaseURL           string `mapstructure:"base_url" validate:"required,url"`
	APIKey            string `mapstructure:"api_key"`
	CompetitionID     string `mapstructure:"competition_id" validate:"required"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" validate:"required,gt=0"`
}

// OddsAPIConfig configures the the-odds-api.com client
type OddsAPIConfig struct {
	BaseURL           string `mapstructure:"base_url" validate:"required,url"`
	APIKey            string `mapstructure:"api_key"`
	SportKey          string `mapstructure:"sport_key" validate:"required"`
	Regions           string `mapstructure:"regions" validate:"required"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" validate:"required,gt=0"`
}

// IngestionConfig represents the ETL pipeline configuration
type IngestionConfig struct {
	Seasons        []string `mapstructure:"seasons" validate:"required,min=1,dive,season"`
	BatchSize      int      `mapstructure:"batch_size" validate:"required,gt=0"`
	HistoricalSync string   `mapstructure:"historical_sync" validate:"required"`
	SyncWindowDays int      `mapstructure:"sync_window_days" validate:"required,gt=0"`
	HealthPort     int      `mapstructure:"health_port" validate:"required,min=1,max=65535"`
}

// BacktestConfig represents strategy evaluation defaults
type BacktestConfig struct {
	InitialBankroll     float64 `mapstructure:"initial_bankroll" validate:"required,gt=0"`
	DefaultStake        float64 `mapstructure:"default_stake" validate:"required,gt=0"`
	OutputPath          string  `mapstructure:"output_path" validate:"required"`
	BootstrapIterations int     `mapstructure:"bootstrap_iterations" validate:"required,gt=0"`
}

// AnalysisConfig represents team analysis configuration
type AnalysisConfig struct {
	CacheTTLSeconds    int `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	LeaderboardWorkers int `mapstructure:"leaderboard_workers" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
