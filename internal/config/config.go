// Package config loads application configuration and category source
// definitions, and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Search     SearchConfig   `yaml:"search" mapstructure:"search"`
	Gateway    GatewayConfig  `yaml:"gateway" mapstructure:"gateway"`
	Snapshot   SnapshotConfig `yaml:"snapshot" mapstructure:"snapshot"`
	Server     ServerConfig   `yaml:"server" mapstructure:"server"`
	Log        LogConfig      `yaml:"log" mapstructure:"log"`
	Categories string         `yaml:"categories" mapstructure:"categories"`
}

// SearchConfig configures proximity queries and the load area.
type SearchConfig struct {
	// DefaultRadiusMiles applies to categories without their own radius.
	DefaultRadiusMiles float64 `yaml:"default_radius_miles" mapstructure:"default_radius_miles"`
	// TransitRadiusMiles is the tighter radius for transit stops.
	TransitRadiusMiles float64 `yaml:"transit_radius_miles" mapstructure:"transit_radius_miles"`
	// ResultCap bounds each category's result list per query.
	ResultCap int `yaml:"result_cap" mapstructure:"result_cap"`
	// CenterLat/CenterLng anchor the area-wide Overpass loads.
	CenterLat float64 `yaml:"center_lat" mapstructure:"center_lat"`
	CenterLng float64 `yaml:"center_lng" mapstructure:"center_lng"`
	// LoadRadiusMeters is the Overpass around-radius for area loads.
	LoadRadiusMeters int `yaml:"load_radius_meters" mapstructure:"load_radius_meters"`
}

// GatewayConfig configures the HTTP gateway.
type GatewayConfig struct {
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int    `yaml:"max_retries" mapstructure:"max_retries"`
	// PageSize is the resultRecordCount used for paginated GIS pulls.
	PageSize int `yaml:"page_size" mapstructure:"page_size"`
}

// SnapshotConfig configures optional load-snapshot persistence. An empty
// driver disables snapshots.
type SnapshotConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("NEARBY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("search.default_radius_miles", 1.5)
	v.SetDefault("search.transit_radius_miles", 0.25)
	v.SetDefault("search.result_cap", 25)
	v.SetDefault("search.center_lat", 39.7392)
	v.SetDefault("search.center_lng", -104.9903)
	v.SetDefault("search.load_radius_meters", 8000)
	v.SetDefault("gateway.user_agent", "nearby-cli/1.0 (Denver nearby search)")
	v.SetDefault("gateway.timeout_secs", 30)
	v.SetDefault("gateway.max_retries", 3)
	v.SetDefault("gateway.page_size", 2000)
	v.SetDefault("snapshot.driver", "")
	v.SetDefault("snapshot.path", "nearby-snapshots.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
