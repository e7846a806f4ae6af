// Package config loads application configuration from file and environment
// and initializes the global logger.
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
	Data    DataConfig    `yaml:"data" mapstructure:"data"`
	Search  SearchConfig  `yaml:"search" mapstructure:"search"`
	Suggest SuggestConfig `yaml:"suggest" mapstructure:"suggest"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// DataConfig points at the reference datasets loaded into the catalog at startup.
type DataConfig struct {
	GazetteerPath    string `yaml:"gazetteer_path" mapstructure:"gazetteer_path"`
	InfraDir         string `yaml:"infra_dir" mapstructure:"infra_dir"`
	RegionsPath      string `yaml:"regions_path" mapstructure:"regions_path"`
	PopulationPath   string `yaml:"population_path" mapstructure:"population_path"`
	BuildingsPath    string `yaml:"buildings_path" mapstructure:"buildings_path"`
	BuildingAgesPath string `yaml:"building_ages_path" mapstructure:"building_ages_path"`
	CollectivePath   string `yaml:"collective_path" mapstructure:"collective_path"`
}

// SearchConfig configures the evaluation query defaults.
type SearchConfig struct {
	DefaultRadiusMeters float64 `yaml:"default_radius_m" mapstructure:"default_radius_m"`
	MaxRadiusMeters     float64 `yaml:"max_radius_m" mapstructure:"max_radius_m"`
}

// SuggestConfig configures the fuzzy suggestion endpoint.
type SuggestConfig struct {
	MinScore   int `yaml:"min_score" mapstructure:"min_score"`
	MaxResults int `yaml:"max_results" mapstructure:"max_results"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
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
	v.SetEnvPrefix("OMEUBAIRRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.gazetteer_path", "data/zip_code_cluster.json")
	v.SetDefault("data.infra_dir", "infra")
	v.SetDefault("data.regions_path", "data/Freguesias_Aux.json")
	v.SetDefault("data.population_path", "data/Populacao_Aux.json")
	v.SetDefault("data.buildings_path", "data/Edificios_Lugar_Aux.json")
	v.SetDefault("data.building_ages_path", "data/Idade_Edificios_Aux.json")
	v.SetDefault("data.collective_path", "data/CollectiveIntelligence.csv")
	v.SetDefault("search.default_radius_m", 500)
	v.SetDefault("search.max_radius_m", 50000)
	v.SetDefault("suggest.min_score", 80)
	v.SetDefault("suggest.max_results", 10)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit_rps", 50)
	v.SetDefault("server.rate_limit_burst", 100)
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
