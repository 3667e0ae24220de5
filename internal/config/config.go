package config

import (
	"github.com/spf13/viper"
)

/**
 * Server configuration parameters
 * @property {string} address - Server listening address (e.g. ":8998")
 * @property {string} mode - Application mode (debug/release/test)
 */
type ServerConfig struct {
	Address string `mapstructure:"address"`
	Mode    string `mapstructure:"mode"`
}

/**
 * Logging configuration
 * @property {string} level - Log level (debug/info/warn/error)
 * @property {string} path - Log file path ("console" writes to stdout)
 */
type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

/**
 * Supervisor tuning parameters
 * @property {int} poll_interval - Seconds between health polling rounds
 * @property {int} max_attempts - Health polling attempt budget per stack start
 * @property {int} settle_delay - Seconds to wait after "up" before first inspection
 * @property {int} image_cache_ttl - Seconds the image presence check result stays valid
 * @property {int} log_tail - Number of log lines fetched per service
 * @property {bool} http_fallback - Enable direct HTTP health probes when the
 *   engine-native health signal is unavailable
 * @property {bool} port_check - Enable the pre-flight scan of declared host ports
 */
type SupervisorConfig struct {
	PollInterval  int  `mapstructure:"poll_interval"`
	MaxAttempts   int  `mapstructure:"max_attempts"`
	SettleDelay   int  `mapstructure:"settle_delay"`
	ImageCacheTTL int  `mapstructure:"image_cache_ttl"`
	LogTail       int  `mapstructure:"log_tail"`
	HTTPFallback  bool `mapstructure:"http_fallback"`
	PortCheck     bool `mapstructure:"port_check"`
}

type AppConfig struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Supervisor SupervisorConfig `mapstructure:"supervisor"`
}

/**
 * Load application configuration from YAML file
 */
func LoadConfig() (*AppConfig, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var Config AppConfig

func collectConfig(cfg *AppConfig) *AppConfig {
	if cfg.Server.Address == "" {
		cfg.Server.Address = "127.0.0.1:8998"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Supervisor.PollInterval <= 0 {
		cfg.Supervisor.PollInterval = 2
	}
	if cfg.Supervisor.MaxAttempts <= 0 {
		cfg.Supervisor.MaxAttempts = 60
	}
	if cfg.Supervisor.SettleDelay <= 0 {
		cfg.Supervisor.SettleDelay = 3
	}
	if cfg.Supervisor.ImageCacheTTL <= 0 {
		cfg.Supervisor.ImageCacheTTL = 3600
	}
	if cfg.Supervisor.LogTail <= 0 {
		cfg.Supervisor.LogTail = 200
	}
	if !viper.IsSet("supervisor.port_check") {
		cfg.Supervisor.PortCheck = true
	}
	return cfg
}

func init() {
	cfg, err := LoadConfig()
	if err == nil {
		Config = *cfg
	}
	collectConfig(&Config)
}
