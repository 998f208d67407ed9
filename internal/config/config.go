package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration shared by the tdma command-line
// programs.
type Config struct {
	Multicast MulticastConfig `mapstructure:"multicast"`
	Slots     SlotConfig      `mapstructure:"slots"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// MulticastConfig addresses the shared group every channel joins.
type MulticastConfig struct {
	Group string `mapstructure:"group"`
	Port  int    `mapstructure:"port"`
}

// SlotConfig describes the cycle geometry the master advertises and every
// other channel refines itself against.
type SlotConfig struct {
	Count        uint32        `mapstructure:"count"`
	Width        time.Duration `mapstructure:"width"`
	SyncInterval time.Duration `mapstructure:"sync_interval"`
}

// MetricsConfig controls the Prometheus diagnostics endpoint.
type MetricsConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ListenAddr  string `mapstructure:"listen_addr"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

// LoggingConfig controls zap logger level/encoding.
type LoggingConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load reads configuration from environment variables and an optional
// config file, applying defaults matching the wire defaults for the
// multicast group and port.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("multicast.group", "224.0.0.123")
	v.SetDefault("multicast.port", 49234)

	v.SetDefault("slots.count", 10)
	v.SetDefault("slots.width", time.Millisecond)
	v.SetDefault("slots.sync_interval", time.Second)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.listen_addr", ":9095")
	v.SetDefault("metrics.endpoint", "/metrics")
	v.SetDefault("metrics.service_name", "tdma")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.development", false)

	v.SetConfigName("tdma")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("TDMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Attempt to read config file (optional)
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config unmarshal: %w", err)
	}

	if cfg.Slots.Count == 0 {
		cfg.Slots.Count = 10
	}
	if cfg.Slots.Width <= 0 {
		cfg.Slots.Width = time.Millisecond
	}

	return cfg, nil
}
