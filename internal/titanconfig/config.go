// Package titanconfig is the viper-backed configuration layer,
// adapted from the teacher's internal/config/config.go: same
// singleton-load pattern, same mapstructure-tagged struct, same
// TITAN_<SECTION>_<KEY> environment override convention (the
// teacher's was TRADSYS_<SECTION>_<KEY>), narrowed to the benchmark's
// own tunables.
package titanconfig

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config is titan-hft's full set of tunables.
type Config struct {
	Network struct {
		BindAddr        string `mapstructure:"bind_addr"`
		RecvBufferBytes int    `mapstructure:"recv_buffer_bytes"`
		BatchReadLoops  int    `mapstructure:"batch_read_loops"`
	} `mapstructure:"network"`

	Ring struct {
		IngestCapacity int `mapstructure:"ingest_capacity"`
		LogCapacity    int `mapstructure:"log_capacity"`
	} `mapstructure:"ring"`

	Risk struct {
		MaxPosition int64   `mapstructure:"max_position"`
		MaxDrawdown float64 `mapstructure:"max_drawdown"`
	} `mapstructure:"risk"`

	Benchmark struct {
		Samples int `mapstructure:"samples"`
	} `mapstructure:"benchmark"`

	Logging struct {
		Path       string `mapstructure:"path"`
		BufferSize int    `mapstructure:"buffer_size"`
		Level      string `mapstructure:"level"`
	} `mapstructure:"logging"`

	Monitoring struct {
		PrometheusPort int `mapstructure:"prometheus_port"`
	} `mapstructure:"monitoring"`
}

var (
	cfg  *Config
	once sync.Once
)

// Load reads configuration from configPath (a directory, viper-style),
// falling back to defaults and TITAN_-prefixed environment variables
// when no config file is present. Load is idempotent: the first
// successful call wins for the process lifetime.
func Load(configPath string) (*Config, error) {
	var err error

	once.Do(func() {
		cfg = &Config{}
		setDefaults(cfg)

		v := viper.New()
		v.SetConfigName("titan")
		v.SetConfigType("yaml")

		if configPath != "" {
			v.AddConfigPath(configPath)
		} else {
			v.AddConfigPath(".")
			v.AddConfigPath("./config")
			v.AddConfigPath("/etc/titan-hft")
		}

		v.AutomaticEnv()
		v.SetEnvPrefix("TITAN")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		for _, key := range []string{
			"network.bind_addr", "network.recv_buffer_bytes", "network.batch_read_loops",
			"ring.ingest_capacity", "ring.log_capacity",
			"risk.max_position", "risk.max_drawdown",
			"benchmark.samples",
			"logging.path", "logging.buffer_size", "logging.level",
			"monitoring.prometheus_port",
		} {
			_ = v.BindEnv(key)
		}

		if readErr := v.ReadInConfig(); readErr != nil {
			if _, ok := readErr.(viper.ConfigFileNotFoundError); !ok {
				err = fmt.Errorf("read config file: %w", readErr)
				return
			}
		}

		if unmarshalErr := v.Unmarshal(cfg); unmarshalErr != nil {
			err = fmt.Errorf("unmarshal config: %w", unmarshalErr)
			return
		}
	})

	return cfg, err
}

// Get returns the process config, loading defaults if Load was never
// called.
func Get() *Config {
	if cfg == nil {
		if _, err := Load(""); err != nil {
			panic(fmt.Sprintf("load config: %v", err))
		}
	}
	return cfg
}

func setDefaults(c *Config) {
	c.Network.BindAddr = "127.0.0.1:5555"
	c.Network.RecvBufferBytes = 8 * 1024 * 1024
	c.Network.BatchReadLoops = 16

	c.Ring.IngestCapacity = 16384
	c.Ring.LogCapacity = 1048576

	c.Risk.MaxPosition = 5000
	c.Risk.MaxDrawdown = -20000.0

	c.Benchmark.Samples = 1000000

	c.Logging.Path = "titan-ticks.log"
	c.Logging.BufferSize = 128 * 1024
	c.Logging.Level = "info"

	c.Monitoring.PrometheusPort = 9090
}

// NewLogger builds the zap logger implied by cfg.Logging.Level,
// mirroring the teacher's InitLogger.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	switch cfg.Logging.Level {
	case "debug":
		logger, err = zap.NewDevelopment()
	default:
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}
