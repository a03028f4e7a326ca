package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/logger"
	"github.com/spf13/viper"

	"luckywheel/internal/models"
	"luckywheel/internal/services"
	"luckywheel/internal/wheel"
)

// EnvPrefix prefixes every environment override, e.g. LUCKYWHEEL_SERVER_ADDR.
const EnvPrefix = "LUCKYWHEEL"

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Wheel  WheelConfig  `mapstructure:"wheel"`
	Seed   SeedConfig   `mapstructure:"seed"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release or test
}

// LogConfig configures google/logger.
type LogConfig struct {
	Verbose bool   `mapstructure:"verbose"`
	File    string `mapstructure:"file"`
}

// WheelConfig holds the spin settings and display defaults.
type WheelConfig struct {
	SpinDuration  time.Duration `mapstructure:"spin_duration"`
	MinFullSpins  int           `mapstructure:"min_full_spins"`
	MaxFullSpins  int           `mapstructure:"max_full_spins"`
	GameType      string        `mapstructure:"game_type"`
	CommonMarkers []string      `mapstructure:"common_markers"`
	DefaultSize   string        `mapstructure:"default_size"`
}

// SeedConfig is the roster and prize pool loaded at startup.
type SeedConfig struct {
	Participants []models.Participant `mapstructure:"participants"`
	Prizes       []models.Prize       `mapstructure:"prizes"`
}

// Settings converts the wheel section into service settings.
func (w WheelConfig) Settings() services.Settings {
	return services.Settings{
		SpinDuration:  w.SpinDuration,
		MinFullSpins:  w.MinFullSpins,
		MaxFullSpins:  w.MaxFullSpins,
		GameType:      w.GameType,
		CommonMarkers: w.CommonMarkers,
	}
}

// Validate checks the parts of the config the service cannot check itself.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("%w: server address is required", ErrInvalidConfig)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("%w: unknown server mode %q", ErrInvalidConfig, c.Server.Mode)
	}
	if err := c.Wheel.Settings().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := wheel.LookupSize(c.Wheel.DefaultSize); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Manager loads the configuration and watches it for changes.
type Manager struct {
	viper *viper.Viper

	mu     sync.RWMutex
	config *Config
}

// NewManager creates a Manager. An empty file searches the default locations
// for config.yaml; a missing file there is not an error.
func NewManager(file string) *Manager {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/luckywheel")
		v.AddConfigPath("$HOME/.luckywheel")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	m := &Manager{viper: v}
	m.setDefaults()
	return m
}

// Load reads, decodes and validates the configuration.
func (m *Manager) Load() (*Config, error) {
	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// defaults and environment only
	}

	cfg, err := m.decode()
	if err != nil {
		return nil, err
	}

	m.setConfig(cfg)
	return cfg, nil
}

// Config returns the last successfully loaded configuration.
func (m *Manager) Config() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *Manager) setConfig(cfg *Config) {
	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()
}

// File returns the config file in use, if any.
func (m *Manager) File() string { return m.viper.ConfigFileUsed() }

// Watch calls callback with every valid configuration written to the config
// file. Invalid edits are logged and ignored.
func (m *Manager) Watch(callback func(*Config)) {
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := m.decode()
		if err != nil {
			logger.Warningf("Ignoring config change in %s: %v", e.Name, err)
			return
		}

		m.setConfig(cfg)
		logger.Infof("Config reloaded from %s", e.Name)
		if callback != nil {
			callback(cfg)
		}
	})
	m.viper.WatchConfig()
}

func (m *Manager) decode() (*Config, error) {
	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (m *Manager) setDefaults() {
	m.viper.SetDefault("server.addr", ":8080")
	m.viper.SetDefault("server.mode", "release")

	m.viper.SetDefault("log.verbose", false)
	m.viper.SetDefault("log.file", "")

	m.viper.SetDefault("wheel.spin_duration", services.DefaultSpinDuration.String())
	m.viper.SetDefault("wheel.min_full_spins", wheel.DefaultMinFullSpins)
	m.viper.SetDefault("wheel.max_full_spins", wheel.DefaultMaxFullSpins)
	m.viper.SetDefault("wheel.game_type", services.DefaultGameType)
	m.viper.SetDefault("wheel.common_markers", wheel.DefaultCommonMarkers)
	m.viper.SetDefault("wheel.default_size", "medium")
}
