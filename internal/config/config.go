package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env"
	"gopkg.in/yaml.v3"
)

// Default values for the server configuration.
const (
	DefaultListenAddr       = "127.0.0.1:8820"
	DefaultMaxPasteSize     = 32 * 1024
	DefaultDevicePasteLimit = 2
	DefaultStatsInterval    = 5 * time.Second
)

// Config holds the configuration parsed from the `server:` section of
// config.yaml.
type Config struct {
	Server ServerConfig `yaml:"server"`
}

// ServerConfig holds all server-side settings. The env-tagged fields can be
// overridden from the environment after the yaml file is applied.
type ServerConfig struct {
	// ListenAddr is the host:port the HTTP server binds to (default 127.0.0.1:8820).
	ListenAddr string `yaml:"listen_addr" env:"BIN_LISTEN_ADDR"`

	// MaxPasteSize is the request body cap in bytes (default 32 kB).
	MaxPasteSize int `yaml:"max_paste_size" env:"BIN_MAX_PASTE_SIZE"`

	// DevicePasteLimit is how many pastes each device keeps before the
	// oldest is rotated out (default 2). Changing it requires a restart;
	// the store is built with it once.
	DevicePasteLimit int `yaml:"device_paste_limit" env:"BIN_DEVICE_PASTE_LIMIT"`

	// Auth configures the optional instance-wide API key gate.
	Auth AuthConfig `yaml:"auth"`

	// Stats controls the websocket stats hub.
	Stats StatsConfig `yaml:"stats"`

	// Pyroscope configures optional continuous profiling.
	Pyroscope PyroscopeConfig `yaml:"pyroscope"`
}

// AuthConfig controls the API key gate in front of the whole HTTP surface.
// Device codes are orthogonal to this: they scope pastes to a client, the
// gate keeps strangers off a private instance.
type AuthConfig struct {
	// Mode is one of: apikey | none.
	Mode string `yaml:"mode"`

	// KeyEnv is the name of the environment variable that holds the expected key.
	// Used when Mode == "apikey".
	KeyEnv string `yaml:"key_env"`

	// Header is the HTTP header to read the key from. Defaults to "x-api-key".
	Header string `yaml:"header"`
}

// Key returns the expected API key resolved from the environment.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// EffectiveHeader returns the configured header name, or the default "x-api-key".
func (a AuthConfig) EffectiveHeader() string {
	if a.Header != "" {
		return a.Header
	}
	return "x-api-key"
}

// StatsConfig controls the websocket stats broadcast.
type StatsConfig struct {
	// Interval is how often connected clients receive a stats frame (default 5s).
	Interval time.Duration `yaml:"interval"`
}

// PyroscopeConfig configures optional continuous profiling. Profiling is
// disabled while ServerAddress is empty.
type PyroscopeConfig struct {
	ServerAddress   string `yaml:"server_address"`
	ApplicationName string `yaml:"application_name"`
}

// Load reads and parses the config file at path. Missing fields are filled
// with defaults before unmarshalling, environment overrides are applied on
// top, and the result is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("server config: read %q: %w", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("server config: parse yaml: %w", err)
	}

	if err := env.Parse(&cfg.Server); err != nil {
		return nil, fmt.Errorf("server config: env overrides: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("server config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr:       DefaultListenAddr,
			MaxPasteSize:     DefaultMaxPasteSize,
			DevicePasteLimit: DefaultDevicePasteLimit,
			Stats: StatsConfig{
				Interval: DefaultStatsInterval,
			},
			Pyroscope: PyroscopeConfig{
				ApplicationName: "bin-server",
			},
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	if cfg.Server.ListenAddr == "" {
		return fmt.Errorf("server.listen_addr must not be empty")
	}
	if cfg.Server.MaxPasteSize <= 0 {
		return fmt.Errorf("server.max_paste_size %d must be positive", cfg.Server.MaxPasteSize)
	}
	if cfg.Server.DevicePasteLimit < 1 {
		return fmt.Errorf("server.device_paste_limit %d must be at least 1", cfg.Server.DevicePasteLimit)
	}
	switch cfg.Server.Auth.Mode {
	case "apikey", "none", "":
	default:
		return fmt.Errorf("server.auth.mode %q unknown: want apikey|none", cfg.Server.Auth.Mode)
	}
	if cfg.Server.Stats.Interval <= 0 {
		return fmt.Errorf("server.stats.interval must be positive")
	}
	return nil
}
