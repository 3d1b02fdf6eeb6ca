package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/newthinker/natal/internal/core"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Ephemeris EphemerisConfig `mapstructure:"ephemeris"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// EphemerisConfig selects and tunes the ephemeris provider.
type EphemerisConfig struct {
	Provider string `mapstructure:"provider"` // "meeus" or "remote"
	// CallTimeout bounds each provider call; zero waits indefinitely.
	CallTimeout time.Duration `mapstructure:"call_timeout"`
	// SiderealHouses applies the ayanamsha to house cusps as well as to
	// body longitudes. Off by default: the ascendant is tropical.
	SiderealHouses bool         `mapstructure:"sidereal_houses"`
	Remote         RemoteConfig `mapstructure:"remote"`
}

// RemoteConfig holds settings for the HTTP ephemeris provider.
type RemoteConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from file, layered over Defaults.
// An empty path skips the file and reads only the environment.
func Load(path string) (*Config, error) {
	// A .env file in the working directory seeds the environment without
	// overriding variables that are already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// Hosting platforms hand the listening port over in PORT
	if err := v.BindEnv("server.port", "SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("binding port env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("ephemeris.provider", d.Ephemeris.Provider)
	v.SetDefault("ephemeris.call_timeout", d.Ephemeris.CallTimeout)
	v.SetDefault("ephemeris.sidereal_houses", d.Ephemeris.SiderealHouses)
	v.SetDefault("ephemeris.remote.base_url", d.Ephemeris.Remote.BaseURL)
	v.SetDefault("ephemeris.remote.api_key", d.Ephemeris.Remote.APIKey)
	v.SetDefault("ephemeris.remote.timeout", d.Ephemeris.Remote.Timeout)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)
	v.SetDefault("log.level", d.Log.Level)
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3000,
			Mode:            "release",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Ephemeris: EphemerisConfig{
			Provider:    "meeus",
			CallTimeout: 10 * time.Second,
			Remote: RemoteConfig{
				Timeout: 30 * time.Second,
			},
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	// Ephemeris validation
	if c.Ephemeris.CallTimeout < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("call_timeout cannot be negative, got %s", c.Ephemeris.CallTimeout))
	}
	switch c.Ephemeris.Provider {
	case "meeus":
	case "remote":
		if c.Ephemeris.Remote.BaseURL == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("remote base_url required when provider is remote"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown ephemeris provider: %q", c.Ephemeris.Provider))
	}

	// Metrics validation
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("metrics path must start with /, got %q", c.Metrics.Path))
	}

	// Log validation
	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return core.WrapError(core.ErrConfigInvalid, err)
		}
	}

	return nil
}
