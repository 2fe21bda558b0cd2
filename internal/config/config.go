package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Content  ContentConfig
	UI       UIConfig
	Session  SessionConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// ContentConfig points at an optional TOML file of panel overrides.
// Relative panel links are resolved against BaseURL.
type ContentConfig struct {
	Path    string
	BaseURL string `mapstructure:"base_url"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Timezone string
	// UnitsPerRow converts terminal rows into drag distance units.
	UnitsPerRow float64 `mapstructure:"units_per_row"`
	// IdleRelock locks the desktop after this long without input. Zero disables.
	IdleRelock time.Duration `mapstructure:"idle_relock"`
}

// SessionConfig controls the optional login1 lock listener.
type SessionConfig struct {
	DBusLock bool   `mapstructure:"dbus_lock"`
	ID       string `mapstructure:"id"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Path   string
	Level  string
	Format string
}

func dataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "deskfolio")
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "deskfolio")
}

func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "deskfolio")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "deskfolio")
}

// Load reads configuration from file and env. Env var overrides use prefix DESKFOLIO_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(dataDir(), "deskfolio.db"))
	v.SetDefault("content.path", filepath.Join(configDir(), "panels.toml"))
	v.SetDefault("content.base_url", "https://foxzinnx.vercel.app")
	v.SetDefault("ui.timezone", "America/Sao_Paulo")
	v.SetDefault("ui.units_per_row", 10.0)
	v.SetDefault("ui.idle_relock", "0s")
	v.SetDefault("session.dbus_lock", false)
	v.SetDefault("session.id", os.Getenv("XDG_SESSION_ID"))
	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("DESKFOLIO_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DESKFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the UI cannot work with.
func (c Config) Validate() error {
	if c.UI.UnitsPerRow <= 0 {
		return fmt.Errorf("ui.units_per_row must be positive, got %v", c.UI.UnitsPerRow)
	}
	if c.UI.IdleRelock < 0 {
		return fmt.Errorf("ui.idle_relock must not be negative")
	}
	if c.Session.DBusLock && strings.TrimSpace(c.Session.ID) == "" {
		return fmt.Errorf("session.dbus_lock needs session.id (or XDG_SESSION_ID)")
	}
	return nil
}

// Location resolves UI.Timezone, falling back to the local zone.
func (c Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.UI.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.UI.Timezone)
	if err != nil {
		return time.Local, fmt.Errorf("load timezone %q: %w", c.UI.Timezone, err)
	}
	return loc, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("DESKFOLIO_CONFIG")
	if path == "" {
		path = filepath.Join(configDir(), "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("content.path", cfg.Content.Path)
	v.Set("content.base_url", cfg.Content.BaseURL)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("ui.units_per_row", cfg.UI.UnitsPerRow)
	v.Set("ui.idle_relock", cfg.UI.IdleRelock.String())
	v.Set("session.dbus_lock", cfg.Session.DBusLock)
	v.Set("session.id", cfg.Session.ID)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
