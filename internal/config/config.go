// Package config loads the dashboard's YAML settings and applies
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// NotificationsConfig tunes the toast queue.
type NotificationsConfig struct {
	// Capacity is the most toasts kept at once; the oldest is dropped.
	Capacity int `yaml:"capacity" json:"capacity"`
	// TTL is how long a toast stays visible.
	TTL time.Duration `yaml:"ttl" json:"ttl"`
}

// CalendarConfig tunes the calendar screens.
type CalendarConfig struct {
	// HoverAutoClose closes a stuck hover popover.
	HoverAutoClose time.Duration `yaml:"hover_auto_close" json:"hover_auto_close"`
	// BadgeLimit is how many category dots a month cell shows.
	BadgeLimit int `yaml:"badge_limit" json:"badge_limit"`
	// SyncInterval is how often events are pulled from the backend.
	SyncInterval time.Duration `yaml:"sync_interval" json:"sync_interval"`
}

// TablesConfig tunes the list views.
type TablesConfig struct {
	PageSize int `yaml:"page_size" json:"page_size"`
}

// BackendConfig points at the admin REST backend.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url" json:"base_url"`
	Token   string        `yaml:"token" json:"-"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen" json:"listen"`
	// DataDir holds the SQLite store.
	DataDir string `yaml:"data_dir" json:"data_dir"`
	// StaticDir holds the built frontend, if any.
	StaticDir string `yaml:"static_dir" json:"static_dir"`
	// Timezone is the IANA zone used for "today" and ICS times.
	Timezone string `yaml:"timezone" json:"timezone"`

	Notifications NotificationsConfig `yaml:"notifications" json:"notifications"`
	Calendar      CalendarConfig      `yaml:"calendar" json:"calendar"`
	Tables        TablesConfig        `yaml:"tables" json:"tables"`
	Backend       BackendConfig       `yaml:"backend" json:"backend"`

	// Version is reported by the health endpoint; it only comes from VERSION.
	Version string `yaml:"-" json:"version"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:    ":8099",
		DataDir:   "/data",
		StaticDir: "/app/static",
		Timezone:  "Local",
		Notifications: NotificationsConfig{
			Capacity: 20,
			TTL:      4 * time.Second,
		},
		Calendar: CalendarConfig{
			HoverAutoClose: 3 * time.Second,
			BadgeLimit:     3,
			SyncInterval:   15 * time.Minute,
		},
		Tables: TablesConfig{
			PageSize: 10,
		},
		Backend: BackendConfig{
			Timeout: 15 * time.Second,
		},
		Version: "dev",
	}
}

// Normalize fills in missing or zero values so partial files still behave.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.Listen == "" {
		c.Listen = d.Listen
	}
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.StaticDir == "" {
		c.StaticDir = d.StaticDir
	}
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
	if c.Notifications.Capacity <= 0 {
		c.Notifications.Capacity = d.Notifications.Capacity
	}
	if c.Notifications.TTL <= 0 {
		c.Notifications.TTL = d.Notifications.TTL
	}
	if c.Calendar.HoverAutoClose <= 0 {
		c.Calendar.HoverAutoClose = d.Calendar.HoverAutoClose
	}
	if c.Calendar.BadgeLimit <= 0 {
		c.Calendar.BadgeLimit = d.Calendar.BadgeLimit
	}
	if c.Calendar.SyncInterval < time.Minute {
		c.Calendar.SyncInterval = d.Calendar.SyncInterval
	}
	if c.Tables.PageSize <= 0 {
		c.Tables.PageSize = d.Tables.PageSize
	}
	if c.Backend.Timeout <= 0 {
		c.Backend.Timeout = d.Backend.Timeout
	}
	c.Backend.BaseURL = strings.TrimRight(c.Backend.BaseURL, "/")
	if c.Version == "" {
		c.Version = d.Version
	}
}

// ApplyEnv overrides file values with ADMIN_API_BASE_URL, ADMIN_API_TOKEN
// and VERSION when they are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("ADMIN_API_BASE_URL"); v != "" {
		c.Backend.BaseURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("ADMIN_API_TOKEN"); v != "" {
		c.Backend.Token = v
	}
	if v := os.Getenv("VERSION"); v != "" {
		c.Version = v
	}
}

// Location resolves Timezone, falling back to the local zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Load reads the YAML file at path, normalizes it and applies environment
// overrides. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.ApplyEnv()
	cfg.Normalize()
	return cfg, nil
}

// Save writes cfg as YAML with 0600 permissions.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
