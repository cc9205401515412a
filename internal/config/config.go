package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"gzctime/internal/calendar"
	"gzctime/internal/zone"
)

// NOTE: This file provides the configuration model and full load/save
// behavior, including first-run config creation and 0600 permissions.
// The file format follows the extension: .toml is TOML, anything else YAML.

// ICSConfig controls the iCalendar bridge.
type ICSConfig struct {
	// ProductID is written as PRODID of exported calendars.
	ProductID string `yaml:"product_id" toml:"product_id" json:"product_id"`
	// CacheDir holds fetched remote feeds with their ETag/Last-Modified.
	CacheDir string `yaml:"cache_dir" toml:"cache_dir" json:"cache_dir"`
	// MaxOccurrences caps RRULE expansion.
	MaxOccurrences int `yaml:"max_occurrences" toml:"max_occurrences" json:"max_occurrences"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the API.
type BasicAuthConfig struct {
	Username string `yaml:"username" toml:"username" json:"username"`
	Password string `yaml:"password" toml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the API.
	Listen string `yaml:"listen" toml:"listen" json:"listen"`

	// Timezone is the IANA location consulted as the local zone
	// (e.g. "Europe/Berlin"). Empty means the system local zone.
	Timezone string `yaml:"timezone" toml:"timezone" json:"timezone"`

	// Epoch selects the linear time interpretation:
	//   - "wide" (default): 64-bit seconds
	//   - "y2038": 32-bit seconds re-based on 2030, covering 1962..2098
	Epoch string `yaml:"epoch" toml:"epoch" json:"epoch"`

	// DefaultZone is the zone request used when none is given, in the
	// forms accepted by zone.ParseRequest (local, utc, asutc, +05:30,
	// DST+01:00, ...).
	DefaultZone string `yaml:"default_zone" toml:"default_zone" json:"default_zone"`

	// ClockCron is the cron schedule of the live clock feed.
	ClockCron string `yaml:"clock_cron" toml:"clock_cron" json:"clock_cron"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" toml:"log_level" json:"log_level"`

	ICS ICSConfig `yaml:"ics" toml:"ics" json:"ics"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all endpoints
	// except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" toml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

const (
	defaultListen         = "127.0.0.1:8080"
	defaultClockCron      = "* * * * *"
	defaultProductID      = "-//gzctime//GZC//EN"
	defaultMaxOccurrences = 500
)

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:      defaultListen,
		Timezone:    "",
		Epoch:       "wide",
		DefaultZone: "local",
		ClockCron:   defaultClockCron,
		LogLevel:    "info",
		ICS: ICSConfig{
			ProductID:      defaultProductID,
			MaxOccurrences: defaultMaxOccurrences,
		},
		BasicAuth: nil,
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs (e.g., older versions) still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	switch strings.ToLower(c.Epoch) {
	case "y2038":
		c.Epoch = "y2038"
	default:
		// Unknown value; fall back to the full range.
		c.Epoch = "wide"
	}
	if c.DefaultZone == "" {
		c.DefaultZone = "local"
	}
	if c.ClockCron == "" {
		c.ClockCron = defaultClockCron
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.ICS.ProductID == "" {
		c.ICS.ProductID = defaultProductID
	}
	if c.ICS.MaxOccurrences <= 0 {
		c.ICS.MaxOccurrences = defaultMaxOccurrences
	}
}

// Mode returns the configured epoch mode.
func (c *Config) Mode() calendar.Mode {
	if c.Epoch == "y2038" {
		return calendar.Y2038
	}
	return calendar.Wide
}

// Platform returns the local-time facility for the configured timezone.
func (c *Config) Platform() (zone.Platform, error) {
	if c.Timezone == "" {
		return zone.System{}, nil
	}
	return zone.Location(c.Timezone)
}

// Engine builds the conversion engine described by the configuration.
func (c *Config) Engine() (*calendar.Engine, error) {
	p, err := c.Platform()
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return calendar.NewEngine(p, calendar.WithMode(c.Mode())), nil
}

// Request parses DefaultZone.
func (c *Config) Request() (zone.Request, error) {
	r, err := zone.ParseRequest(c.DefaultZone)
	if err != nil {
		return zone.Request{}, fmt.Errorf("config: default_zone: %w", err)
	}
	return r, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load loads configuration from the given path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML or TOML and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if isTOML(path) {
		err = toml.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML or TOML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	var data []byte
	var err error
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}

	// Atomic write: write to temp file in same directory then rename.
	tmp, err := os.CreateTemp(dir, ".gzctime-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	// Flush and close before chmod/rename.
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
