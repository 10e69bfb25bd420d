package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"goalcal/internal/calendar"
	"goalcal/internal/fsutil"
	appLog "goalcal/internal/log"
)

// ICSConfig describes a calendar feed whose all-day events are imported
// as goals.
type ICSConfig struct {
	// URL is an http(s) endpoint or a local file path.
	URL string `yaml:"url" json:"url"`
	// Color is applied to every goal imported from this feed.
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the HTTP API.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for `goalcal serve`.
	Listen string `yaml:"listen" json:"listen"`

	// GoalsPath is the YAML file holding the goal collection.
	GoalsPath string `yaml:"goals_path" json:"goals_path"`

	// LogLevel is one of debug, info, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LanePolicy is "greedy" (default) or "stable".
	LanePolicy string `yaml:"lane_policy" json:"lane_policy"`

	// RefreshCron is the schedule on which the server reloads goals
	// from disk and re-imports ICS feeds.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	Geometry calendar.Geometry `yaml:"geometry" json:"geometry"`

	ICS []ICSConfig `yaml:"ics" json:"ics"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all
	// endpoints except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

const (
	defaultListen      = "127.0.0.1:8080"
	defaultGoalsPath   = "goals.yaml"
	defaultRefreshCron = "*/15 * * * *"
)

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:      defaultListen,
		GoalsPath:   defaultGoalsPath,
		LogLevel:    string(appLog.LevelInfo),
		LanePolicy:  string(calendar.LanePolicyGreedy),
		RefreshCron: defaultRefreshCron,
		Geometry:    calendar.DefaultGeometry(),
		ICS:         []ICSConfig{},
	}
}

// Normalize fills in missing/zero values so that partially-filled configs
// still behave. A zero geometry block is replaced with the defaults.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.GoalsPath == "" {
		c.GoalsPath = defaultGoalsPath
	}
	if _, err := appLog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		c.LogLevel = string(appLog.LevelInfo)
	}
	if c.LanePolicy == "" {
		c.LanePolicy = string(calendar.LanePolicyGreedy)
	}
	if c.RefreshCron == "" {
		c.RefreshCron = defaultRefreshCron
	}
	if c.Geometry == (calendar.Geometry{}) {
		c.Geometry = calendar.DefaultGeometry()
	}
	if c.ICS == nil {
		c.ICS = []ICSConfig{}
	}
}

// Validate reports settings that Normalize cannot repair.
func (c *Config) Validate() error {
	if _, err := calendar.ParseLanePolicy(c.LanePolicy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Geometry.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := cron.ParseStandard(c.RefreshCron); err != nil {
		return fmt.Errorf("config: refresh schedule %q: %w", c.RefreshCron, err)
	}
	return nil
}

// Policy returns the configured lane policy, falling back to greedy.
func (c *Config) Policy() calendar.LanePolicy {
	p, err := calendar.ParseLanePolicy(c.LanePolicy)
	if err != nil {
		return calendar.LanePolicyGreedy
	}
	return p
}

// GoalsFile resolves GoalsPath relative to the config file's directory.
func (c *Config) GoalsFile(configPath string) string {
	if filepath.IsAbs(c.GoalsPath) || configPath == "" {
		return c.GoalsPath
	}
	return filepath.Join(filepath.Dir(configPath), c.GoalsPath)
}

// Load loads configuration from the given YAML path.
//
// If the file does not exist a default config is written there (0600) and
// returned. Otherwise the YAML is decoded, normalized and validated.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			appLog.Info("wrote default config", "path", path)
			return cfg, nil
		}
		return nil, err
	}

	// Keys absent from the file keep their defaults, including single
	// fields inside the geometry block.
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to path atomically (temp file + rename) with 0600
// permissions, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data)
}

// Save is a convenience method delegating to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
