package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/mitchellh/go-homedir"

	"github.com/starford/navboard/internal/favicon"
	"github.com/starford/navboard/internal/tracker"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Content ContentConfig     `yaml:"content"`
	Prefs   PrefsConfig       `yaml:"prefs"`
	Favicon FaviconConfig     `yaml:"favicon"`
	Tracker TrackerConfig     `yaml:"tracker"`
	Search  SearchConfig      `yaml:"search"`
	Layout  LayoutConfig      `yaml:"layout"`
	Auth    AuthConfig        `yaml:"auth"`
}

// Validate expands "~" in configured paths and validates every section.
func (c *Config) Validate() error {
	if err := c.expandPaths(); err != nil {
		return err
	}
	for _, v := range []interface{ Validate() error }{
		&c.App, &c.Content, &c.Favicon, &c.Tracker, &c.Search, &c.Layout, &c.Auth,
	} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Content.Path, &c.Content.ExportDir, &c.Prefs.Path, &c.Favicon.CacheDir} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("config: expand %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ContentConfig points at the bookmarks file.
type ContentConfig struct {
	Path          string        `yaml:"path"`
	Watch         bool          `yaml:"watch"`
	WatchDebounce time.Duration `yaml:"watch_debounce"`
	ExportDir     string        `yaml:"export_dir"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.WatchDebounce, validation.Min(time.Duration(0))),
	)
}

// PrefsConfig holds the preference database location. An empty path keeps
// preferences in memory.
type PrefsConfig struct {
	Path string `yaml:"path"`
}

// FaviconConfig controls icon resolution.
type FaviconConfig struct {
	Sources  []string      `yaml:"sources"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheDir string        `yaml:"cache_dir"`
}

// Validate validates the favicon configuration.
func (c *FaviconConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Sources, validation.Required),
		validation.Field(&c.Timeout, validation.Required, validation.Min(100*time.Millisecond)),
		validation.Field(&c.CacheDir, validation.Required),
	)
}

// TrackerConfig holds the scroll detector's layout constants.
type TrackerConfig struct {
	HeaderHeight float64       `yaml:"header_height"`
	Lookahead    float64       `yaml:"lookahead"`
	TopThreshold float64       `yaml:"top_threshold"`
	SelectMargin float64       `yaml:"select_margin"`
	Throttle     time.Duration `yaml:"throttle"`
}

// Validate validates the tracker configuration.
func (c *TrackerConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.HeaderHeight, validation.Min(0.0)),
		validation.Field(&c.Lookahead, validation.Min(0.0)),
		validation.Field(&c.TopThreshold, validation.Min(0.0)),
		validation.Field(&c.SelectMargin, validation.Min(0.0)),
		validation.Field(&c.Throttle, validation.Required),
	)
}

// SearchConfig holds the search input debounce.
type SearchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Validate validates the search configuration.
func (c *SearchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Debounce, validation.Required),
	)
}

// LayoutConfig holds responsive layout settings.
type LayoutConfig struct {
	MobileBreakpoint   int           `yaml:"mobile_breakpoint"`
	ResizeDebounce     time.Duration `yaml:"resize_debounce"`
	BackToTopThreshold float64       `yaml:"back_to_top_threshold"`
}

// Validate validates the layout configuration.
func (c *LayoutConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MobileBreakpoint, validation.Required, validation.Min(1)),
		validation.Field(&c.ResizeDebounce, validation.Required),
		validation.Field(&c.BackToTopThreshold, validation.Min(0.0)),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local use.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// TrackerOptions converts the tracker and layout sections into tracker
// settings.
func (c *Config) TrackerOptions() tracker.Config {
	return tracker.Config{
		HeaderHeight:       c.Tracker.HeaderHeight,
		Lookahead:          c.Tracker.Lookahead,
		TopThreshold:       c.Tracker.TopThreshold,
		SelectMargin:       c.Tracker.SelectMargin,
		BackToTopThreshold: c.Layout.BackToTopThreshold,
	}
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	tc := tracker.DefaultConfig()
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Content: ContentConfig{
			Path:          "./bookmarks.yaml",
			Watch:         true,
			WatchDebounce: 200 * time.Millisecond,
			ExportDir:     "./exports",
		},
		Prefs: PrefsConfig{
			Path: "./navboard.db",
		},
		Favicon: FaviconConfig{
			Sources:  favicon.DefaultSources,
			Timeout:  5 * time.Second,
			CacheDir: "./cache/icons",
		},
		Tracker: TrackerConfig{
			HeaderHeight: tc.HeaderHeight,
			Lookahead:    tc.Lookahead,
			TopThreshold: tc.TopThreshold,
			SelectMargin: tc.SelectMargin,
			Throttle:     100 * time.Millisecond,
		},
		Search: SearchConfig{
			Debounce: 200 * time.Millisecond,
		},
		Layout: LayoutConfig{
			MobileBreakpoint:   768,
			ResizeDebounce:     250 * time.Millisecond,
			BackToTopThreshold: tc.BackToTopThreshold,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
