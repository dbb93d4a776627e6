// Package config handles configuration loading and defaults for weekplan.
// Configuration is loaded from XDG-compliant paths (typically
// ~/.config/weekplan/config.yaml). Secrets come from the environment, with
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"weekplan/internal/fsutil"
	"weekplan/internal/schedule"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppName names the config and data directories.
const AppName = "weekplan"

// EnvJWTSecret holds the token signing secret.
const EnvJWTSecret = "WEEKPLAN_JWT_SECRET"

// Config represents the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.weekplan)
	DataDir string `yaml:"data_dir,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty"`

	// Grid sets the hour window of the schedule grid
	Grid GridConfig `yaml:"grid,omitempty"`

	// Server configures `weekplan serve`
	Server ServerConfig `yaml:"server,omitempty"`

	// Logging configures the zap logger
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// ThemeConfig defines color and style settings.
type ThemeConfig struct {
	// Primary color for focused elements (hex, e.g., "#FF5733")
	Primary string `yaml:"primary,omitempty"`

	// Accent color for highlights (hex)
	Accent string `yaml:"accent,omitempty"`

	// Muted color for secondary text (hex)
	Muted string `yaml:"muted,omitempty"`

	// Background color (hex)
	Background string `yaml:"background,omitempty"`

	// Text color (hex)
	Text string `yaml:"text,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "tab", "j,down"
type KeysConfig struct {
	// Global keys
	Quit string `yaml:"quit,omitempty"` // default: "q,ctrl+c"
	Help string `yaml:"help,omitempty"` // default: "?"
	Undo string `yaml:"undo,omitempty"` // default: "ctrl+z,u"
	Redo string `yaml:"redo,omitempty"` // default: "ctrl+y"

	// View keys
	ViewDaily  string `yaml:"view_daily,omitempty"`  // default: "1"
	ViewWeekly string `yaml:"view_weekly,omitempty"` // default: "2"
	ViewGrid   string `yaml:"view_grid,omitempty"`   // default: "3"
	CycleView  string `yaml:"cycle_view,omitempty"`  // default: "tab"
	PrevDay    string `yaml:"prev_day,omitempty"`    // default: "h,left"
	NextDay    string `yaml:"next_day,omitempty"`    // default: "l,right"

	// Navigation keys
	Up     string `yaml:"up,omitempty"`     // default: "k,up"
	Down   string `yaml:"down,omitempty"`   // default: "j,down"
	Top    string `yaml:"top,omitempty"`    // default: "g"
	Bottom string `yaml:"bottom,omitempty"` // default: "G"

	// Activity keys
	AddActivity    string `yaml:"add_activity,omitempty"`    // default: "a"
	EditActivity   string `yaml:"edit_activity,omitempty"`   // default: "e,enter"
	DeleteActivity string `yaml:"delete_activity,omitempty"` // default: "x"

	// Schedule keys
	NextSchedule      string `yaml:"next_schedule,omitempty"`      // default: "]"
	PrevSchedule      string `yaml:"prev_schedule,omitempty"`      // default: "["
	NewSchedule       string `yaml:"new_schedule,omitempty"`       // default: "n"
	DuplicateSchedule string `yaml:"duplicate_schedule,omitempty"` // default: "c"
	DeleteSchedule    string `yaml:"delete_schedule,omitempty"`    // default: "X"
	ClearAll          string `yaml:"clear_all,omitempty"`          // default: "ctrl+x"
	Export            string `yaml:"export,omitempty"`             // default: "E"

	// Input keys
	Confirm   string `yaml:"confirm,omitempty"`    // default: "enter"
	Cancel    string `yaml:"cancel,omitempty"`     // default: "esc"
	NextField string `yaml:"next_field,omitempty"` // default: "tab"
	PrevField string `yaml:"prev_field,omitempty"` // default: "shift+tab"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// ConfirmDeletions shows confirmation dialogs before deleting items
	ConfirmDeletions bool `yaml:"confirm_deletions,omitempty"` // default: true

	// ConfirmClear asks before wiping every schedule
	ConfirmClear bool `yaml:"confirm_clear,omitempty"` // default: true

	// DefaultView is the view mode used when the stored one is missing
	DefaultView string `yaml:"default_view,omitempty"` // default: "weekly"

	// ShowSeedData seeds the sample week on first run
	ShowSeedData bool `yaml:"show_seed_data,omitempty"` // default: true

	// NarrowLayoutThreshold is the terminal width below which the weekly
	// view stacks days instead of laying them out in columns
	NarrowLayoutThreshold int `yaml:"narrow_layout_threshold,omitempty"` // default: 100
}

// GridConfig sets the visible hour window of the grid view.
type GridConfig struct {
	StartHour int `yaml:"start_hour,omitempty"` // default: 8
	Slots     int `yaml:"slots,omitempty"`      // default: 11
}

// ServerConfig configures the HTTP shell.
type ServerConfig struct {
	Addr                 string   `yaml:"addr,omitempty"`                    // default: "127.0.0.1:8080"
	TokenTTLHours        int      `yaml:"token_ttl_hours,omitempty"`         // default: 24
	MaxRequestsPerSecond int      `yaml:"max_requests_per_second,omitempty"` // default: 20
	AllowedOrigins       []string `yaml:"allowed_origins,omitempty"`         // default: none
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level,omitempty"` // default: "info"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Theme: ThemeConfig{
			Primary:    "#2563EB", // Blue
			Accent:     "#3B82F6", // Sky
			Muted:      "#6B7280", // Gray
			Background: "",        // Terminal default
			Text:       "",        // Terminal default
		},
		Keys: KeysConfig{
			// Defaults are empty strings, which means use built-in defaults
		},
		UX: UXConfig{
			ConfirmDeletions:      true,
			ConfirmClear:          true,
			DefaultView:           string(schedule.ViewWeekly),
			ShowSeedData:          true,
			NarrowLayoutThreshold: 100,
		},
		Grid: GridConfig{
			StartHour: 8,
			Slots:     11,
		},
		Server: ServerConfig{
			Addr:                 "127.0.0.1:8080",
			TokenTTLHours:        24,
			MaxRequestsPerSecond: 20,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// defaultDataDir returns the default data directory path.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(home, "."+AppName)
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}

	// Fall back to ~/.config/weekplan
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// configPath returns the path to the config file.
func configPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults.
// If no config file exists, returns default configuration.
func Load() (*Config, error) {
	cfg := Default()

	path := configPath()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; fall back to conservative merge if this fails

	cfg.mergeFromYAML(&userCfg, &doc)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings that cannot be used.
func (c *Config) Validate() error {
	if !schedule.ViewMode(c.UX.DefaultView).Valid() {
		return fmt.Errorf("ux.default_view: unknown view %q", c.UX.DefaultView)
	}
	if c.Grid.StartHour < 0 || c.Grid.StartHour > 23 {
		return fmt.Errorf("grid.start_hour: %d is not an hour", c.Grid.StartHour)
	}
	if c.Grid.Slots < 1 || c.Grid.Slots > 24 {
		return fmt.Errorf("grid.slots: %d is out of range 1-24", c.Grid.Slots)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	return nil
}

// mergeNonEmpty applies non-empty values from other to c.
// It intentionally does not touch booleans or slices (those require presence-aware merging).
func (c *Config) mergeNonEmpty(other *Config) {
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}

	mergeString(&c.Theme.Primary, other.Theme.Primary)
	mergeString(&c.Theme.Accent, other.Theme.Accent)
	mergeString(&c.Theme.Muted, other.Theme.Muted)
	mergeString(&c.Theme.Background, other.Theme.Background)
	mergeString(&c.Theme.Text, other.Theme.Text)

	k, o := &c.Keys, &other.Keys
	mergeString(&k.Quit, o.Quit)
	mergeString(&k.Help, o.Help)
	mergeString(&k.Undo, o.Undo)
	mergeString(&k.Redo, o.Redo)
	mergeString(&k.ViewDaily, o.ViewDaily)
	mergeString(&k.ViewWeekly, o.ViewWeekly)
	mergeString(&k.ViewGrid, o.ViewGrid)
	mergeString(&k.CycleView, o.CycleView)
	mergeString(&k.PrevDay, o.PrevDay)
	mergeString(&k.NextDay, o.NextDay)
	mergeString(&k.Up, o.Up)
	mergeString(&k.Down, o.Down)
	mergeString(&k.Top, o.Top)
	mergeString(&k.Bottom, o.Bottom)
	mergeString(&k.AddActivity, o.AddActivity)
	mergeString(&k.EditActivity, o.EditActivity)
	mergeString(&k.DeleteActivity, o.DeleteActivity)
	mergeString(&k.NextSchedule, o.NextSchedule)
	mergeString(&k.PrevSchedule, o.PrevSchedule)
	mergeString(&k.NewSchedule, o.NewSchedule)
	mergeString(&k.DuplicateSchedule, o.DuplicateSchedule)
	mergeString(&k.DeleteSchedule, o.DeleteSchedule)
	mergeString(&k.ClearAll, o.ClearAll)
	mergeString(&k.Export, o.Export)
	mergeString(&k.Confirm, o.Confirm)
	mergeString(&k.Cancel, o.Cancel)
	mergeString(&k.NextField, o.NextField)
	mergeString(&k.PrevField, o.PrevField)

	mergeString(&c.UX.DefaultView, other.UX.DefaultView)
	if other.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = other.UX.NarrowLayoutThreshold
	}

	if other.Grid.StartHour > 0 {
		c.Grid.StartHour = other.Grid.StartHour
	}
	if other.Grid.Slots > 0 {
		c.Grid.Slots = other.Grid.Slots
	}

	mergeString(&c.Server.Addr, other.Server.Addr)
	if other.Server.TokenTTLHours > 0 {
		c.Server.TokenTTLHours = other.Server.TokenTTLHours
	}
	if other.Server.MaxRequestsPerSecond > 0 {
		c.Server.MaxRequestsPerSecond = other.Server.MaxRequestsPerSecond
	}

	mergeString(&c.Logging.Level, strings.ToLower(other.Logging.Level))
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func (c *Config) mergeFromYAML(other *Config, doc *yaml.Node) {
	c.mergeNonEmpty(other)

	// Fall back to conservative behavior if we can't inspect presence.
	if doc == nil || len(doc.Content) == 0 {
		if len(other.Server.AllowedOrigins) > 0 {
			c.Server.AllowedOrigins = other.Server.AllowedOrigins
		}
		return
	}

	// Re-apply booleans, slices and zero-valid ints only when present in YAML.
	if yamlHasPath(doc, "ux", "confirm_deletions") {
		c.UX.ConfirmDeletions = other.UX.ConfirmDeletions
	}
	if yamlHasPath(doc, "ux", "confirm_clear") {
		c.UX.ConfirmClear = other.UX.ConfirmClear
	}
	if yamlHasPath(doc, "ux", "show_seed_data") {
		c.UX.ShowSeedData = other.UX.ShowSeedData
	}
	if yamlHasPath(doc, "grid", "start_hour") {
		c.Grid.StartHour = other.Grid.StartHour
	}
	if yamlHasPath(doc, "server", "allowed_origins") {
		c.Server.AllowedOrigins = other.Server.AllowedOrigins
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	// Document -> root mapping.
	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			v := n.Content[i+1]
			if k.Kind == yaml.ScalarNode && k.Value == key {
				next = v
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := configPath()
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), fsutil.DirPerm); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(path, data, fsutil.FilePerm)
}

// GetDataDir returns the resolved data directory path.
func (c *Config) GetDataDir() string {
	if c.DataDir != "" {
		// Expand ~ if present
		if c.DataDir == "~" {
			home, err := os.UserHomeDir()
			if err == nil {
				return home
			}
			return c.DataDir
		}

		if strings.HasPrefix(c.DataDir, "~/") || strings.HasPrefix(c.DataDir, `~\`) {
			home, err := os.UserHomeDir()
			if err == nil {
				trimmed := strings.TrimPrefix(c.DataDir, "~/")
				trimmed = strings.TrimPrefix(trimmed, `~\`)
				trimmed = strings.TrimPrefix(trimmed, `\`)
				return filepath.Join(home, trimmed)
			}
		}
		return c.DataDir
	}
	return defaultDataDir()
}

// LoadEnv loads .env files into the process environment. Variables already
// set win over file values, and missing files are skipped. With no paths,
// ./.env and <config dir>/.env are tried.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
		if dir := configDir(); dir != "" {
			paths = append(paths, filepath.Join(dir, ".env"))
		}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// JWTSecret returns the token signing secret from the environment.
func JWTSecret() string {
	return os.Getenv(EnvJWTSecret)
}
