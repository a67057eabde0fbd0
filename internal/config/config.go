package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"fileparse/pkg/types"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// It defines the API server, UI preferences and watch mode parameters.
type Config struct {
	Server struct {
		BaseURL string `yaml:"base_url"` // Parser service root, e.g. http://localhost:8080
		Timeout int    `yaml:"timeout"`  // Request timeout in seconds (0 = no timeout)
	} `yaml:"server"`
	UI struct {
		Language       string `yaml:"language"`         // zh or en; the stored preference wins when set
		DefaultMode    string `yaml:"default_mode"`     // convert or ocr
		CopyFeedbackMS int    `yaml:"copy_feedback_ms"` // How long "Copied!" stays visible
		Theme          string `yaml:"theme"`            // Color theme name
	} `yaml:"ui"`
	Watch struct {
		Include   string `yaml:"include"`    // Optional glob filter on file names
		OutputDir string `yaml:"output_dir"` // Where extracted text is written
	} `yaml:"watch"`
	Prefs struct {
		Path string `yaml:"path"` // Key-value store for the API key and language
	} `yaml:"prefs"`
	Log struct {
		File string `yaml:"file"` // Optional log file
		JSON bool   `yaml:"json"` // Emit JSON log lines
	} `yaml:"log"`
	Theme struct {
		Name     string `yaml:"name"`     // Theme name (default, dark, light, etc.)
		Primary  string `yaml:"primary"`  // Primary color for titles
		Success  string `yaml:"success"`  // Success message color
		Warning  string `yaml:"warning"`  // Warning message color
		Error    string `yaml:"error"`    // Error message color
		Info     string `yaml:"info"`     // Informational message color
		Emphasis string `yaml:"emphasis"` // Emphasis color for labels
		Border   string `yaml:"border"`   // Border color for frames
	} `yaml:"-"`

	// APIKey comes from the environment only and is never written to disk.
	APIKey string `yaml:"-"`
}

// Dir returns the configuration directory (~/.config/fileparse).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "fileparse"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadConfig loads configuration from the default location
// (~/.config/fileparse/config.yaml).
func LoadConfig() (*Config, error) {
	configPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if tempCfg.Server.BaseURL != "" {
		cfg.Server.BaseURL = tempCfg.Server.BaseURL
	}
	cfg.Server.Timeout = tempCfg.Server.Timeout

	if tempCfg.UI.Language != "" {
		cfg.UI.Language = tempCfg.UI.Language
	}
	if tempCfg.UI.DefaultMode != "" {
		cfg.UI.DefaultMode = tempCfg.UI.DefaultMode
	}
	if tempCfg.UI.CopyFeedbackMS != 0 {
		cfg.UI.CopyFeedbackMS = tempCfg.UI.CopyFeedbackMS
	}
	if tempCfg.UI.Theme != "" {
		cfg.UI.Theme = tempCfg.UI.Theme
	}

	cfg.Watch.Include = tempCfg.Watch.Include
	if tempCfg.Watch.OutputDir != "" {
		cfg.Watch.OutputDir = tempCfg.Watch.OutputDir
	}
	if tempCfg.Prefs.Path != "" {
		cfg.Prefs.Path = tempCfg.Prefs.Path
	}
	cfg.Log = tempCfg.Log

	cfg.ApplyTheme(cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overlays FILEPARSE_* environment variables onto the config.
// Recognized: FILEPARSE_SERVER_BASE_URL, FILEPARSE_SERVER_TIMEOUT,
// FILEPARSE_UI_LANGUAGE, FILEPARSE_UI_DEFAULT_MODE, FILEPARSE_PREFS_PATH and
// FILEPARSE_API_KEY.
func (c *Config) ApplyEnv() error {
	v := viper.New()
	v.SetEnvPrefix("FILEPARSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.IsSet("server.base_url") {
		c.Server.BaseURL = v.GetString("server.base_url")
	}
	if v.IsSet("server.timeout") {
		c.Server.Timeout = v.GetInt("server.timeout")
	}
	if v.IsSet("ui.language") {
		c.UI.Language = v.GetString("ui.language")
	}
	if v.IsSet("ui.default_mode") {
		c.UI.DefaultMode = v.GetString("ui.default_mode")
	}
	if v.IsSet("prefs.path") {
		c.Prefs.Path = v.GetString("prefs.path")
	}
	if v.IsSet("api_key") {
		c.APIKey = strings.TrimSpace(v.GetString("api_key"))
	}

	return c.Validate()
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Server.BaseURL = "http://localhost:8080"
	cfg.Server.Timeout = 0 // Wait as long as the server needs

	cfg.UI.Language = "zh"
	cfg.UI.DefaultMode = types.Convert.String()
	cfg.UI.CopyFeedbackMS = 1200
	cfg.UI.Theme = "default"

	cfg.Watch.OutputDir = "parsed"

	if dir, err := Dir(); err == nil {
		cfg.Prefs.Path = filepath.Join(dir, "prefs.yaml")
	} else {
		cfg.Prefs.Path = "prefs.yaml"
	}

	cfg.ApplyTheme(cfg.UI.Theme)
	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
// Returns error if any settings are invalid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server base_url: %q", c.Server.BaseURL)
	}

	if c.Server.Timeout < 0 {
		return fmt.Errorf("server timeout must be >= 0 seconds")
	}

	validLanguages := map[string]bool{"zh": true, "en": true}
	if !validLanguages[c.UI.Language] {
		return fmt.Errorf("invalid language setting: %s", c.UI.Language)
	}

	if _, err := types.ParseMode(c.UI.DefaultMode); err != nil {
		return fmt.Errorf("invalid default_mode: %w", err)
	}

	knownTheme := false
	for _, name := range ListThemes() {
		if c.UI.Theme == name {
			knownTheme = true
			break
		}
	}
	if !knownTheme {
		return fmt.Errorf("unknown theme %q (available: %s)", c.UI.Theme, strings.Join(ListThemes(), ", "))
	}

	if c.UI.CopyFeedbackMS < 0 {
		return fmt.Errorf("copy_feedback_ms must be >= 0")
	}

	if c.Prefs.Path == "" {
		return fmt.Errorf("prefs path cannot be empty")
	}

	return nil
}

// Mode returns the configured default mode.
func (c *Config) Mode() types.Mode {
	m, _ := types.ParseMode(c.UI.DefaultMode)
	return m
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// GetTheme returns a predefined theme configuration by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	themes := map[string]map[string]string{
		"default": {
			"primary":  "213", // Purple
			"success":  "114", // Green
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "39",  // Blue
			"emphasis": "212", // Light Pink
			"border":   "213", // Purple
		},
		"dark": {
			"primary":  "105", // Dark Blue
			"success":  "78",  // Dark Green
			"warning":  "214", // Dark Yellow
			"error":    "160", // Dark Red
			"info":     "33",  // Dark Blue
			"emphasis": "147", // Light Blue
			"border":   "105", // Dark Blue
		},
		"light": {
			"primary":  "135", // Light Purple
			"success":  "150", // Light Green
			"warning":  "222", // Light Yellow
			"error":    "210", // Light Red
			"info":     "117", // Light Blue
			"emphasis": "219", // Very Light Pink
			"border":   "135", // Light Purple
		},
		"monochrome": {
			"primary":  "245", // Light Grey
			"success":  "252", // White
			"warning":  "241", // Medium Grey
			"error":    "232", // Black
			"info":     "248", // Grey
			"emphasis": "255", // Bright White
			"border":   "245", // Light Grey
		},
		"ocean": {
			"primary":  "31",  // Teal
			"success":  "36",  // Green-Blue
			"warning":  "220", // Yellow
			"error":    "196", // Red
			"info":     "33",  // Blue
			"emphasis": "51",  // Cyan
			"border":   "31",  // Teal
		},
	}

	if theme, exists := themes[name]; exists {
		return theme
	}

	return themes["default"]
}

// ApplyTheme sets the theme in the configuration.
// It updates the theme colors based on the theme name.
func (c *Config) ApplyTheme(name string) {
	theme := GetTheme(name)

	c.Theme.Name = name
	c.Theme.Primary = theme["primary"]
	c.Theme.Success = theme["success"]
	c.Theme.Warning = theme["warning"]
	c.Theme.Error = theme["error"]
	c.Theme.Info = theme["info"]
	c.Theme.Emphasis = theme["emphasis"]
	c.Theme.Border = theme["border"]
}

// Colors returns the resolved theme colors keyed by role.
func (c *Config) Colors() map[string]string {
	return map[string]string{
		"primary":  c.Theme.Primary,
		"success":  c.Theme.Success,
		"warning":  c.Theme.Warning,
		"error":    c.Theme.Error,
		"info":     c.Theme.Info,
		"emphasis": c.Theme.Emphasis,
		"border":   c.Theme.Border,
	}
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "light", "monochrome", "ocean"}
}
