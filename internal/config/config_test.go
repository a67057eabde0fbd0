package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"fileparse/internal/config"
	"fileparse/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	err = tmpFile.Close()
	require.NoError(t, err)
	return tmpFile.Name()
}

const (
	validYAML = `
server:
  base_url: "https://parser.example.com"
  timeout: 30
ui:
  language: en
  default_mode: ocr
  theme: ocean
watch:
  include: "scan-*"
  output_dir: "/tmp/out"
prefs:
  path: "/tmp/prefs.yaml"
`
	invalidSyntaxYAML = `
server:
  base_url: "http://localhost
ui: [
`
	invalidLanguageYAML = `
ui:
  language: fr
`
	invalidURLYAML = `
server:
  base_url: "localhost:8080"
`
	invalidModeYAML = `
ui:
  default_mode: translate
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		configFile := createTestYAML(t, validYAML)
		cfg, err := config.LoadConfigFile(configFile)

		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "https://parser.example.com", cfg.Server.BaseURL)
		assert.Equal(t, 30, cfg.Server.Timeout)
		assert.Equal(t, "en", cfg.UI.Language)
		assert.Equal(t, types.OCR, cfg.Mode())
		assert.Equal(t, "scan-*", cfg.Watch.Include)
		assert.Equal(t, "/tmp/out", cfg.Watch.OutputDir)
		assert.Equal(t, "/tmp/prefs.yaml", cfg.Prefs.Path)
		// Unset values keep their defaults
		assert.Equal(t, 1200, cfg.UI.CopyFeedbackMS)
		// Theme colors follow the theme name
		assert.Equal(t, "ocean", cfg.Theme.Name)
		assert.Equal(t, "31", cfg.Theme.Primary)
	})

	t.Run("load non-existent file", func(t *testing.T) {
		nonExistentPath := filepath.Join(t.TempDir(), "does_not_exist.yaml")
		cfg, err := config.LoadConfigFile(nonExistentPath)

		require.NoError(t, err, "Loading non-existent file should return default config, not an error")
		require.NotNil(t, cfg)

		defaultCfg := config.New()
		assert.Equal(t, defaultCfg.Server.BaseURL, cfg.Server.BaseURL)
		assert.Equal(t, "zh", cfg.UI.Language)
		assert.Equal(t, types.Convert, cfg.Mode())
		assert.Equal(t, 0, cfg.Server.Timeout)
	})

	t.Run("load file with invalid YAML syntax", func(t *testing.T) {
		configFile := createTestYAML(t, invalidSyntaxYAML)
		_, err := config.LoadConfigFile(configFile)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "error parsing config file")
	})

	t.Run("load file with invalid language", func(t *testing.T) {
		configFile := createTestYAML(t, invalidLanguageYAML)
		_, err := config.LoadConfigFile(configFile)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
		assert.Contains(t, err.Error(), "invalid language setting")
	})

	t.Run("load file with invalid base url", func(t *testing.T) {
		configFile := createTestYAML(t, invalidURLYAML)
		_, err := config.LoadConfigFile(configFile)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid server base_url")
	})

	t.Run("load file with invalid mode", func(t *testing.T) {
		configFile := createTestYAML(t, invalidModeYAML)
		_, err := config.LoadConfigFile(configFile)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid default_mode")
	})
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr bool
	}{
		{"defaults", func(c *config.Config) {}, false},
		{"https server", func(c *config.Config) { c.Server.BaseURL = "https://x.example" }, false},
		{"negative timeout", func(c *config.Config) { c.Server.Timeout = -1 }, true},
		{"ftp server", func(c *config.Config) { c.Server.BaseURL = "ftp://x.example" }, true},
		{"empty prefs path", func(c *config.Config) { c.Prefs.Path = "" }, true},
		{"negative copy feedback", func(c *config.Config) { c.UI.CopyFeedbackMS = -5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	var nilCfg *config.Config
	assert.Error(t, nilCfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("FILEPARSE_SERVER_BASE_URL", "http://10.0.0.5:9000")
	t.Setenv("FILEPARSE_UI_LANGUAGE", "en")
	t.Setenv("FILEPARSE_API_KEY", "  sk-env  ")

	cfg := config.New()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "http://10.0.0.5:9000", cfg.Server.BaseURL)
	assert.Equal(t, "en", cfg.UI.Language)
	assert.Equal(t, "sk-env", cfg.APIKey)
}

func TestApplyEnvRejectsInvalidValues(t *testing.T) {
	t.Setenv("FILEPARSE_UI_LANGUAGE", "de")

	cfg := config.New()
	assert.Error(t, cfg.ApplyEnv())
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.New()
	cfg.Server.BaseURL = "http://parser.internal:8080"
	cfg.UI.Language = "en"
	cfg.APIKey = "never-persisted"
	require.NoError(t, config.SaveConfig(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "never-persisted")

	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://parser.internal:8080", loaded.Server.BaseURL)
	assert.Equal(t, "en", loaded.UI.Language)
	assert.Empty(t, loaded.APIKey)
}

func TestThemes(t *testing.T) {
	assert.Equal(t, config.GetTheme("default"), config.GetTheme("no-such-theme"))
	for _, name := range config.ListThemes() {
		theme := config.GetTheme(name)
		assert.NotEmpty(t, theme["primary"], name)
		assert.NotEmpty(t, theme["error"], name)
	}
}

func TestValidateTheme(t *testing.T) {
	cfg := config.New()
	cfg.UI.Theme = "neon"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme")

	cfg.UI.Theme = "dark"
	assert.NoError(t, cfg.Validate())
}

func TestColorsFollowAppliedTheme(t *testing.T) {
	cfg := config.New()
	assert.Equal(t, config.GetTheme("default"), cfg.Colors())

	cfg.ApplyTheme("light")
	assert.Equal(t, config.GetTheme("light"), cfg.Colors())
	assert.Equal(t, "light", cfg.Theme.Name)
}
