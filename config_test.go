package tyfmt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), DefaultConfigFile)

	err := os.WriteFile(configPath, []byte(content), 0644)
	assert.NoError(t, err)

	return configPath
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)
	assert.Equal(t, getDefaultConfig(), config)
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
max_width: 100
indent_width: 4
markdown:
  languages: ["typc", "typst-code"]
extensions: [".typc", ".typ"]
`)

	config, err := LoadConfig(configPath)
	assert.NoError(t, err)
	assert.Equal(t, 100, config.MaxWidth)
	assert.Equal(t, 4, config.IndentWidth)
	assert.Equal(t, []string{"typc", "typst-code"}, config.Markdown.Languages)
	assert.Equal(t, []string{".typc", ".typ"}, config.Extensions)
}

func TestLoadConfig_PartialConfigGetsDefaults(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, "max_width: 60\n"))
	assert.NoError(t, err)
	assert.Equal(t, 60, config.MaxWidth)
	assert.Equal(t, 2, config.IndentWidth)
	assert.Equal(t, []string{"typc"}, config.Markdown.Languages)
	assert.Equal(t, []string{".typc"}, config.Extensions)
}

func TestLoadConfig_StrictMode_UnknownKeys(t *testing.T) {
	configPath := writeConfig(t, `
max_width: 80
line_width: 100
markdown:
  languages: ["typc"]
  fence: "~~~"
`)

	_, err := LoadConfig(configPath)
	assert.Error(t, err, "expected error for unknown keys in strict mode")
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{"negative width", "max_width: -1\n", "max_width must not be negative"},
		{"indent too large", "indent_width: 12\n", "indent_width must be between 0 and 8"},
		{"indent wider than line", "max_width: 4\nindent_width: 4\n", "must be smaller than max_width"},
		{"blank language", "markdown:\n  languages: [\" \"]\n", "invalid markdown language"},
		{"extension without dot", "extensions: [\"typc\"]\n", "must start with a dot"},
		{"markdown extension", "extensions: [\".md\"]\n", "reserved for markdown files"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfigValidation))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvMaxWidth, "120")
	t.Setenv(EnvIndentWidth, "3")

	config, err := LoadConfig(writeConfig(t, "max_width: 60\nindent_width: 2\n"))
	assert.NoError(t, err)
	assert.Equal(t, 120, config.MaxWidth)
	assert.Equal(t, 3, config.IndentWidth)
}

func TestLoadConfig_InvalidEnvOverride(t *testing.T) {
	t.Setenv(EnvMaxWidth, "wide")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigValidation))
}

func TestLoadConfig_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TYFMT_TEST_LANG", "typst")
	t.Setenv("TYFMT_TEST_EXT", "typ")

	config, err := LoadConfig(writeConfig(t, `
markdown:
  languages: ["${TYFMT_TEST_LANG}-code"]
extensions: [".$TYFMT_TEST_EXT"]
`))
	assert.NoError(t, err)
	assert.Equal(t, []string{"typst-code"}, config.Markdown.Languages)
	assert.Equal(t, []string{".typ"}, config.Extensions)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TYFMT_TEST_NAME", "value")

	tests := []struct {
		input    string
		expected string
	}{
		{"${TYFMT_TEST_NAME}", "value"},
		{"$TYFMT_TEST_NAME", "value"},
		{"pre-${TYFMT_TEST_NAME}-post", "pre-value-post"},
		{"plain", "plain"},
		{"${TYFMT_TEST_UNSET}", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}
