package tyfmt

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// DefaultConfigFile is the configuration file looked up when none is given
const DefaultConfigFile = "tyfmt.yaml"

// Environment variables overriding the configuration file
const (
	EnvMaxWidth    = "TYFMT_MAX_WIDTH"
	EnvIndentWidth = "TYFMT_INDENT_WIDTH"
)

// Config represents the tyfmt configuration
type Config struct {
	MaxWidth    int            `yaml:"max_width"`
	IndentWidth int            `yaml:"indent_width"`
	Markdown    MarkdownConfig `yaml:"markdown"`
	Extensions  []string       `yaml:"extensions"`
}

// MarkdownConfig selects the fenced code blocks formatted in Markdown files
type MarkdownConfig struct {
	Languages []string `yaml:"languages"`
}

// LoadConfig loads configuration from file. A missing file yields the
// default configuration.
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	var config Config

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config = *getDefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		// Parse YAML with strict mode to detect unknown fields
		err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	expandConfigEnvVars(&config)

	err = applyEnvOverrides(&config)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	applyDefaults(&config)

	return &config, nil
}

func validateConfig(config *Config) error {
	if config.MaxWidth < 0 {
		return fmt.Errorf("%w: max_width must not be negative, got %d", ErrConfigValidation, config.MaxWidth)
	}

	if config.IndentWidth < 0 || config.IndentWidth > 8 {
		return fmt.Errorf("%w: indent_width must be between 0 and 8, got %d", ErrConfigValidation, config.IndentWidth)
	}

	if config.MaxWidth > 0 && config.IndentWidth >= config.MaxWidth {
		return fmt.Errorf("%w: indent_width %d must be smaller than max_width %d", ErrConfigValidation, config.IndentWidth, config.MaxWidth)
	}

	for _, lang := range config.Markdown.Languages {
		if strings.TrimSpace(lang) == "" || strings.ContainsAny(lang, " \t`") {
			return fmt.Errorf("%w: invalid markdown language '%s'", ErrConfigValidation, lang)
		}
	}

	for _, ext := range config.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: extension '%s' must start with a dot", ErrConfigValidation, ext)
		}

		if strings.EqualFold(ext, ".md") || strings.EqualFold(ext, ".markdown") {
			return fmt.Errorf("%w: extension '%s' is reserved for markdown files", ErrConfigValidation, ext)
		}
	}

	return nil
}

func getDefaultConfig() *Config {
	return &Config{
		MaxWidth:    80,
		IndentWidth: 2,
		Markdown: MarkdownConfig{
			Languages: []string{"typc"},
		},
		Extensions: []string{".typc"},
	}
}

// applyDefaults fills missing values. A zero width means the default.
func applyDefaults(config *Config) {
	defaults := getDefaultConfig()

	if config.MaxWidth == 0 {
		config.MaxWidth = defaults.MaxWidth
	}

	if config.IndentWidth == 0 {
		config.IndentWidth = defaults.IndentWidth
	}

	if len(config.Markdown.Languages) == 0 {
		config.Markdown.Languages = defaults.Markdown.Languages
	}

	if len(config.Extensions) == 0 {
		config.Extensions = defaults.Extensions
	}
}

func applyEnvOverrides(config *Config) error {
	overrides := []struct {
		name  string
		value *int
	}{
		{EnvMaxWidth, &config.MaxWidth},
		{EnvIndentWidth, &config.IndentWidth},
	}

	for _, o := range overrides {
		raw, ok := os.LookupEnv(o.name)
		if !ok || raw == "" {
			continue
		}

		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer, got %q", ErrConfigValidation, o.name, raw)
		}

		*o.value = n
	}

	return nil
}

// loadEnvFiles loads environment variables from .env file
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvPattern = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvPattern  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands ${VAR} and $VAR references
func expandEnvVars(s string) string {
	s = bracedEnvPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

func expandConfigEnvVars(config *Config) {
	for i, lang := range config.Markdown.Languages {
		config.Markdown.Languages[i] = expandEnvVars(lang)
	}

	for i, ext := range config.Extensions {
		config.Extensions[i] = expandEnvVars(ext)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
