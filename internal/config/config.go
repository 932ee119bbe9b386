// Package config loads addonbump settings with koanf.
//
// Sources are applied in increasing priority: built-in defaults, the user
// config (~/.config/addonbump/config.yml), the project config found in the
// search root (.addonbump.yml, or the legacy .addonbump.json), ADDONBUMP_*
// environment variables, and finally command-line flags applied by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/bcomnes/addonbump/internal/logging"
)

const (
	// EnvPrefix is the prefix for environment overrides, e.g. ADDONBUMP_LOG_LEVEL.
	EnvPrefix = "ADDONBUMP_"

	// ProjectConfigName is looked up in the search root.
	ProjectConfigName = ".addonbump.yml"
	// LegacyProjectConfigName is read when no YAML project config exists.
	LegacyProjectConfigName = ".addonbump.json"
)

// Configuration holds the resolved settings for one run.
type Configuration struct {
	AddonPattern     string `koanf:"addon_pattern"`
	ChangelogPattern string `koanf:"changelog_pattern"`
	AddDate          bool   `koanf:"add_date"`
	UpdateNews       bool   `koanf:"update_news"`
	// RequireChangelog turns a missing changelog into a hard error instead of a warning.
	RequireChangelog bool   `koanf:"require_changelog"`
	Commit           bool   `koanf:"commit"`
	Tag              bool   `koanf:"tag"`
	LogLevel         string `koanf:"log_level"`
}

// LoadOptions configures where configuration is read from.
type LoadOptions struct {
	// Root is the directory searched for the project config.
	Root string
	// ConfigPath overrides the project config lookup.
	ConfigPath string
	// UserConfigPath overrides ~/.config/addonbump/config.yml. Use "-" to skip it.
	UserConfigPath string
}

// Load reads every configuration source and returns the merged result.
// Values are not validated here; callers run Validate after applying their
// own overrides.
func Load(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// GetDefaults returns the built-in value of every key.
func GetDefaults() map[string]any {
	return map[string]any{
		"addon_pattern":     "addon.xml.in",
		"changelog_pattern": "changelog.txt",
		"add_date":          false,
		"update_news":       false,
		"require_changelog": false,
		"commit":            false,
		"tag":               true,
		"log_level":         "INFO",
	}
}

// UserConfigPath returns the XDG location of the user config file.
func UserConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "addonbump", "config.yml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "addonbump", "config.yml"), nil
}

func loadUserConfig(k *koanf.Koanf, override string) error {
	path := override
	if path == "-" {
		return nil
	}
	if path == "" {
		var err error
		if path, err = UserConfigPath(); err != nil {
			logging.Debug("skipping user config: %v", err)
			return nil
		}
	}
	if !fileExists(path) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading user config %s: %w", path, err)
	}
	logging.Debug("loaded user config %s", path)
	return nil
}

func loadProjectConfig(k *koanf.Koanf, opts LoadOptions) error {
	if opts.ConfigPath != "" {
		if !fileExists(opts.ConfigPath) {
			return fmt.Errorf("config file %s does not exist", opts.ConfigPath)
		}
		return loadFile(k, opts.ConfigPath)
	}

	root := opts.Root
	if root == "" {
		root = "."
	}

	yamlPath := filepath.Join(root, ProjectConfigName)
	legacyPath := filepath.Join(root, LegacyProjectConfigName)

	switch {
	case fileExists(yamlPath):
		if fileExists(legacyPath) {
			logging.Warn("legacy config %s ignored, using %s", legacyPath, yamlPath)
		}
		return loadFile(k, yamlPath)
	case fileExists(legacyPath):
		logging.Warn("using deprecated JSON config %s; rename it to %s", legacyPath, ProjectConfigName)
		return loadFile(k, legacyPath)
	}
	return nil
}

func loadFile(k *koanf.Koanf, path string) error {
	var err error
	if strings.HasSuffix(path, ".json") {
		err = k.Load(file.Provider(path), json.Parser())
	} else {
		err = k.Load(file.Provider(path), yaml.Parser())
	}
	if err != nil {
		return fmt.Errorf("loading project config %s: %w", path, err)
	}
	logging.Debug("loaded project config %s", path)
	return nil
}

// Validate checks pattern syntax and the log level.
func Validate(cfg *Configuration) error {
	for name, pattern := range map[string]string{
		"addon_pattern":     cfg.AddonPattern,
		"changelog_pattern": cfg.ChangelogPattern,
	} {
		if pattern == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("%s %q: %w", name, pattern, err)
		}
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// envTransform maps ADDONBUMP_ADD_DATE to add_date.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
