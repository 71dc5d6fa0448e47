/*
Package config manages TOML config for WordServe services.
*/
package config

import (
	"math"
	"os"
	"path/filepath"

	"github.com/bastiangx/wordserve/internal/utils"
	"github.com/bastiangx/wordserve/pkg/dictionary"
	"github.com/charmbracelet/log"
)

// FileName is the name of the config file inside the config dir.
const FileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	CLI    CliConfig    `toml:"cli"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit     int    `toml:"max_limit"`
	MinPrefix    int    `toml:"min_prefix"`
	MaxPrefix    int    `toml:"max_prefix"`
	DefaultLimit int    `toml:"default_limit"`
	HTTPAddr     string `toml:"http_addr"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	WordsFile string `toml:"words_file"`
	BaseScore int    `toml:"base_score"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit    int  `toml:"default_limit"`
	DefaultMinLen   int  `toml:"default_min_len"`
	DefaultMaxLen   int  `toml:"default_max_len"`
	DefaultNoFilter bool `toml:"default_no_filter"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", utils.AppDirName)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", utils.AppDirName)
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, FileName), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxLimit:     64,
			MinPrefix:    1,
			MaxPrefix:    60,
			DefaultLimit: 10,
			HTTPAddr:     "",
		},
		Dict: DictConfig{
			WordsFile: "words.txt",
			BaseScore: dictionary.BaseScore,
		},
		CLI: CliConfig{
			DefaultLimit:    5,
			DefaultMinLen:   1,
			DefaultMaxLen:   24,
			DefaultNoFilter: false,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.ReadTOML(configPath, config); err != nil {
		log.Warnf("Attempting partial recovery of %s", configPath)
		return tryPartialParse(configPath)
	}
	return config.normalize(), nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	sections, err := utils.ReadLooseTOML(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := sections["server"]; ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := sections["dict"]; ok {
		extractDictConfig(section, &config.Dict)
	}
	if section, ok := sections["cli"]; ok {
		extractCliConfig(section, &config.CLI)
	}
	return config.normalize(), nil
}

// normalize replaces values that cannot be served with defaults.
func (c *Config) normalize() *Config {
	defaults := DefaultConfig()
	if c.Server.MaxLimit > math.MaxUint16 {
		log.Warnf("server.max_limit %d exceeds %d, clamping", c.Server.MaxLimit, math.MaxUint16)
		c.Server.MaxLimit = math.MaxUint16
	}
	if c.Server.MaxLimit < 1 {
		log.Warnf("Invalid server.max_limit %d, using %d", c.Server.MaxLimit, defaults.Server.MaxLimit)
		c.Server.MaxLimit = defaults.Server.MaxLimit
	}
	if c.Server.DefaultLimit < 1 || c.Server.DefaultLimit > c.Server.MaxLimit {
		c.Server.DefaultLimit = min(defaults.Server.DefaultLimit, c.Server.MaxLimit)
	}
	if c.Server.MinPrefix < 0 {
		c.Server.MinPrefix = defaults.Server.MinPrefix
	}
	if c.Server.MaxPrefix < c.Server.MinPrefix {
		log.Warnf("server.max_prefix %d is below min_prefix %d, using %d", c.Server.MaxPrefix, c.Server.MinPrefix, defaults.Server.MaxPrefix)
		c.Server.MaxPrefix = defaults.Server.MaxPrefix
	}
	if c.CLI.DefaultLimit < 1 {
		c.CLI.DefaultLimit = defaults.CLI.DefaultLimit
	}
	return c
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data utils.Section, server *ServerConfig) {
	if val, ok := data.Int("max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := data.Int("min_prefix"); ok {
		server.MinPrefix = val
	}
	if val, ok := data.Int("max_prefix"); ok {
		server.MaxPrefix = val
	}
	if val, ok := data.Int("default_limit"); ok {
		server.DefaultLimit = val
	}
	if val, ok := data.String("http_addr"); ok {
		server.HTTPAddr = val
	}
}

// extractDictConfig extracts dictionary configuration from a map
func extractDictConfig(data utils.Section, dict *DictConfig) {
	if val, ok := data.String("words_file"); ok {
		dict.WordsFile = val
	}
	if val, ok := data.Int("base_score"); ok {
		dict.BaseScore = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data utils.Section, cli *CliConfig) {
	if val, ok := data.Int("default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := data.Int("default_min_len"); ok {
		cli.DefaultMinLen = val
	}
	if val, ok := data.Int("default_max_len"); ok {
		cli.DefaultMaxLen = val
	}
	if val, ok := data.Bool("default_no_filter"); ok {
		cli.DefaultNoFilter = val
	}
}

// RebuildConfigFile overwrites configPath with the default config. An empty
// path rebuilds the default config.toml.
func RebuildConfigFile(configPath string) error {
	if configPath == "" {
		defaultPath, err := GetDefaultConfigPath()
		if err != nil {
			return err
		}
		configPath = defaultPath
	}
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		return err
	}
	log.Debugf("Rebuilding config file at: %s", configPath)
	return SaveConfig(DefaultConfig(), configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.AbsPath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.WriteTOML(config, configPath)
}

// ClampLimit maps a requested suggestion count onto the server limits.
// Zero or negative requests get the default.
func (c *Config) ClampLimit(requested int) int {
	if requested < 1 {
		return c.Server.DefaultLimit
	}
	return min(requested, c.Server.MaxLimit)
}
