/*
Package config manages the TOML config of argcmd applications.

Each application gets its own file under the XDG config home, created with
defaults on first use:

	[shell]
	prompt = "> "
	history = true
	history_file = ""
	ctrl_c_aborts = true
	banner = true

	[server]
	max_limit = 64
	min_prefix = 0
	max_prefix = 60

	[log]
	level = "warn"
	timestamp = false
	caller = false

A file that fails to decode is salvaged section by section, fields that
cannot be read keep their defaults.
*/
package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/bastiangx/argcmd/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Shell  ShellConfig  `toml:"shell"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// ShellConfig has interactive shell options.
type ShellConfig struct {
	Prompt      string `toml:"prompt"`
	History     bool   `toml:"history"`
	HistoryFile string `toml:"history_file"`
	CtrlCAborts bool   `toml:"ctrl_c_aborts"`
	Banner      bool   `toml:"banner"`
}

// ServerConfig bounds completion requests served over IPC.
type ServerConfig struct {
	MaxLimit  int `toml:"max_limit"`
	MinPrefix int `toml:"min_prefix"`
	MaxPrefix int `toml:"max_prefix"`
}

// LogConfig holds logger options.
type LogConfig struct {
	Level     string `toml:"level"`
	Timestamp bool   `toml:"timestamp"`
	Caller    bool   `toml:"caller"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Shell: ShellConfig{
			Prompt:      "> ",
			History:     true,
			CtrlCAborts: true,
			Banner:      true,
		},
		Server: ServerConfig{
			MaxLimit:  64,
			MinPrefix: 0,
			MaxPrefix: 60,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// GetConfigDir returns $XDG_CONFIG_HOME/<app>.
func GetConfigDir(app string) string {
	return filepath.Join(xdg.ConfigHome, app)
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath(app string) string {
	return filepath.Join(GetConfigDir(app), "config.toml")
}

// HistoryPath returns the configured history file, or
// $XDG_STATE_HOME/<app>/history when none is set.
func (c *ShellConfig) HistoryPath(app string) string {
	if c.HistoryFile != "" {
		return c.HistoryFile
	}
	return filepath.Join(xdg.StateHome, app, "history")
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path (flag or env)
// 2. Default path: [XDG_CONFIG_HOME]/<app>/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(app, customConfigPath string) (*Config, string) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}

	defaultPath := GetDefaultConfigPath(app)
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), ""
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	if err := utils.EnsureParentDir(configPath); err != nil {
		log.Warnf("Failed to create config directory for %s: %v. Using builtin defaults...", configPath, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using builtin defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages the readable fields of a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(raw, "shell"); ok {
		extractShellConfig(section, &config.Shell)
	}
	if section, ok := utils.ExtractSection(raw, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(raw, "log"); ok {
		extractLogConfig(section, &config.Log)
	}
	return config, nil
}

func extractShellConfig(data map[string]any, shell *ShellConfig) {
	if val, ok := utils.ExtractString(data, "prompt"); ok {
		shell.Prompt = val
	}
	if val, ok := utils.ExtractBool(data, "history"); ok {
		shell.History = val
	}
	if val, ok := utils.ExtractString(data, "history_file"); ok {
		shell.HistoryFile = val
	}
	if val, ok := utils.ExtractBool(data, "ctrl_c_aborts"); ok {
		shell.CtrlCAborts = val
	}
	if val, ok := utils.ExtractBool(data, "banner"); ok {
		shell.Banner = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_prefix"); ok {
		server.MinPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "max_prefix"); ok {
		server.MaxPrefix = val
	}
}

func extractLogConfig(data map[string]any, logCfg *LogConfig) {
	if val, ok := utils.ExtractString(data, "level"); ok {
		logCfg.Level = val
	}
	if val, ok := utils.ExtractBool(data, "timestamp"); ok {
		logCfg.Timestamp = val
	}
	if val, ok := utils.ExtractBool(data, "caller"); ok {
		logCfg.Caller = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(app, configPath string) string {
	if configPath == "" {
		return GetDefaultConfigPath(app)
	}
	return utils.GetAbsolutePath(configPath)
}
