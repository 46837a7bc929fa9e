/*
Package config manages TOML configuration for the completion engine, session
controller and CLI.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/modularizer/automobile-complete/internal/utils"
	"github.com/modularizer/automobile-complete/pkg/session"
	"github.com/modularizer/automobile-complete/pkg/suggest"
)

// Config holds the entire config structure.
type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Session SessionConfig `toml:"session"`
	Dict    DictConfig    `toml:"dict"`
	CLI     CliConfig     `toml:"cli"`
}

// EngineConfig has trie matching options.
type EngineConfig struct {
	CaseInsensitive    bool `toml:"case_insensitive"`
	CacheFullText      bool `toml:"cache_full_text"`
	HandleControlChars bool `toml:"handle_control_characters"`
}

// Options converts to the engine's option struct.
func (e EngineConfig) Options() suggest.Options {
	return suggest.Options{
		CaseInsensitive:    e.CaseInsensitive,
		CacheFullText:      e.CacheFullText,
		HandleControlChars: e.HandleControlChars,
	}
}

// SessionConfig has controller policy options.
type SessionConfig struct {
	TabBehavior    string `toml:"tab_behavior"`
	TabSpaces      int    `toml:"tab_spaces"`
	MaxCompletions int    `toml:"max_completions"`
}

// Settings converts to the controller's settings struct.
func (s SessionConfig) Settings() session.Settings {
	return session.Settings{
		TabBehavior:    session.ParseTabBehavior(s.TabBehavior),
		TabSpaces:      s.TabSpaces,
		MaxCompletions: s.MaxCompletions,
	}
}

// DictConfig holds dictionary locations.
type DictConfig struct {
	Dir          string `toml:"dir"`
	PersonalFile string `toml:"personal_file"`
}

// CliConfig holds interactive-mode options.
type CliConfig struct {
	DefaultLimit  int  `toml:"default_limit"`
	LetterDelayMs int  `toml:"letter_delay_ms"`
	WordDelayMs   int  `toml:"word_delay_ms"`
	Colors        bool `toml:"colors"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			CaseInsensitive:    true,
			CacheFullText:      true,
			HandleControlChars: true,
		},
		Session: SessionConfig{
			TabBehavior:    string(session.TabSelectIfSingle),
			TabSpaces:      4,
			MaxCompletions: 10,
		},
		Dict: DictConfig{
			Dir: "dict/",
		},
		CLI: CliConfig{
			DefaultLimit:  10,
			LetterDelayMs: 150,
			WordDelayMs:   100,
			Colors:        true,
		},
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/automobile
// 2. ~/Library/Application Support/automobile (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "automobile")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "automobile")
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

// GetDefaultConfigPath returns the default path for config.toml.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path under the user config dir
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

// InitConfig loads config from file or creates the default if missing.
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

// LoadConfig loads from a TOML file.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages whatever valid sections a broken TOML file has.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}
	if engineSection, ok := utils.ExtractSection(tempConfig, "engine"); ok {
		extractEngineConfig(engineSection, &config.Engine)
	}
	if sessionSection, ok := utils.ExtractSection(tempConfig, "session"); ok {
		extractSessionConfig(sessionSection, &config.Session)
	}
	if dictSection, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(dictSection, &config.Dict)
	}
	if cliSection, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	return config, nil
}

func extractEngineConfig(data map[string]any, engine *EngineConfig) {
	if val, ok := utils.ExtractBool(data, "case_insensitive"); ok {
		engine.CaseInsensitive = val
	}
	if val, ok := utils.ExtractBool(data, "cache_full_text"); ok {
		engine.CacheFullText = val
	}
	if val, ok := utils.ExtractBool(data, "handle_control_characters"); ok {
		engine.HandleControlChars = val
	}
}

func extractSessionConfig(data map[string]any, sess *SessionConfig) {
	if val, ok := utils.ExtractString(data, "tab_behavior"); ok {
		sess.TabBehavior = val
	}
	if val, ok := utils.ExtractInt64(data, "tab_spaces"); ok {
		sess.TabSpaces = val
	}
	if val, ok := utils.ExtractInt64(data, "max_completions"); ok {
		sess.MaxCompletions = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "dir"); ok {
		dict.Dir = val
	}
	if val, ok := utils.ExtractString(data, "personal_file"); ok {
		dict.PersonalFile = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "letter_delay_ms"); ok {
		cli.LetterDelayMs = val
	}
	if val, ok := utils.ExtractInt64(data, "word_delay_ms"); ok {
		cli.WordDelayMs = val
	}
	if val, ok := utils.ExtractBool(data, "colors"); ok {
		cli.Colors = val
	}
}

// SaveConfig saves into a TOML file.
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of the loaded config file.
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}
