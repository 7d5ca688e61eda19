// Package config loads trekplan settings using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix = "TREKPLAN"
	fileName  = "trekplan.yml"
)

// Config holds all configuration values for trekplan.
type Config struct {
	APIEndpoint string `mapstructure:"api_endpoint" yaml:"api_endpoint"`
	DBPath      string `mapstructure:"db_path" yaml:"db_path"`
	TimeoutMs   int    `mapstructure:"timeout_ms" yaml:"timeout_ms"`
	MaxRetries  int    `mapstructure:"max_retries" yaml:"max_retries"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	LogCalls    bool   `mapstructure:"log_calls" yaml:"log_calls"`
}

// flagKeys maps persistent CLI flag names to config keys.
var flagKeys = map[string]string{
	"api":       "api_endpoint",
	"db":        "db_path",
	"log-level": "log_level",
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		APIEndpoint: "http://localhost:5000/api",
		DBPath:      DefaultDBPath(),
		TimeoutMs:   10000,
		MaxRetries:  1,
		LogLevel:    "warn",
	}
}

// Load resolves configuration with precedence:
// flags > TREKPLAN_ env vars > project trekplan.yml > global trekplan.yml > defaults.
// flags may be nil. Only flags the user actually changed override lower layers.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	def := Defaults()
	v.SetDefault("api_endpoint", def.APIEndpoint)
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("timeout_ms", def.TimeoutMs)
	v.SetDefault("max_retries", def.MaxRetries)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("log_calls", def.LogCalls)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"api_endpoint", "db_path", "timeout_ms", "max_retries", "log_level", "log_file", "log_calls"} {
		if err := v.BindEnv(key, envPrefix+"_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	if path := GlobalPath(); fileExists(path) {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}
	if path := ProjectPath(); fileExists(path) {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = def.DBPath
	}
	cfg.DBPath = expandHome(cfg.DBPath)
	if cfg.APIEndpoint == "" {
		cfg.APIEndpoint = def.APIEndpoint
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = def.TimeoutMs
	}
	return &cfg, nil
}

// DefaultDBPath returns ~/.trekplan/trekplan.db.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".trekplan", "trekplan.db")
	}
	return filepath.Join(home, ".trekplan", "trekplan.db")
}

// GlobalPath returns $XDG_CONFIG_HOME/trekplan/trekplan.yml, or
// ~/.config/trekplan/trekplan.yml when XDG_CONFIG_HOME is unset.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "trekplan", fileName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "trekplan", fileName)
}

// ProjectPath returns the project-local config path in the working directory.
func ProjectPath() string {
	return fileName
}

// WriteGlobal writes cfg to GlobalPath and returns the path written.
func WriteGlobal(cfg *Config) (string, error) {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	return path, write(path, cfg)
}

// WriteProject writes cfg to ProjectPath and returns the path written.
func WriteProject(cfg *Config) (string, error) {
	path := ProjectPath()
	return path, write(path, cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
