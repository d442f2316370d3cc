package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfigPath     = "CONFIG_PATH"
	EnvPort           = "PORT"
	EnvChatReplyDelay = "CHAT_REPLY_DELAY"
)

// defaultPort is used when neither the config file nor the environment sets one.
const defaultPort = 8080

// Config holds resolved application configuration values.
type Config struct {
	Port  int          `yaml:"port"`
	Chat  ChatConfig   `yaml:"chat"`
	Plans []PlanConfig `yaml:"plans"`
}

// ChatConfig holds chat reply tuning.
type ChatConfig struct {
	ReplyDelay Duration `yaml:"reply-delay"`
}

// Duration wraps time.Duration so YAML accepts values like "1500ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, errParse := time.ParseDuration(strings.TrimSpace(value.Value))
	if errParse != nil {
		return fmt.Errorf("config: parse duration %q: %w", value.Value, errParse)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// PlanConfig describes one catalog entry when the file overrides the built-in catalog.
type PlanConfig struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Price    string   `yaml:"price"`
	Features []string `yaml:"features"`
}

// ResolveConfigPath normalizes the config path and applies defaults.
func ResolveConfigPath(p string) string {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		trimmed = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if trimmed == "" {
		trimmed = "./config.yaml"
	}
	if abs, err := filepath.Abs(trimmed); err == nil {
		return abs
	}
	return trimmed
}

// Load reads the YAML config file and applies environment overrides.
// A missing file is not an error; defaults are returned instead.
func Load(configPath string) (Config, error) {
	cfg := Config{Port: defaultPort}

	data, errRead := os.ReadFile(configPath)
	if errRead == nil {
		if errUnmarshal := yaml.Unmarshal(data, &cfg); errUnmarshal != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", configPath, errUnmarshal)
		}
	} else if !os.IsNotExist(errRead) {
		return Config{}, fmt.Errorf("config: read %s: %w", configPath, errRead)
	}

	if portRaw := strings.TrimSpace(os.Getenv(EnvPort)); portRaw != "" {
		if port, errParse := strconv.Atoi(portRaw); errParse == nil && port > 0 {
			cfg.Port = port
		}
	}
	if delayRaw := strings.TrimSpace(os.Getenv(EnvChatReplyDelay)); delayRaw != "" {
		if delay, errParse := time.ParseDuration(delayRaw); errParse == nil && delay >= 0 {
			cfg.Chat.ReplyDelay = Duration(delay)
		}
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		cfg.Port = defaultPort
	}
	if cfg.Chat.ReplyDelay < 0 {
		cfg.Chat.ReplyDelay = 0
	}
	return cfg, nil
}
