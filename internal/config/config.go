package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultRemoteURL is the tasks endpoint of the remote store.
const DefaultRemoteURL = "http://localhost:3000/tasks"

type RemoteConfig struct {
	URL string `yaml:"url"`
	// Timeout 0 heißt: kein Timeout, der Request läuft bis Erfolg oder Fehler.
	Timeout time.Duration `yaml:"timeout"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type UIConfig struct {
	Title            string `yaml:"title"`
	MarkdownNames    bool   `yaml:"markdownNames"`
	RequestLogMax    int    `yaml:"requestLogMax"`
	SerializeActions bool   `yaml:"serializeActions"`
}

type Config struct {
	Listen  string        `yaml:"listen"`
	Remote  RemoteConfig  `yaml:"remote"`
	Logging LoggingConfig `yaml:"logging"`
	UI      UIConfig      `yaml:"ui"`
}

func Default() *Config {
	return &Config{
		Remote:  RemoteConfig{URL: DefaultRemoteURL},
		Logging: LoggingConfig{Level: "info"},
		UI: UIConfig{
			Title:         "Task List",
			RequestLogMax: 200,
		},
	}
}

// Load lädt eine optionale YAML-Datei. Wenn pfad leer oder Datei fehlt, werden Defaults geliefert.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = "config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	if strings.TrimSpace(cfg.Remote.URL) == "" {
		cfg.Remote.URL = DefaultRemoteURL
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TASKWEB_REMOTE_URL"); v != "" {
		cfg.Remote.URL = v
	}
	if v := os.Getenv("TASKWEB_REMOTE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.Remote.Timeout = d
		}
	}
	if v := os.Getenv("TASKWEB_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TASKWEB_MARKDOWN"); v != "" {
		cfg.UI.MarkdownNames = parseBool(v)
	}
	if v := os.Getenv("TASKWEB_REQLOG_MAX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.UI.RequestLogMax = n
		}
	}
	if v := os.Getenv("TASKWEB_SERIALIZE"); v != "" {
		cfg.UI.SerializeActions = parseBool(v)
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
