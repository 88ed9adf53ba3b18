package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultHasReasonableValues(t *testing.T) {
	cfg := Default()
	if cfg.Remote.URL != DefaultRemoteURL {
		t.Fatalf("expected default remote url, got %q", cfg.Remote.URL)
	}
	if cfg.Remote.Timeout != 0 {
		t.Fatalf("expected no default timeout, got %v", cfg.Remote.Timeout)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.Logging.Level)
	}
	if cfg.UI.MarkdownNames {
		t.Fatalf("expected MarkdownNames default false")
	}
	if cfg.UI.RequestLogMax <= 0 {
		t.Fatalf("expected positive RequestLogMax")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TASKWEB_REMOTE_URL", "http://store.local/tasks")
	t.Setenv("TASKWEB_REMOTE_TIMEOUT", "3s")
	t.Setenv("TASKWEB_LOG_LEVEL", "debug")
	t.Setenv("TASKWEB_MARKDOWN", "1")
	t.Setenv("TASKWEB_REQLOG_MAX", "50")
	t.Setenv("TASKWEB_SERIALIZE", "true")

	cfg, err := Load("__does_not_exist.yaml")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Remote.URL != "http://store.local/tasks" {
		t.Fatalf("remote url env override failed: %q", cfg.Remote.URL)
	}
	if cfg.Remote.Timeout != 3*time.Second {
		t.Fatalf("remote timeout env override failed: %v", cfg.Remote.Timeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("log level env override failed: %q", cfg.Logging.Level)
	}
	if !cfg.UI.MarkdownNames {
		t.Fatalf("UI.MarkdownNames expected true via env")
	}
	if cfg.UI.RequestLogMax != 50 {
		t.Fatalf("UI.RequestLogMax expected 50 via env, got %d", cfg.UI.RequestLogMax)
	}
	if !cfg.UI.SerializeActions {
		t.Fatalf("UI.SerializeActions expected true via env")
	}
}

func TestLoadIgnoresInvalidEnvValues(t *testing.T) {
	t.Setenv("TASKWEB_REMOTE_TIMEOUT", "soon")
	t.Setenv("TASKWEB_REQLOG_MAX", "-3")

	cfg, err := Load("__does_not_exist.yaml")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Remote.Timeout != 0 {
		t.Fatalf("invalid timeout should be ignored, got %v", cfg.Remote.Timeout)
	}
	if cfg.UI.RequestLogMax != 200 {
		t.Fatalf("invalid reqlog max should be ignored, got %d", cfg.UI.RequestLogMax)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("listen: '127.0.0.1:9000'\nremote:\n  url: 'http://api:3000/tasks'\n  timeout: 5s\nlogging:\n  level: 'warn'\nui:\n  title: 'Chores'\n  markdownNames: true\n  requestLogMax: 12\n")
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, yaml, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Listen != "127.0.0.1:9000" {
		t.Fatalf("file load failed for listen: %q", cfg.Listen)
	}
	if cfg.Remote.URL != "http://api:3000/tasks" {
		t.Fatalf("file load failed for remote.url: %q", cfg.Remote.URL)
	}
	if cfg.Remote.Timeout != 5*time.Second {
		t.Fatalf("file load failed for remote.timeout: %v", cfg.Remote.Timeout)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("file load failed for logging.level: %q", cfg.Logging.Level)
	}
	if cfg.UI.Title != "Chores" || !cfg.UI.MarkdownNames || cfg.UI.RequestLogMax != 12 {
		t.Fatalf("file load failed for ui: %+v", cfg.UI)
	}
}

func TestLoadEmptyRemoteURLFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("remote:\n  url: ''\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Remote.URL != DefaultRemoteURL {
		t.Fatalf("expected default remote url, got %q", cfg.Remote.URL)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("remote: [unclosed"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected yaml error")
	}
}
