package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/elpatron68/tasklist-web/internal/config"
)

func TestResolveListenAddress(t *testing.T) {
	t.Run("defaults to :8080", func(t *testing.T) {
		t.Setenv("TASKWEB_LISTEN", "")
		got := resolveListenAddress(&config.Config{}, "")
		if got != ":8080" {
			t.Fatalf("expected :8080, got %s", got)
		}
	})

	t.Run("uses config value", func(t *testing.T) {
		t.Setenv("TASKWEB_LISTEN", "")
		cfg := &config.Config{Listen: "127.0.0.1:9000"}
		got := resolveListenAddress(cfg, "")
		if got != "127.0.0.1:9000" {
			t.Fatalf("expected config listen, got %s", got)
		}
	})

	t.Run("env overrides config", func(t *testing.T) {
		t.Setenv("TASKWEB_LISTEN", "0.0.0.0:7777")
		cfg := &config.Config{Listen: "127.0.0.1:9000"}
		got := resolveListenAddress(cfg, "")
		if got != "0.0.0.0:7777" {
			t.Fatalf("expected env override, got %s", got)
		}
	})

	t.Run("flag overrides env and config", func(t *testing.T) {
		t.Setenv("TASKWEB_LISTEN", "0.0.0.0:7777")
		cfg := &config.Config{Listen: "127.0.0.1:9000"}
		got := resolveListenAddress(cfg, "[::1]:6060")
		if got != "[::1]:6060" {
			t.Fatalf("expected flag override, got %s", got)
		}
	})
}

func TestResolveConfigPath(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	if got := resolveConfigPath("custom.yaml"); got != "custom.yaml" {
		t.Fatalf("flag should win, got %q", got)
	}
	if got := resolveConfigPath(""); got != "" {
		t.Fatalf("expected no config path, got %q", got)
	}
	if err := os.WriteFile(filepath.Join(root, "config.yaml"), []byte("listen: ':1'\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := resolveConfigPath(""); got != "../../config.yaml" {
		t.Fatalf("expected ../../config.yaml, got %q", got)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("listen: ':1'\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := resolveConfigPath(""); got != "config.yaml" {
		t.Fatalf("expected config.yaml, got %q", got)
	}
}
