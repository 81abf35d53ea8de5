package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}

	if !strings.HasSuffix(path, filepath.Join(".config", appName, configFile)) {
		t.Errorf("configPath() = %q, want suffix .config/%s/%s", path, appName, configFile)
	}
}

func TestConfigPathXDG(t *testing.T) {
	customConfig := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", customConfig)

	path, err := configPath()
	if err != nil {
		t.Fatalf("configPath() error: %v", err)
	}

	expected := filepath.Join(customConfig, appName, configFile)
	if path != expected {
		t.Errorf("configPath() with XDG_CONFIG_HOME = %q, want %q", path, expected)
	}
}

func TestLoadConfigDefaultFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	c := New(os.Stderr, LogInfo)

	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() without file error: %v", err)
	}
	if cfg.Frame.Width != 800 {
		t.Errorf("Frame.Width = %g, want default 800", cfg.Frame.Width)
	}

	dir := filepath.Join(configHome, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, configFile), []byte("[frame]\nwidth = 1024\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err = c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() with file error: %v", err)
	}
	if cfg.Frame.Width != 1024 {
		t.Errorf("Frame.Width = %g, want 1024 from config file", cfg.Frame.Width)
	}
}
