package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	p := writeConfig(t, `server: {}
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.ListenAddr != DefaultListenAddr {
		t.Errorf("listen_addr: got %q, want %q", cfg.Server.ListenAddr, DefaultListenAddr)
	}
	if cfg.Server.MaxPasteSize != DefaultMaxPasteSize {
		t.Errorf("max_paste_size: got %d, want %d", cfg.Server.MaxPasteSize, DefaultMaxPasteSize)
	}
	if cfg.Server.DevicePasteLimit != DefaultDevicePasteLimit {
		t.Errorf("device_paste_limit: got %d, want %d", cfg.Server.DevicePasteLimit, DefaultDevicePasteLimit)
	}
	if cfg.Server.Stats.Interval != DefaultStatsInterval {
		t.Errorf("stats.interval: got %v, want %v", cfg.Server.Stats.Interval, DefaultStatsInterval)
	}
}

func TestLoad_Full(t *testing.T) {
	p := writeConfig(t, `server:
  listen_addr: "0.0.0.0:9000"
  max_paste_size: 1024
  device_paste_limit: 5
  auth:
    mode: apikey
    key_env: MY_KEY
    header: x-bin-key
  stats:
    interval: 10s
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.ListenAddr != "0.0.0.0:9000" {
		t.Errorf("listen_addr: got %q, want 0.0.0.0:9000", cfg.Server.ListenAddr)
	}
	if cfg.Server.MaxPasteSize != 1024 {
		t.Errorf("max_paste_size: got %d, want 1024", cfg.Server.MaxPasteSize)
	}
	if cfg.Server.DevicePasteLimit != 5 {
		t.Errorf("device_paste_limit: got %d, want 5", cfg.Server.DevicePasteLimit)
	}
	if cfg.Server.Auth.Mode != "apikey" {
		t.Errorf("auth.mode: got %q, want apikey", cfg.Server.Auth.Mode)
	}
	if cfg.Server.Auth.EffectiveHeader() != "x-bin-key" {
		t.Errorf("header: got %q, want x-bin-key", cfg.Server.Auth.EffectiveHeader())
	}
	if cfg.Server.Stats.Interval != 10*time.Second {
		t.Errorf("stats.interval: got %v, want 10s", cfg.Server.Stats.Interval)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BIN_LISTEN_ADDR", "127.0.0.1:7777")
	t.Setenv("BIN_MAX_PASTE_SIZE", "2048")
	p := writeConfig(t, `server:
  listen_addr: "0.0.0.0:9000"
  max_paste_size: 1024
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.ListenAddr != "127.0.0.1:7777" {
		t.Errorf("listen_addr: got %q, want env override 127.0.0.1:7777", cfg.Server.ListenAddr)
	}
	if cfg.Server.MaxPasteSize != 2048 {
		t.Errorf("max_paste_size: got %d, want env override 2048", cfg.Server.MaxPasteSize)
	}
}

func TestLoad_DefaultHeader(t *testing.T) {
	p := writeConfig(t, `server:
  auth:
    mode: apikey
    key_env: K
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if h := cfg.Server.Auth.EffectiveHeader(); h != "x-api-key" {
		t.Errorf("EffectiveHeader: got %q, want x-api-key", h)
	}
}

func TestLoad_KeyEnvResolution(t *testing.T) {
	t.Setenv("TEST_BIN_KEY", "supersecret")
	p := writeConfig(t, `server:
  auth:
    mode: apikey
    key_env: TEST_BIN_KEY
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if k := cfg.Server.Auth.Key(); k != "supersecret" {
		t.Errorf("Key(): got %q, want supersecret", k)
	}
}

func TestLoad_UnknownAuthMode(t *testing.T) {
	p := writeConfig(t, `server:
  auth:
    mode: oauth2
`)
	if _, err := Load(p); err == nil {
		t.Fatal("expected error for unknown auth mode, got nil")
	}
}

func TestLoad_BadDeviceLimit(t *testing.T) {
	p := writeConfig(t, `server:
  device_paste_limit: 0
`)
	if _, err := Load(p); err == nil {
		t.Fatal("expected error for zero device_paste_limit, got nil")
	}
}

func TestLoad_BadPasteSize(t *testing.T) {
	p := writeConfig(t, `server:
  max_paste_size: -1
`)
	if _, err := Load(p); err == nil {
		t.Fatal("expected error for negative max_paste_size, got nil")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestRuntime_Replace(t *testing.T) {
	first := defaults()
	rt := NewRuntime(first)
	if rt.Current() != first {
		t.Fatal("Current: want the config passed to NewRuntime")
	}

	second := defaults()
	second.Server.MaxPasteSize = 1
	rt.Replace(second)
	if rt.Current().Server.MaxPasteSize != 1 {
		t.Errorf("Current after Replace: max_paste_size got %d, want 1",
			rt.Current().Server.MaxPasteSize)
	}
}
