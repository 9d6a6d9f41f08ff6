package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(APIKeyEnv, "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL {
		t.Fatalf("APIURL = %q, want %q", cfg.APIURL, defaultAPIURL)
	}
	if cfg.APIKey != defaultAPIKey {
		t.Fatalf("APIKey = %q, want %q", cfg.APIKey, defaultAPIKey)
	}
	if cfg.MaxWalkBack != defaultMaxWalkBack || cfg.RandomWindow != defaultRandomWindow {
		t.Fatalf("walk/window = %d/%d, want %d/%d", cfg.MaxWalkBack, cfg.RandomWindow, defaultMaxWalkBack, defaultRandomWindow)
	}
	if cfg.RequestTimeout != defaultTimeoutSeconds*time.Second {
		t.Fatalf("RequestTimeout = %v, want %v", cfg.RequestTimeout, defaultTimeoutSeconds*time.Second)
	}
	if !cfg.LockScreen {
		t.Fatalf("LockScreen = false, want true by default")
	}

	wantCache, err := expandPath(defaultCachePath)
	if err != nil {
		t.Fatalf("expandPath(defaultCachePath) returned error: %v", err)
	}
	if cfg.CachePath != wantCache {
		t.Fatalf("CachePath = %q, want %q", cfg.CachePath, wantCache)
	}
	if !strings.HasPrefix(cfg.LogPath, home) {
		t.Fatalf("LogPath = %q, want it under HOME %q", cfg.LogPath, home)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(APIKeyEnv, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "  http://10.0.0.5:9999/apod  "
api_key = " secret "
request_timeout_seconds = 0
max_walk_back = 7
random_window_days = 30
lock_screen = false
download_dir = "  ~/Pictures  "
locale = " ZH "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://10.0.0.5:9999/apod" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.APIKey != "secret" {
		t.Fatalf("APIKey = %q, want secret", cfg.APIKey)
	}
	if cfg.RequestTimeout != 0 {
		t.Fatalf("RequestTimeout = %v, want 0 (disabled)", cfg.RequestTimeout)
	}
	if cfg.MaxWalkBack != 7 || cfg.RandomWindow != 30 {
		t.Fatalf("walk/window = %d/%d, want 7/30", cfg.MaxWalkBack, cfg.RandomWindow)
	}
	if cfg.LockScreen {
		t.Fatalf("LockScreen = true, want false")
	}
	if cfg.DownloadDir != filepath.Join(home, "Pictures") {
		t.Fatalf("DownloadDir = %q, want %q", cfg.DownloadDir, filepath.Join(home, "Pictures"))
	}
	if cfg.Locale != "zh" {
		t.Fatalf("Locale = %q, want zh", cfg.Locale)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(APIKeyEnv, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "   "
api_key = ""
max_walk_back = -3
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != defaultAPIURL || cfg.APIKey != defaultAPIKey {
		t.Fatalf("APIURL/APIKey = %q/%q, want defaults", cfg.APIURL, cfg.APIKey)
	}
	if cfg.MaxWalkBack != defaultMaxWalkBack {
		t.Fatalf("MaxWalkBack = %d, want %d", cfg.MaxWalkBack, defaultMaxWalkBack)
	}
}

func TestLoad_EnvOverridesAPIKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(APIKeyEnv, "  from-env ")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_key = "from-file"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "from-env" {
		t.Fatalf("APIKey = %q, want from-env", cfg.APIKey)
	}

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "from-env" {
		t.Fatalf("APIKey without file = %q, want from-env", cfg.APIKey)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
