package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything apodbar reads from its config file.
type Config struct {
	APIURL         string
	APIKey         string
	RequestTimeout time.Duration
	MaxWalkBack    int
	RandomWindow   int
	LockScreen     bool
	DownloadDir    string
	CachePath      string
	LogPath        string
	Locale         string
}

const (
	defaultConfigPath     = "~/.config/apodbar/config.toml"
	defaultAPIURL         = "https://api.nasa.gov/planetary/apod"
	defaultAPIKey         = "DEMO_KEY"
	defaultTimeoutSeconds = 60
	defaultMaxWalkBack    = 30
	defaultRandomWindow   = 180
	defaultDownloadDir    = "~/Downloads"
	defaultCachePath      = "~/.local/share/apodbar/cache.db"
	defaultLogPath        = "~/.local/share/apodbar/apodbar.log"
	defaultLocale         = "en"

	// APIKeyEnv overrides api_key from the config file when set.
	APIKeyEnv = "APODBAR_API_KEY"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		APIKey:         defaultAPIKey,
		RequestTimeout: defaultTimeoutSeconds * time.Second,
		MaxWalkBack:    defaultMaxWalkBack,
		RandomWindow:   defaultRandomWindow,
		LockScreen:     true,
		DownloadDir:    mustExpand(defaultDownloadDir),
		CachePath:      mustExpand(defaultCachePath),
		LogPath:        mustExpand(defaultLogPath),
		Locale:         defaultLocale,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyEnv()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL         string `toml:"api_url"`
		APIKey         string `toml:"api_key"`
		TimeoutSeconds *int   `toml:"request_timeout_seconds"`
		MaxWalkBack    int    `toml:"max_walk_back"`
		RandomWindow   int    `toml:"random_window_days"`
		LockScreen     *bool  `toml:"lock_screen"`
		DownloadDir    string `toml:"download_dir"`
		CachePath      string `toml:"cache_path"`
		LogPath        string `toml:"log_path"`
		Locale         string `toml:"locale"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.APIKey); v != "" {
		cfg.APIKey = v
	}
	if raw.TimeoutSeconds != nil && *raw.TimeoutSeconds >= 0 {
		// zero disables the client timeout
		cfg.RequestTimeout = time.Duration(*raw.TimeoutSeconds) * time.Second
	}
	if raw.MaxWalkBack > 0 {
		cfg.MaxWalkBack = raw.MaxWalkBack
	}
	if raw.RandomWindow > 0 {
		cfg.RandomWindow = raw.RandomWindow
	}
	if raw.LockScreen != nil {
		cfg.LockScreen = *raw.LockScreen
	}
	if v := strings.TrimSpace(raw.DownloadDir); v != "" {
		cfg.DownloadDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.CachePath); v != "" {
		cfg.CachePath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.Locale)); v != "" {
		cfg.Locale = v
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		c.APIKey = key
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
