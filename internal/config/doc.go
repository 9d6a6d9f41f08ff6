// Package config loads apodbar's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/apodbar/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. APODBAR_API_KEY, when set, replaces api_key in every case
//
// # Default Values
//
//   - API endpoint: https://api.nasa.gov/planetary/apod
//   - API key: DEMO_KEY (rate limited by NASA)
//   - Request timeout: 60 seconds (0 disables)
//   - Day-walk bound: 30 days
//   - Random window: 180 days
//   - Lock screen: enabled (only effective where the platform supports it)
//   - Download dir: ~/Downloads
//   - Cache: ~/.local/share/apodbar/cache.db
//   - Log: ~/.local/share/apodbar/apodbar.log
//   - Locale: en
//
// # TOML Format
//
//	api_key = "your-key"
//	request_timeout_seconds = 30
//	max_walk_back = 30
//	random_window_days = 180
//	lock_screen = true
//	download_dir = "~/Pictures/apod"
//	locale = "zh"
//
// All fields are optional. Tilde expansion is performed for path fields.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, and TOML parse errors. Missing config files are NOT an
// error.
package config
