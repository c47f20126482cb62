// Package config loads scout's startup configuration.
//
// # Resolution
//
// Load reads ~/.config/scout/config.toml (or an explicit path), then applies
// SCOUT_* environment variables on top, then fills defaults for anything
// still empty. A missing file is not an error; scout runs with no
// configuration at all.
//
// User preferences saved from the TUI or the set-image-base command live in
// package prefs and take precedence over everything here.
//
// # TOML Format
//
//	image_api_base = "https://www.lelanation.fr"
//	cache_dir      = "~/.cache/scout/images"
//	listen_addr    = "127.0.0.1:7489"
//	log_dir        = "~/.local/share/scout"
//	lockfiles      = ["/opt/lol/lockfile"]
//	process_names  = ["LeagueClientUx"]
//
// Every key is optional. Tilde expansion is applied to cache_dir, log_dir
// and each lockfiles entry.
//
// # Environment
//
//	SCOUT_IMAGE_API_BASE
//	SCOUT_CACHE_DIR
//	SCOUT_LISTEN_ADDR
//	SCOUT_LOG_DIR
//
// # Defaults
//
//   - listen_addr: 127.0.0.1:7489
//   - log_dir: ~/.local/share/scout (log file <log_dir>/scout.log)
//   - image_api_base, cache_dir, lockfiles, process_names: empty, meaning the
//     consuming package picks its own platform default
package config
