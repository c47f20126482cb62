package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings scout reads at startup.
type Config struct {
	ImageAPIBase string
	CacheDir     string
	ListenAddr   string
	LogDir       string
	// Lockfiles overrides the platform candidate list when non-empty.
	Lockfiles    []string
	ProcessNames []string
}

const (
	defaultConfigPath = "~/.config/scout/config.toml"
	defaultLogDir     = "~/.local/share/scout"
	defaultListenAddr = "127.0.0.1:7489"
	logFileName       = "scout.log"
)

// DefaultPath returns the config location used when none is given.
func DefaultPath() string {
	return defaultConfigPath
}

type fileConfig struct {
	ImageAPIBase string   `toml:"image_api_base"`
	CacheDir     string   `toml:"cache_dir"`
	ListenAddr   string   `toml:"listen_addr"`
	LogDir       string   `toml:"log_dir"`
	Lockfiles    []string `toml:"lockfiles"`
	ProcessNames []string `toml:"process_names"`
}

type envConfig struct {
	ImageAPIBase string `env:"SCOUT_IMAGE_API_BASE"`
	CacheDir     string `env:"SCOUT_CACHE_DIR"`
	ListenAddr   string `env:"SCOUT_LISTEN_ADDR"`
	LogDir       string `env:"SCOUT_LOG_DIR"`
}

// Load reads the TOML file at path (or the default location), applies
// SCOUT_* environment overrides, and fills defaults. A missing file is not
// an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw fileConfig
	bytes, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	if bytes != nil {
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	var overrides envConfig
	if err := env.Parse(&overrides); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg := Config{
		ImageAPIBase: firstNonEmpty(overrides.ImageAPIBase, raw.ImageAPIBase),
		CacheDir:     firstNonEmpty(overrides.CacheDir, raw.CacheDir),
		ListenAddr:   firstNonEmpty(overrides.ListenAddr, raw.ListenAddr, defaultListenAddr),
		LogDir:       firstNonEmpty(overrides.LogDir, raw.LogDir, defaultLogDir),
		Lockfiles:    trimAll(raw.Lockfiles),
		ProcessNames: trimAll(raw.ProcessNames),
	}
	cfg.LogDir = mustExpand(cfg.LogDir)
	if cfg.CacheDir != "" {
		cfg.CacheDir = mustExpand(cfg.CacheDir)
	}
	for i, p := range cfg.Lockfiles {
		cfg.Lockfiles[i] = mustExpand(p)
	}
	return cfg, nil
}

// LogPath returns the file the TUI and server tee their logs into.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/" + logFileName)
	}
	return filepath.Join(c.LogDir, logFileName)
}

func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return bytes, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
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
