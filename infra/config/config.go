package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const appDir = "terminalthread"

// Config holds application-level configuration.
type Config struct {
	InstanceURL string // e.g. "https://mastodon.social"
	TokenPath   string // Path to file containing the access token
	AccessToken string // Overrides TokenPath when set
	CachePath   string // SQLite status cache
	LogPath     string // Debug log; the TUI owns stdout
	LogLevel    string // zerolog level name
	MaxIndent   uint   // Reply depth at which indentation stops growing
	Stream      bool   // Subscribe to live updates
}

// LoadDotEnv loads KEY=value files into the environment without overriding
// variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// DefaultDotEnvPaths lists the env files read at startup, most specific first.
func DefaultDotEnvPaths() []string {
	paths := []string{".env"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appDir, "env"))
	}
	return paths
}

// Load reads configuration from environment variables.
//
//	TERMINALTHREAD_INSTANCE      — Mastodon instance URL (default: https://mastodon.social)
//	TERMINALTHREAD_TOKEN         — Path to token file (default: ~/.config/terminalthread/token)
//	TERMINALTHREAD_ACCESS_TOKEN  — Access token, takes precedence over the file
//	TERMINALTHREAD_CACHE         — Cache database (default: ~/.config/terminalthread/cache.db)
//	TERMINALTHREAD_LOG           — Log file (default: ~/.config/terminalthread/debug.log)
//	TERMINALTHREAD_LOG_LEVEL     — debug, info, warn, error (default: info)
//	TERMINALTHREAD_MAX_INDENT    — Maximum indentation depth (default: 6)
//	TERMINALTHREAD_STREAM        — Subscribe to live updates (default: true)
func Load() (Config, error) {
	instance := os.Getenv("TERMINALTHREAD_INSTANCE")
	if instance == "" {
		instance = "https://mastodon.social"
	}
	parsed, err := url.Parse(instance)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("invalid TERMINALTHREAD_INSTANCE: must be an absolute URL")
	}
	if parsed.Scheme != "https" {
		return Config{}, fmt.Errorf("invalid TERMINALTHREAD_INSTANCE: only https is allowed")
	}
	instance = strings.TrimRight(parsed.String(), "/")

	base := ""
	pathOr := func(env, name string) (string, error) {
		if v := os.Getenv(env); v != "" {
			return v, nil
		}
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			base = filepath.Join(home, ".config", appDir)
		}
		return filepath.Join(base, name), nil
	}

	tokenPath, err := pathOr("TERMINALTHREAD_TOKEN", "token")
	if err != nil {
		return Config{}, err
	}
	cachePath, err := pathOr("TERMINALTHREAD_CACHE", "cache.db")
	if err != nil {
		return Config{}, err
	}
	logPath, err := pathOr("TERMINALTHREAD_LOG", "debug.log")
	if err != nil {
		return Config{}, err
	}

	level := strings.ToLower(strings.TrimSpace(os.Getenv("TERMINALTHREAD_LOG_LEVEL")))
	if level == "" {
		level = "info"
	}

	maxIndent := uint(6)
	if v := strings.TrimSpace(os.Getenv("TERMINALTHREAD_MAX_INDENT")); v != "" {
		n, err := strconv.ParseUint(v, 10, 8)
		if err != nil || n == 0 {
			return Config{}, fmt.Errorf("invalid TERMINALTHREAD_MAX_INDENT: must be a positive integer")
		}
		maxIndent = uint(n)
	}

	stream := true
	if v := strings.TrimSpace(os.Getenv("TERMINALTHREAD_STREAM")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TERMINALTHREAD_STREAM: %w", err)
		}
		stream = b
	}

	return Config{
		InstanceURL: instance,
		TokenPath:   tokenPath,
		AccessToken: os.Getenv("TERMINALTHREAD_ACCESS_TOKEN"),
		CachePath:   cachePath,
		LogPath:     logPath,
		LogLevel:    level,
		MaxIndent:   maxIndent,
		Stream:      stream,
	}, nil
}
