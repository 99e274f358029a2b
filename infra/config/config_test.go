package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TERMINALTHREAD_INSTANCE", "TERMINALTHREAD_TOKEN", "TERMINALTHREAD_ACCESS_TOKEN",
		"TERMINALTHREAD_CACHE", "TERMINALTHREAD_LOG", "TERMINALTHREAD_LOG_LEVEL",
		"TERMINALTHREAD_MAX_INDENT", "TERMINALTHREAD_STREAM",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("HOME", t.TempDir())
}

func TestLoad_ParsesEnvAndDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TERMINALTHREAD_INSTANCE", "https://example.social/")
	t.Setenv("TERMINALTHREAD_MAX_INDENT", "3")
	t.Setenv("TERMINALTHREAD_STREAM", "false")
	t.Setenv("TERMINALTHREAD_LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.InstanceURL != "https://example.social" {
		t.Fatalf("instance must be normalized: %q", cfg.InstanceURL)
	}
	if cfg.MaxIndent != 3 || cfg.Stream || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if filepath.Base(cfg.TokenPath) != "token" || filepath.Base(cfg.CachePath) != "cache.db" {
		t.Fatalf("unexpected default paths: %#v", cfg)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.InstanceURL != "https://mastodon.social" || cfg.MaxIndent != 6 || !cfg.Stream || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"non-https":       {"TERMINALTHREAD_INSTANCE", "http://insecure.local"},
		"relative url":    {"TERMINALTHREAD_INSTANCE", "mastodon.social"},
		"zero indent":     {"TERMINALTHREAD_MAX_INDENT", "0"},
		"negative indent": {"TERMINALTHREAD_MAX_INDENT", "-2"},
		"bad stream flag": {"TERMINALTHREAD_STREAM", "sometimes"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}

func TestLoadDotEnv_DoesNotOverrideAndSkipsMissing(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "env")
	content := "TERMINALTHREAD_INSTANCE=https://from-file.social\nTERMINALTHREAD_MAX_INDENT=4\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env failed: %v", err)
	}
	t.Setenv("TERMINALTHREAD_MAX_INDENT", "2")
	os.Unsetenv("TERMINALTHREAD_INSTANCE")

	if err := LoadDotEnv(filepath.Join(dir, "missing"), path); err != nil {
		t.Fatalf("load dotenv failed: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.InstanceURL != "https://from-file.social" {
		t.Fatalf("expected instance from env file, got %q", cfg.InstanceURL)
	}
	if cfg.MaxIndent != 2 {
		t.Fatalf("existing env must win over env file, got %d", cfg.MaxIndent)
	}
}
