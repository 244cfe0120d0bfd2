package main

import (
	"os"
	"path/filepath"
	"testing"
)

// resetFlags restores global flag state after each test.
func resetFlags(t *testing.T) {
	t.Helper()
	orig := struct{ url, fmt string }{flagURL, flagFmt}
	t.Cleanup(func() {
		flagURL = orig.url
		flagFmt = orig.fmt
	})
}

// setEnv temporarily sets an environment variable and restores it on cleanup.
func setEnv(t *testing.T, key, val string) {
	t.Helper()
	prev, exists := os.LookupEnv(key)
	os.Setenv(key, val)
	t.Cleanup(func() {
		if exists {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

// unsetEnv temporarily unsets an environment variable and restores it on cleanup.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, exists := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if exists {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestResolveConfigEnvURL(t *testing.T) {
	resetFlags(t)
	setEnv(t, "REELLOG_URL", "http://env-server:9090")
	setEnv(t, "HOME", t.TempDir()) // no config file to interfere

	flagURL = defaultURL
	resolveConfig()

	if flagURL != "http://env-server:9090" {
		t.Errorf("flagURL = %q, want env value", flagURL)
	}
}

func TestResolveConfigFlagWins(t *testing.T) {
	resetFlags(t)
	setEnv(t, "REELLOG_URL", "http://env-server:9090")

	flagURL = "http://flag-server:7070"
	resolveConfig()

	if flagURL != "http://flag-server:7070" {
		t.Errorf("flagURL = %q, explicit flag must win", flagURL)
	}
}

func TestResolveConfigFile(t *testing.T) {
	resetFlags(t)
	unsetEnv(t, "REELLOG_URL")

	home := t.TempDir()
	setEnv(t, "HOME", home)

	dir := filepath.Join(home, ".reellog")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("url: http://file-server:8080\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	flagURL = defaultURL
	resolveConfig()

	if flagURL != "http://file-server:8080" {
		t.Errorf("flagURL = %q, want config file value", flagURL)
	}
}

func TestResolveConfigDefaults(t *testing.T) {
	resetFlags(t)
	unsetEnv(t, "REELLOG_URL")
	setEnv(t, "HOME", t.TempDir())

	flagURL = defaultURL
	resolveConfig()

	if flagURL != defaultURL {
		t.Errorf("flagURL = %q, want default", flagURL)
	}
}
