package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultConfig(t *testing.T) {
	opts := GetDefaultOptions()

	t.Logf(`Config
		Version: %s
		Host: %s
		Port: %d
		LogLevel: %s
		Data: %s
		`, opts.Version, opts.Host, opts.Port, opts.LogLevel, opts.Data)

	if opts.Version != defaultVersion {
		t.Errorf("Version not set")
	}
	if opts.Port != defaultPort {
		t.Errorf("Port not set")
	}
}

func TestLoadConfigFile(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "config_*.toml")
	if err != nil {
		t.Fatal(err)
	}
	content := `
host = "127.0.0.1"
port = 2333
log_level = "DEBUG"
log_file = "test.log"
`
	if _, err := file.WriteString(content); err != nil {
		t.Fatal(err)
	}
	file.Close()

	opts, err := ParseFile(file.Name())
	if err != nil {
		t.Fatalf("Error loading config: %s", err)
	}
	if opts.Host != "127.0.0.1" {
		t.Errorf("Host not set")
	}
	if opts.LogFile != "test.log" {
		t.Errorf("LogFile not set")
	}
	if opts.Port != 2333 {
		t.Errorf("Port not set")
	}
	if opts.LogLevel != "DEBUG" {
		t.Errorf("LogLevel not set")
	}
}

func TestGetConfigKeepsParsedOptions(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "config_*.toml")
	if err != nil {
		t.Fatal(err)
	}
	dataDir := t.TempDir()
	content := `
host = "127.0.0.1"
port = 2333
data = "` + dataDir + `"
spotify_client_id = "client-id"
spotify_client_secret = "client-secret"
`
	if _, err := file.WriteString(content); err != nil {
		t.Fatal(err)
	}
	file.Close()

	if _, err := ParseFile(file.Name()); err != nil {
		t.Fatalf("Error loading config: %s", err)
	}
	// Flag override applied between parsing and resolving.
	Opts.Port = 2334

	opts, err := GetConfig()
	if err != nil {
		t.Fatalf("Error resolving config: %s", err)
	}
	if opts.Host != "127.0.0.1" {
		t.Errorf("Host reset to %q", opts.Host)
	}
	if opts.Port != 2334 {
		t.Errorf("Port reset to %d", opts.Port)
	}
	if opts.SpotifyClientID != "client-id" || opts.SpotifyClientSecret != "client-secret" {
		t.Errorf("Spotify credentials reset: %q / %q", opts.SpotifyClientID, opts.SpotifyClientSecret)
	}
	if opts.DSN != filepath.Join(dataDir, "soundbound.db") {
		t.Errorf("unexpected DSN %q", opts.DSN)
	}
}
