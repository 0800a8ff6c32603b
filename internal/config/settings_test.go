package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.URL != defaultServerURL {
		t.Fatalf("unexpected server url %q", cfg.Server.URL)
	}
	if cfg.Storage.Backend != "bbolt" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
url = "https://nutribot.example.com/api/"
timeout_seconds = 10

[storage]
backend = "file"

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.URL != "https://nutribot.example.com/api" {
		t.Fatalf("trailing slash must be trimmed, got %q", cfg.Server.URL)
	}
	if cfg.Server.TimeoutSeconds != 10 || cfg.Storage.Backend != "file" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("NUTRIBOT_SERVER", "http://localhost:9999")
	t.Setenv("NUTRIBOT_LOG_LEVEL", "warn")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.URL != "http://localhost:9999" {
		t.Fatalf("env server override ignored, got %q", cfg.Server.URL)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("env log level override ignored, got %q", cfg.Logging.Level)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Server.URL = "http://localhost:8080/api"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Server.URL != "http://localhost:8080/api" {
		t.Fatalf("round trip lost server url, got %q", loaded.Server.URL)
	}
}

func TestDataDirHonorsOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(envDataDir, dir)

	got, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if got != dir {
		t.Fatalf("expected %q, got %q", dir, got)
	}
	dbPath, err := DBPath()
	if err != nil {
		t.Fatalf("DBPath: %v", err)
	}
	if dbPath != filepath.Join(dir, "nutribot.db") {
		t.Fatalf("unexpected db path %q", dbPath)
	}
}
