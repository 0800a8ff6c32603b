package config

import (
	"os"
	"path/filepath"
)

const appDirName = ".nutribot"

// envDataDir overrides the data directory, mostly for tests.
const envDataDir = "NUTRIBOT_HOME"

// DataDir returns the base data directory for nutribot.
func DataDir() (string, error) {
	if override := os.Getenv(envDataDir); override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// ConfigPath returns the path to the TOML configuration file.
func ConfigPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "config.toml"), nil
}

// DBPath returns the path to the bbolt database.
func DBPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "nutribot.db"), nil
}

// CredentialsPath returns the credentials file used by the file backend.
func CredentialsPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "credentials.json"), nil
}

// PreferencesPath returns the preferences file used by the file backend.
func PreferencesPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "preferences.json"), nil
}

// LogPath returns the log file location. The TUI owns stdout, so logs go to
// a file.
func LogPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "nutribot.log"), nil
}
