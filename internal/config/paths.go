package config

import (
	"os"
	"path/filepath"
)

const appDirName = ".brain"

// DataDir returns the base data directory.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

// CoreConfigPath returns the path to the TOML configuration file.
func CoreConfigPath() (string, error) {
	return dataPath("config.toml")
}

// UILogPath returns the log file used while the terminal UI owns stdout.
func UILogPath() (string, error) {
	return dataPath("ui.log")
}

// DefaultDBPath returns the SQLite file backing the local notes service.
func DefaultDBPath() (string, error) {
	return dataPath("notes.db")
}

func dataPath(name string) (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, name), nil
}
