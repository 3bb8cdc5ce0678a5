package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - DRIVE_CONFIG_PATH: config file location (default: ~/.config/drive.toml)
//   - DRIVE_HOME: base directory for catalog data (default: ~/.local/share/drive)
func GetDefaults() (map[string]string, error) {
	configPath, err := envOrHome("DRIVE_CONFIG_PATH", ".config", "drive.toml")
	if err != nil {
		return nil, err
	}
	baseDir, err := envOrHome("DRIVE_HOME", ".local", "share", "drive")
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// envOrHome returns the value of env if set, else the path below the home
// directory.
func envOrHome(env string, elem ...string) (string, error) {
	if path := os.Getenv(env); path != "" {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(append([]string{homeDir}, elem...)...), nil
}
