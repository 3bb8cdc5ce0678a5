package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	homeDir, _ := os.UserHomeDir()

	tests := []struct {
		name       string
		configEnv  string
		homeEnv    string
		wantConfig string
		wantBase   string
	}{
		{
			name:       "env vars",
			configEnv:  "/custom/drive.toml",
			homeEnv:    "/srv/drive",
			wantConfig: "/custom/drive.toml",
			wantBase:   "/srv/drive",
		},
		{
			name:       "home dir fallback",
			wantConfig: filepath.Join(homeDir, ".config", "drive.toml"),
			wantBase:   filepath.Join(homeDir, ".local", "share", "drive"),
		},
		{
			name:       "only base dir overridden",
			homeEnv:    "/srv/drive",
			wantConfig: filepath.Join(homeDir, ".config", "drive.toml"),
			wantBase:   "/srv/drive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DRIVE_CONFIG_PATH", tt.configEnv)
			t.Setenv("DRIVE_HOME", tt.homeEnv)

			defaults, err := GetDefaults()
			if err != nil {
				t.Fatalf("GetDefaults() error = %v", err)
			}
			if defaults["config_path"] != tt.wantConfig {
				t.Errorf("config_path = %q, want %q", defaults["config_path"], tt.wantConfig)
			}
			if defaults["base_dir"] != tt.wantBase {
				t.Errorf("base_dir = %q, want %q", defaults["base_dir"], tt.wantBase)
			}
			if want := filepath.Join(tt.wantBase, "log"); defaults["log_dir"] != want {
				t.Errorf("log_dir = %q, want %q", defaults["log_dir"], want)
			}
		})
	}
}
