package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for drive.
type Config struct {
	BaseDir   string          `toml:"base_dir"`
	LogDir    string          `toml:"log_dir"`
	Database  DatabaseConfig  `toml:"database"`
	BlobStore BlobStoreConfig `toml:"blob_store"`
	Snapshot  SnapshotConfig  `toml:"snapshot"`
}

// DatabaseConfig represents configuration for the catalog database.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DatabaseConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// BlobStoreConfig represents configuration for the store holding revision payloads.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type BlobStoreConfig struct {
	Type string `toml:"type"` // "memory", "filesystem" or "s3"

	// Filesystem-specific fields (only used when Type == "filesystem")
	FSRoot string `toml:"fs_root,omitempty"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket          string `toml:"s3_bucket,omitempty"`
	S3Prefix          string `toml:"s3_prefix,omitempty"`
	S3Region          string `toml:"s3_region,omitempty"`
	S3Endpoint        string `toml:"s3_endpoint,omitempty"` // for S3-compatible stores
	S3AccessKeyID     string `toml:"s3_access_key_id,omitempty"`
	S3SecretAccessKey string `toml:"s3_secret_access_key,omitempty"`
	S3UsePathStyle    bool   `toml:"s3_use_path_style,omitempty"`
}

// SnapshotConfig controls how catalog snapshots are sealed.
type SnapshotConfig struct {
	Encryption     string `toml:"encryption"` // "age" or "none"
	PublicKeyPath  string `toml:"public_key_path,omitempty"`
	PrivateKeyPath string `toml:"private_key_path,omitempty"`
}

// NewConfig creates a Config rooted at baseDir with a SQLite catalog,
// filesystem blobs and age-encrypted snapshots.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir: baseDir,
		LogDir:  filepath.Join(baseDir, "log"),
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "db"),
		},
		BlobStore: BlobStoreConfig{
			Type:   "filesystem",
			FSRoot: filepath.Join(baseDir, "blobs"),
		},
		Snapshot: SnapshotConfig{
			Encryption:     "age",
			PublicKeyPath:  filepath.Join(baseDir, "keys", "snapshot.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "snapshot.key"),
		},
	}
}

// Validate checks that every tagged union carries the fields its type needs.
func (c *Config) Validate() error {
	switch c.Database.Type {
	case "memory":
	case "sqlite":
		if c.Database.DataDir == "" {
			return fmt.Errorf("database: data_dir required for sqlite")
		}
	default:
		return fmt.Errorf("database: unknown type %q", c.Database.Type)
	}

	switch c.BlobStore.Type {
	case "memory":
	case "filesystem":
		if c.BlobStore.FSRoot == "" {
			return fmt.Errorf("blob_store: fs_root required for filesystem")
		}
	case "s3":
		if c.BlobStore.S3Bucket == "" {
			return fmt.Errorf("blob_store: s3_bucket required for s3")
		}
		if (c.BlobStore.S3AccessKeyID == "") != (c.BlobStore.S3SecretAccessKey == "") {
			return fmt.Errorf("blob_store: s3_access_key_id and s3_secret_access_key must be set together")
		}
	default:
		return fmt.Errorf("blob_store: unknown type %q", c.BlobStore.Type)
	}

	switch c.Snapshot.Encryption {
	case "", "none":
	case "age":
		if c.Snapshot.PublicKeyPath == "" || c.Snapshot.PrivateKeyPath == "" {
			return fmt.Errorf("snapshot: key paths required for age encryption")
		}
	default:
		return fmt.Errorf("snapshot: unknown encryption %q", c.Snapshot.Encryption)
	}
	return nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads and validates a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// The file may hold S3 credentials.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init writes cfg to path. It refuses to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
