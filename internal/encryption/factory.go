package encryption

import (
	"fmt"

	"drive-go/internal/config"
)

// NewCipherFromConfig creates a SnapshotCipher based on the configured encryption.
func NewCipherFromConfig(cfg config.SnapshotConfig) (SnapshotCipher, error) {
	switch cfg.Encryption {
	case "age":
		return NewAgeCipher(cfg.PublicKeyPath, cfg.PrivateKeyPath), nil
	case "none", "":
		return PlainCipher{}, nil
	default:
		return nil, fmt.Errorf("unknown snapshot encryption: %q", cfg.Encryption)
	}
}
