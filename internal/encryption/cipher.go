// Package encryption seals catalog snapshots before they are written to the
// blob store.
package encryption

import "io"

// SnapshotCipher seals snapshot bytes for storage. Sealing only needs the
// public half of the key material; opening needs a passphrase.
type SnapshotCipher interface {
	// GenerateKeys creates new key material protected by passphrase.
	GenerateKeys(passphrase string) error

	// Seal reads plaintext from r and writes the sealed form to w.
	Seal(r io.Reader, w io.Writer) error

	// Unlock returns an Opener for snapshots sealed by this cipher.
	Unlock(passphrase string) (Opener, error)

	// Ready reports whether Seal can be called.
	Ready() bool

	// Extension is appended to snapshot names, e.g. ".age".
	Extension() string
}

// Opener reverses Seal.
type Opener interface {
	Open(r io.Reader, w io.Writer) error
}
