package encryption

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"filippo.io/age"
)

// AgeCipher seals snapshots with filippo.io/age to an X25519 recipient.
// The recipient is stored in plaintext next to an identity file that is
// itself age-encrypted with the passphrase (scrypt).
type AgeCipher struct {
	publicKeyPath  string
	privateKeyPath string

	// workFactor overrides age's scrypt work factor when > 0.
	workFactor int
}

var _ SnapshotCipher = (*AgeCipher)(nil)

// NewAgeCipher creates an AgeCipher using the given key files.
func NewAgeCipher(publicKeyPath, privateKeyPath string) *AgeCipher {
	return &AgeCipher{
		publicKeyPath:  publicKeyPath,
		privateKeyPath: privateKeyPath,
	}
}

// GenerateKeys writes a fresh key pair. Existing key files are never
// overwritten.
func (c *AgeCipher) GenerateKeys(passphrase string) error {
	if passphrase == "" {
		return errors.New("passphrase must not be empty")
	}
	if c.Ready() {
		return fmt.Errorf("key pair already exists at %s", c.publicKeyPath)
	}

	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return fmt.Errorf("generating key pair: %w", err)
	}

	for _, p := range []string{c.publicKeyPath, c.privateKeyPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
			return fmt.Errorf("creating key directory: %w", err)
		}
	}

	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("creating scrypt recipient: %w", err)
	}
	if c.workFactor > 0 {
		recipient.SetWorkFactor(c.workFactor)
	}

	var sealedKey bytes.Buffer
	w, err := age.Encrypt(&sealedKey, recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := io.WriteString(w, identity.String()+"\n"); err != nil {
		return fmt.Errorf("writing encrypted private key: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing encrypted private key: %w", err)
	}

	if err := writeNew(c.privateKeyPath, sealedKey.Bytes(), 0600); err != nil {
		return fmt.Errorf("writing private key: %w", err)
	}
	if err := writeNew(c.publicKeyPath, []byte(identity.Recipient().String()+"\n"), 0644); err != nil {
		os.Remove(c.privateKeyPath)
		return fmt.Errorf("writing public key: %w", err)
	}
	return nil
}

func writeNew(path string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Seal encrypts r to the stored recipient.
func (c *AgeCipher) Seal(r io.Reader, w io.Writer) error {
	recipient, err := c.Recipient()
	if err != nil {
		return err
	}

	encWriter, err := age.Encrypt(w, recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := io.Copy(encWriter, r); err != nil {
		return fmt.Errorf("encrypting snapshot: %w", err)
	}
	if err := encWriter.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}
	return nil
}

// Unlock decrypts the stored identity with passphrase.
func (c *AgeCipher) Unlock(passphrase string) (Opener, error) {
	sealedKey, err := os.ReadFile(c.privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("reading private key file: %w", err)
	}

	scrypt, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt identity: %w", err)
	}
	keyReader, err := age.Decrypt(bytes.NewReader(sealedKey), scrypt)
	if err != nil {
		return nil, fmt.Errorf("decrypting private key: %w", err)
	}

	identities, err := age.ParseIdentities(keyReader)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}
	if len(identities) == 0 {
		return nil, errors.New("no identities found in private key")
	}
	return &ageOpener{identity: identities[0]}, nil
}

// Ready reports whether both key files exist.
func (c *AgeCipher) Ready() bool {
	for _, p := range []string{c.publicKeyPath, c.privateKeyPath} {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}

func (c *AgeCipher) Extension() string { return ".age" }

// Recipient loads the public key.
func (c *AgeCipher) Recipient() (age.Recipient, error) {
	pubData, err := os.ReadFile(c.publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("reading public key: %w", err)
	}
	recipients, err := age.ParseRecipients(bytes.NewReader(pubData))
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	if len(recipients) == 0 {
		return nil, errors.New("no recipients found in public key file")
	}
	return recipients[0], nil
}

type ageOpener struct {
	identity age.Identity
}

func (o *ageOpener) Open(r io.Reader, w io.Writer) error {
	decReader, err := age.Decrypt(r, o.identity)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	if _, err := io.Copy(w, decReader); err != nil {
		return fmt.Errorf("decrypting snapshot: %w", err)
	}
	return nil
}
