package encryption

import (
	"fmt"
	"io"
)

// PlainCipher stores snapshots unencrypted. It backs encryption = "none".
type PlainCipher struct{}

var (
	_ SnapshotCipher = PlainCipher{}
	_ Opener         = PlainCipher{}
)

func (PlainCipher) GenerateKeys(string) error { return nil }

func (PlainCipher) Seal(r io.Reader, w io.Writer) error {
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copying snapshot: %w", err)
	}
	return nil
}

func (p PlainCipher) Unlock(string) (Opener, error) { return p, nil }

func (PlainCipher) Ready() bool { return true }

func (PlainCipher) Extension() string { return "" }

func (p PlainCipher) Open(r io.Reader, w io.Writer) error { return p.Seal(r, w) }
