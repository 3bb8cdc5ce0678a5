package encryption

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestAgeCipher(t *testing.T) *AgeCipher {
	t.Helper()
	dir := t.TempDir()
	c := NewAgeCipher(
		filepath.Join(dir, "keys", "snapshot.pub"),
		filepath.Join(dir, "keys", "snapshot.key"),
	)
	// Keep scrypt cheap in tests.
	c.workFactor = 10
	return c
}

func TestAgeCipher_Ready(t *testing.T) {
	t.Parallel()
	c := newTestAgeCipher(t)
	if c.Ready() {
		t.Error("Ready() = true before GenerateKeys, want false")
	}

	if err := c.GenerateKeys("passphrase"); err != nil {
		t.Fatalf("GenerateKeys() error = %v", err)
	}
	if !c.Ready() {
		t.Error("Ready() = false after GenerateKeys, want true")
	}

	info, err := os.Stat(c.privateKeyPath)
	if err != nil {
		t.Fatalf("private key missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("private key mode = %v, want 0600", info.Mode().Perm())
	}

	pub, err := os.ReadFile(c.publicKeyPath)
	if err != nil {
		t.Fatalf("public key missing: %v", err)
	}
	if !strings.HasPrefix(string(pub), "age1") {
		t.Errorf("public key = %q, want age1 prefix", pub)
	}
}

func TestAgeCipher_GenerateKeys_Refuses(t *testing.T) {
	t.Parallel()

	t.Run("empty passphrase", func(t *testing.T) {
		c := newTestAgeCipher(t)
		if err := c.GenerateKeys(""); err == nil {
			t.Error("GenerateKeys(\"\") expected error")
		}
	})

	t.Run("existing keys", func(t *testing.T) {
		c := newTestAgeCipher(t)
		if err := c.GenerateKeys("one"); err != nil {
			t.Fatalf("GenerateKeys() error = %v", err)
		}
		before, _ := os.ReadFile(c.publicKeyPath)

		if err := c.GenerateKeys("two"); err == nil {
			t.Error("second GenerateKeys() expected error")
		}
		after, _ := os.ReadFile(c.publicKeyPath)
		if !bytes.Equal(before, after) {
			t.Error("public key was overwritten")
		}
	})
}

func TestAgeCipher_SealOpenRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
	}{
		{name: "sqlite header", input: []byte("SQLite format 3\x00")},
		{name: "empty", input: []byte{}},
		{name: "large", input: bytes.Repeat([]byte("catalog"), 20000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestAgeCipher(t)
			if err := c.GenerateKeys("secret"); err != nil {
				t.Fatalf("GenerateKeys() error = %v", err)
			}

			var sealed bytes.Buffer
			if err := c.Seal(bytes.NewReader(tt.input), &sealed); err != nil {
				t.Fatalf("Seal() error = %v", err)
			}
			if len(tt.input) > 0 && bytes.Contains(sealed.Bytes(), tt.input) {
				t.Error("sealed output contains the plaintext")
			}

			opener, err := c.Unlock("secret")
			if err != nil {
				t.Fatalf("Unlock() error = %v", err)
			}
			var opened bytes.Buffer
			if err := opener.Open(&sealed, &opened); err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if !bytes.Equal(opened.Bytes(), tt.input) {
				t.Errorf("round trip got %d bytes, want %d", opened.Len(), len(tt.input))
			}
		})
	}
}

func TestAgeCipher_UnlockWrongPassphrase(t *testing.T) {
	t.Parallel()

	c := newTestAgeCipher(t)
	if err := c.GenerateKeys("correct"); err != nil {
		t.Fatalf("GenerateKeys() error = %v", err)
	}
	if _, err := c.Unlock("wrong"); err == nil {
		t.Error("Unlock() with wrong passphrase should return error")
	}
}

func TestAgeCipher_WithoutKeys(t *testing.T) {
	t.Parallel()

	c := newTestAgeCipher(t)
	if err := c.Seal(strings.NewReader("data"), &bytes.Buffer{}); err == nil {
		t.Error("Seal() without keys should return error")
	}
	if _, err := c.Unlock("passphrase"); err == nil {
		t.Error("Unlock() without keys should return error")
	}
}
