package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"drive-go/internal/drive"
)

const snapshotDir = "snapshots"

// GenerateSnapshotKeys creates the snapshot key pair protected by passphrase.
func (a *DriveApp) GenerateSnapshotKeys(passphrase string) error {
	if err := a.cipher.GenerateKeys(passphrase); err != nil {
		return fmt.Errorf("generating snapshot keys: %w", err)
	}
	return nil
}

// CreateSnapshot copies the catalog database, seals it and saves it to the
// blob store under snapshots/. It returns the blob path of the snapshot.
func (a *DriveApp) CreateSnapshot(ctx context.Context) (string, error) {
	var name string
	err := a.mutate(ctx, func() error {
		if !a.cipher.Ready() {
			return fmt.Errorf("snapshot keys not found: run drive snapshot keygen")
		}

		tmpDir, err := os.MkdirTemp("", "drive-snapshot-*")
		if err != nil {
			return fmt.Errorf("creating temp directory: %w", err)
		}
		defer os.RemoveAll(tmpDir)

		// VACUUM INTO refuses to overwrite, so target a fresh path.
		dbCopy := filepath.Join(tmpDir, "drive.db")
		if err := a.db.BackupTo(ctx, dbCopy); err != nil {
			return err
		}
		f, err := os.Open(dbCopy)
		if err != nil {
			return fmt.Errorf("opening database copy: %w", err)
		}
		defer f.Close()

		name = path.Join(snapshotDir, fmt.Sprintf("drive-%s-%s.db%s",
			a.clock.Now().Format("20060102T150405Z"), drive.UUIDGenerator{}.New()[:8], a.cipher.Extension()))

		pr, pw := io.Pipe()
		done := make(chan struct{})
		go func() {
			defer close(done)
			pw.CloseWithError(a.cipher.Seal(f, pw))
		}()

		_, err = a.blobs.Save(ctx, name, pr)
		pr.CloseWithError(err)
		<-done
		if err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
		a.logger.Info("snapshot created", "path", name)
		return nil
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// RestoreSnapshot opens the snapshot stored under name and writes the
// database it holds to destPath, which must not exist.
func (a *DriveApp) RestoreSnapshot(ctx context.Context, name, destPath, passphrase string) error {
	opener, err := a.cipher.Unlock(passphrase)
	if err != nil {
		return fmt.Errorf("unlocking snapshot keys: %w", err)
	}

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("creating %s: %w", destPath, err)
	}

	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(a.blobs.Get(ctx, name, pw))
	}()

	err = opener.Open(pr, out)
	pr.CloseWithError(err)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(destPath)
		return fmt.Errorf("restoring snapshot %s: %w", name, err)
	}
	a.logger.Info("snapshot restored", "path", name, "dest", destPath)
	return nil
}
