// Package fs reads local files that the CLI uploads into the catalog.
package fs

import (
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source is a regular local file ready to be uploaded.
type Source struct {
	Path     string // absolute path
	Name     string // display name used in the catalog
	Size     int64
	MimeType string
}

// Open opens the file for reading.
func (s *Source) Open() (io.ReadCloser, error) {
	return os.Open(s.Path)
}

// Resolve validates rawPath and returns it as a Source. Only regular files
// are accepted.
func Resolve(rawPath string) (*Source, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat path: %w", err)
	}
	return newSource(absPath, info)
}

func newSource(absPath string, info fs.FileInfo) (*Source, error) {
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", absPath)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", absPath)
	}
	mimeType, err := DetectMimeType(absPath)
	if err != nil {
		return nil, err
	}
	return &Source{
		Path:     absPath,
		Name:     filepath.Base(absPath),
		Size:     info.Size(),
		MimeType: mimeType,
	}, nil
}

// Collect returns the regular files below dir, sorted by path. Files matched
// by ignore are skipped, as are directories it matches when recursive.
func Collect(dir string, recursive bool, ignore *IgnoreMatcher) ([]*Source, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	var sources []*Source
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive || ignore.MatchDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || ignore.Match(rel) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", p, err)
		}
		src, err := newSource(p, info)
		if err != nil {
			return err
		}
		sources = append(sources, src)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Path < sources[j].Path })
	return sources, nil
}

// DetectMimeType guesses the media type of a file, first from its extension
// and then by sniffing its first 512 bytes. Parameters such as charset are
// dropped.
func DetectMimeType(path string) (string, error) {
	if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
		return baseMediaType(byExt), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("reading file: %w", err)
	}
	if n == 0 {
		return "application/octet-stream", nil
	}
	return baseMediaType(http.DetectContentType(head[:n])), nil
}

func baseMediaType(v string) string {
	mediaType, _, err := mime.ParseMediaType(v)
	if err != nil {
		return strings.TrimSpace(strings.SplitN(v, ";", 2)[0])
	}
	return mediaType
}
