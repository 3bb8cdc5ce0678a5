package fs

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// IgnoreFileName is the per-directory file listing upload exclusions.
const IgnoreFileName = ".driveignore"

type ignoreRule struct {
	glob    string
	negate  bool // "!pattern" re-includes a previously ignored file
	dirOnly bool // "pattern/" only matches directories
	anchor  bool // contains '/', matched against the relative path
}

// IgnoreMatcher decides which local files an upload skips. Rules are
// evaluated in order and the last matching rule wins. The ignore file itself
// is always skipped. A nil matcher ignores nothing.
type IgnoreMatcher struct {
	rules []ignoreRule
}

// NewIgnoreMatcher parses rules, one per line. Blank lines and lines
// starting with '#' are skipped.
func NewIgnoreMatcher(lines []string) *IgnoreMatcher {
	m := &IgnoreMatcher{rules: []ignoreRule{{glob: IgnoreFileName}}}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var r ignoreRule
		if strings.HasPrefix(line, "!") {
			r.negate = true
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			r.dirOnly = true
			line = strings.TrimSuffix(line, "/")
		}
		line = strings.TrimPrefix(line, "/")
		if line == "" {
			continue
		}
		r.anchor = strings.Contains(line, "/")
		r.glob = line
		m.rules = append(m.rules, r)
	}
	return m
}

// Match reports whether the file at rel (relative to the upload root) is
// ignored.
func (m *IgnoreMatcher) Match(rel string) bool {
	return m.match(rel, false)
}

// MatchDir reports whether the directory at rel is ignored.
func (m *IgnoreMatcher) MatchDir(rel string) bool {
	return m.match(rel, true)
}

func (m *IgnoreMatcher) match(rel string, isDir bool) bool {
	if m == nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	ignored := false
	for _, r := range m.rules {
		if r.dirOnly && !isDir {
			continue
		}
		subject := path.Base(rel)
		if r.anchor {
			subject = rel
		}
		ok, err := path.Match(r.glob, subject)
		if err != nil || !ok {
			continue
		}
		ignored = !r.negate
	}
	return ignored
}

// LoadIgnoreFile reads the ignore file in dir. A missing file yields a
// matcher that only skips the ignore file itself.
func LoadIgnoreFile(dir string) (*IgnoreMatcher, error) {
	f, err := os.Open(filepath.Join(dir, IgnoreFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewIgnoreMatcher(nil), nil
		}
		return nil, fmt.Errorf("opening ignore file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ignore file: %w", err)
	}
	return NewIgnoreMatcher(lines), nil
}
