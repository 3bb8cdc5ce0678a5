package fs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIgnoreMatcher(t *testing.T) {
	tests := []struct {
		name  string
		rules []string
		rel   string
		isDir bool
		want  bool
	}{
		{name: "ignore file always skipped", rules: nil, rel: IgnoreFileName, want: true},
		{name: "basename glob at root", rules: []string{"*.tmp"}, rel: "a.tmp", want: true},
		{name: "basename glob in subdirectory", rules: []string{"*.tmp"}, rel: filepath.Join("sub", "a.tmp"), want: true},
		{name: "other extension kept", rules: []string{"*.tmp"}, rel: "a.pdf", want: false},
		{name: "anchored path", rules: []string{"build/out.bin"}, rel: filepath.Join("build", "out.bin"), want: true},
		{name: "anchored path elsewhere", rules: []string{"build/out.bin"}, rel: filepath.Join("x", "build", "out.bin"), want: false},
		{name: "leading slash stripped", rules: []string{"/notes.txt"}, rel: "notes.txt", want: true},
		{name: "negation re-includes", rules: []string{"*.log", "!keep.log"}, rel: "keep.log", want: false},
		{name: "last rule wins", rules: []string{"!keep.log", "*.log"}, rel: "keep.log", want: true},
		{name: "dir rule skips directory", rules: []string{"node_modules/"}, rel: "node_modules", isDir: true, want: true},
		{name: "dir rule ignores files", rules: []string{"node_modules/"}, rel: "node_modules", want: false},
		{name: "comments and blanks", rules: []string{"", "# *.pdf", "  "}, rel: "a.pdf", want: false},
		{name: "bad pattern skipped", rules: []string{"[", "*.tmp"}, rel: "a.tmp", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewIgnoreMatcher(tt.rules)
			var got bool
			if tt.isDir {
				got = m.MatchDir(tt.rel)
			} else {
				got = m.Match(tt.rel)
			}
			if got != tt.want {
				t.Errorf("match(%q, dir=%v) = %v, want %v", tt.rel, tt.isDir, got, tt.want)
			}
		})
	}
}

func TestIgnoreMatcher_Nil(t *testing.T) {
	var m *IgnoreMatcher
	if m.Match("anything") || m.MatchDir("anything") {
		t.Error("nil matcher should ignore nothing")
	}
}

func TestLoadIgnoreFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		m, err := LoadIgnoreFile(t.TempDir())
		if err != nil {
			t.Fatalf("LoadIgnoreFile() error = %v", err)
		}
		if m.Match("a.tmp") {
			t.Error("expected no rules besides the ignore file")
		}
		if !m.Match(IgnoreFileName) {
			t.Error("ignore file itself should be skipped")
		}
	})

	t.Run("reads rules", func(t *testing.T) {
		dir := t.TempDir()
		content := "# scratch\n*.tmp\n!important.tmp\n"
		if err := os.WriteFile(filepath.Join(dir, IgnoreFileName), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		m, err := LoadIgnoreFile(dir)
		if err != nil {
			t.Fatalf("LoadIgnoreFile() error = %v", err)
		}
		if !m.Match("scratch.tmp") {
			t.Error("scratch.tmp should be ignored")
		}
		if m.Match("important.tmp") {
			t.Error("important.tmp should be kept")
		}
	})
}
