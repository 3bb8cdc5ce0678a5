package fs

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	writeFile(t, path, "%PDF-1.4 hello")

	src, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if src.Name != "report.pdf" {
		t.Errorf("Name = %q, want %q", src.Name, "report.pdf")
	}
	if src.Size != 14 {
		t.Errorf("Size = %d, want 14", src.Size)
	}
	if src.MimeType != "application/pdf" {
		t.Errorf("MimeType = %q, want %q", src.MimeType, "application/pdf")
	}

	rc, err := src.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "%PDF-1.4 hello" {
		t.Errorf("content = %q", data)
	}
}

func TestResolve_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Resolve(dir); err == nil {
		t.Error("Resolve(directory) expected error")
	}
	if _, err := Resolve(filepath.Join(dir, "missing")); err == nil {
		t.Error("Resolve(missing) expected error")
	}
}

func TestDetectMimeType(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "notes.txt", content: "hello", want: "text/plain"},
		{name: "page.html", content: "<p>", want: "text/html"},
		{name: "noext-text", content: "plain words here", want: "text/plain"},
		{name: "noext-png", content: "\x89PNG\r\n\x1a\n0000", want: "image/png"},
		{name: "noext-empty", content: "", want: "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			writeFile(t, path, tt.content)

			got, err := DetectMimeType(path)
			if err != nil {
				t.Fatalf("DetectMimeType() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectMimeType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "b.tmp"), "b")
	writeFile(t, filepath.Join(dir, "sub", "c.txt"), "c")
	writeFile(t, filepath.Join(dir, "cache", "d.txt"), "d")
	writeFile(t, filepath.Join(dir, IgnoreFileName), "*.tmp\ncache/\n")

	ignore, err := LoadIgnoreFile(dir)
	if err != nil {
		t.Fatalf("LoadIgnoreFile() error = %v", err)
	}

	t.Run("flat", func(t *testing.T) {
		got, err := Collect(dir, false, ignore)
		if err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		assertNames(t, got, "a.txt")
	})

	t.Run("recursive", func(t *testing.T) {
		got, err := Collect(dir, true, ignore)
		if err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		assertNames(t, got, "a.txt", "c.txt")
	})

	t.Run("without matcher", func(t *testing.T) {
		got, err := Collect(dir, false, nil)
		if err != nil {
			t.Fatalf("Collect() error = %v", err)
		}
		assertNames(t, got, IgnoreFileName, "a.txt", "b.tmp")
	})
}

func assertNames(t *testing.T, got []*Source, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		names := make([]string, len(got))
		for i, s := range got {
			names[i] = s.Name
		}
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i].Name, want[i])
		}
	}
}
