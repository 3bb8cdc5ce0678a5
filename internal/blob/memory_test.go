package blob

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	got, err := m.Save(ctx, "users/u1/r1", strings.NewReader("hello world"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got != "users/u1/r1" {
		t.Errorf("Save() path = %q, want %q", got, "users/u1/r1")
	}

	ok, err := m.Exists(ctx, "users/u1/r1")
	if err != nil || !ok {
		t.Fatalf("Exists() = %v, %v; want true, nil", ok, err)
	}

	var buf bytes.Buffer
	if err := m.Get(ctx, "users/u1/r1", &buf); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if buf.String() != "hello world" {
		t.Errorf("Get() = %q, want %q", buf.String(), "hello world")
	}

	if err := m.Delete(ctx, "users/u1/r1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if ok, _ := m.Exists(ctx, "users/u1/r1"); ok {
		t.Error("blob still exists after Delete()")
	}
	if err := m.Delete(ctx, "users/u1/r1"); err != nil {
		t.Errorf("second Delete() error = %v, want nil", err)
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	m := NewMemoryStore()
	err := m.Get(context.Background(), "nope", &bytes.Buffer{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_Paths(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	for _, p := range []string{"users/b/2", "users/a/1", "snapshots/s"} {
		if _, err := m.Save(ctx, p, strings.NewReader("x")); err != nil {
			t.Fatalf("Save(%q) error = %v", p, err)
		}
	}

	got := m.Paths()
	want := []string{"snapshots/s", "users/a/1", "users/b/2"}
	if len(got) != len(want) {
		t.Fatalf("Paths() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Paths()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCleanKey(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "users/u1/r1", want: "users/u1/r1"},
		{in: "users//u1/./r1", want: "users/u1/r1"},
		{in: "", wantErr: true},
		{in: "/etc/passwd", wantErr: true},
		{in: "../escape", wantErr: true},
		{in: "users/../../escape", wantErr: true},
		{in: ".", wantErr: true},
		{in: `users\u1`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := cleanKey(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("cleanKey(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("cleanKey(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
