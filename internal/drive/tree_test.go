package drive_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"drive-go/internal/drive"
	"drive-go/internal/model"
)

func TestValidateDirectoryPath(t *testing.T) {
	tests := []struct {
		name, path string
		want       error
	}{
		{"docs", "/docs", nil},
		{"reports", "/work/reports", nil},
		{"docs", "docs", nil},
		{"docs", "/work/reports", drive.ErrPathMismatch},
		{"docs", "/docs/", drive.ErrPathMismatch},
		{"a/b", "/a/b", drive.ErrPathMismatch},
		{"", "/docs", drive.ErrInvalidRequest},
		{"docs", "", drive.ErrInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name+" "+tt.path, func(t *testing.T) {
			err := drive.ValidateDirectoryPath(tt.name, tt.path)
			if tt.want == nil {
				if err != nil {
					t.Errorf("ValidateDirectoryPath() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("ValidateDirectoryPath() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParentPath(t *testing.T) {
	tests := map[string]string{
		"/docs":         "",
		"docs":          "",
		"/work/reports": "/work",
		"/a/b/c":        "/a/b",
	}
	for in, want := range tests {
		if got := drive.ParentPath(in); got != want {
			t.Errorf("ParentPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func ptr(s string) *string { return &s }

func TestCascadeClosure(t *testing.T) {
	children := []*model.Directory{
		{ID: "b", ParentID: ptr("a")},
		{ID: "c", ParentID: ptr("b")},
		{ID: "y", ParentID: ptr("x")},
		{ID: "z"},
	}

	got := drive.CascadeClosure([]string{"a", "x", "a"}, children)
	want := []string{"a", "x", "b", "y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CascadeClosure() = %v, want %v", got, want)
	}

	got = drive.CascadeClosure([]string{"c"}, children)
	if !reflect.DeepEqual(got, []string{"c"}) {
		t.Errorf("CascadeClosure(leaf) = %v, want [c]", got)
	}
}

func TestCheckMove(t *testing.T) {
	// a -> b -> c, and a separate root r.
	parents := map[string]*string{
		"a": nil,
		"b": ptr("a"),
		"c": ptr("b"),
		"r": nil,
	}
	lookup := func(_ context.Context, id string) (*string, bool, error) {
		p, ok := parents[id]
		return p, ok, nil
	}
	ctx := context.Background()

	tests := []struct {
		name   string
		dir    string
		parent *string
		want   error
	}{
		{"to root", "c", nil, nil},
		{"to unrelated root", "a", ptr("r"), nil},
		{"to sibling subtree", "c", ptr("a"), nil},
		{"into itself", "a", ptr("a"), drive.ErrInvalidRequest},
		{"into child", "a", ptr("b"), drive.ErrInvalidRequest},
		{"into grandchild", "a", ptr("c"), drive.ErrInvalidRequest},
		{"missing destination", "a", ptr("nope"), drive.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := drive.CheckMove(ctx, tt.dir, tt.parent, lookup)
			if tt.want == nil {
				if err != nil {
					t.Errorf("CheckMove() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("CheckMove() error = %v, want %v", err, tt.want)
			}
		})
	}

	t.Run("lookup failure is returned", func(t *testing.T) {
		boom := errors.New("boom")
		failing := func(context.Context, string) (*string, bool, error) { return nil, false, boom }
		if err := drive.CheckMove(ctx, "a", ptr("b"), failing); !errors.Is(err, boom) {
			t.Errorf("CheckMove() error = %v, want %v", err, boom)
		}
	})
}

func TestParseItemKind(t *testing.T) {
	for in, want := range map[string]drive.ItemKind{
		"file":      drive.ItemFile,
		"File":      drive.ItemFile,
		"DIRECTORY": drive.ItemDirectory,
	} {
		got, err := drive.ParseItemKind(in)
		if err != nil || got != want {
			t.Errorf("ParseItemKind(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := drive.ParseItemKind("folder"); !errors.Is(err, drive.ErrInvalidRequest) {
		t.Errorf("ParseItemKind(folder) error = %v, want InvalidRequest", err)
	}
}
