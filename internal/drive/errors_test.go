package drive_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"drive-go/internal/drive"
)

func TestError_Is(t *testing.T) {
	err := drive.Errorf("Upload", drive.PathMismatch, "name %q", "docs")

	if !errors.Is(err, drive.ErrPathMismatch) {
		t.Error("errors.Is(err, ErrPathMismatch) = false")
	}
	if errors.Is(err, drive.ErrNotFound) {
		t.Error("errors.Is(err, ErrNotFound) = true")
	}

	wrapped := fmt.Errorf("handling request: %w", err)
	if !errors.Is(wrapped, drive.ErrPathMismatch) {
		t.Error("kind lost through fmt wrapping")
	}
}

func TestE_PreservesInnerKind(t *testing.T) {
	inner := drive.Errorf("CreateDirectory", drive.Conflict, "exists")

	outer := drive.E("Move", drive.Internal, fmt.Errorf("store: %w", inner))
	if !errors.Is(outer, drive.ErrConflict) {
		t.Errorf("E() = %v, want Conflict", outer)
	}
	if got := drive.KindOf(outer); got != drive.Conflict {
		t.Errorf("KindOf() = %v, want Conflict", got)
	}

	explicit := drive.E("SetPermission", drive.InvalidPermissionKind, inner)
	if got := drive.KindOf(explicit); got != drive.InvalidPermissionKind {
		t.Errorf("KindOf() = %v, want InvalidPermissionKind", got)
	}

	plain := drive.E("List", drive.Internal, errors.New("disk full"))
	if got := drive.KindOf(plain); got != drive.Internal {
		t.Errorf("KindOf() = %v, want Internal", got)
	}
}

func TestError_Message(t *testing.T) {
	err := drive.E("Download", drive.NotFoundOrForbidden, errors.New("owned by bob"))
	if strings.Contains(err.Error(), "bob") {
		t.Errorf("message %q leaks the cause", err.Error())
	}
	if got, want := err.Error(), "Download: file not found or access denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = drive.Errorf("Search", drive.InvalidRequest, "keyword is required")
	if got, want := err.Error(), "Search: invalid request: keyword is required"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestKind_StatusClass(t *testing.T) {
	tests := map[drive.Kind]int{
		drive.NotFound:              http.StatusNotFound,
		drive.NotFoundOrForbidden:   http.StatusNotFound,
		drive.PathMismatch:          http.StatusBadRequest,
		drive.InvalidRequest:        http.StatusBadRequest,
		drive.InvalidPermissionKind: http.StatusBadRequest,
		drive.Conflict:              http.StatusConflict,
		drive.Internal:              http.StatusInternalServerError,
	}
	for k, want := range tests {
		if got := k.StatusClass(); got != want {
			t.Errorf("%v.StatusClass() = %d, want %d", k, got, want)
		}
	}
}

func TestKindOf_Nil(t *testing.T) {
	if got := drive.KindOf(nil); got != drive.Internal {
		t.Errorf("KindOf(nil) = %v, want Internal", got)
	}
}
