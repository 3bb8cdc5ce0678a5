package drive

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies catalog errors. Callers map a Kind to a status class with
// StatusClass; the zero value is Internal.
type Kind uint8

const (
	Internal              Kind = iota // store or blob failure
	NotFound                          // entity absent
	NotFoundOrForbidden               // absent or not readable by the requester; never says which
	PathMismatch                      // directory name is not the last segment of its path
	InvalidRequest                    // malformed input
	InvalidPermissionKind             // permission kind outside Private/Public/Shared
	Conflict                          // duplicate entity
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case NotFoundOrForbidden:
		return "file not found or access denied"
	case PathMismatch:
		return "path mismatch"
	case InvalidRequest:
		return "invalid request"
	case InvalidPermissionKind:
		return "invalid permission kind"
	case Conflict:
		return "conflict"
	default:
		return "internal error"
	}
}

// StatusClass returns the HTTP status an outer transport should report for k.
func (k Kind) StatusClass() int {
	switch k {
	case NotFound, NotFoundOrForbidden:
		return http.StatusNotFound
	case PathMismatch, InvalidRequest, InvalidPermissionKind:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is the error type returned by catalog operations.
type Error struct {
	Op   string // operation being performed, e.g. "Upload"
	Kind Kind
	Err  error // underlying cause, if any
}

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrNotFound              = &Error{Kind: NotFound}
	ErrNotFoundOrForbidden   = &Error{Kind: NotFoundOrForbidden}
	ErrPathMismatch          = &Error{Kind: PathMismatch}
	ErrInvalidRequest        = &Error{Kind: InvalidRequest}
	ErrInvalidPermissionKind = &Error{Kind: InvalidPermissionKind}
	ErrConflict              = &Error{Kind: Conflict}
	ErrInternal              = &Error{Kind: Internal}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	// The wrapped cause of a NotFoundOrForbidden must not leak.
	if e.Err != nil && e.Kind != NotFoundOrForbidden {
		msg += ": " + e.Err.Error()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a sentinel of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Op != "" || t.Err != nil {
		return false
	}
	return t.Kind == e.Kind
}

// E builds an *Error. If err is already an *Error with a non-Internal kind
// and kind is Internal, the inner kind is preserved.
func E(op string, kind Kind, err error) error {
	if kind == Internal {
		var inner *Error
		if errors.As(err, &inner) && inner.Kind != Internal {
			kind = inner.Kind
		}
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

// Errorf builds an *Error with a formatted cause.
func Errorf(op string, kind Kind, format string, args ...any) error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the Kind of err, looking through wrapping. Errors that
// carry no Kind are Internal.
func KindOf(err error) Kind {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return Internal
		}
		if e.Kind != Internal {
			return e.Kind
		}
		err = e.Err
	}
	return Internal
}
