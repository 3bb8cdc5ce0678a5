package drive

import (
	"context"

	"drive-go/internal/model"
)

// Principal is an already-authenticated requester.
type Principal struct {
	UserID string
	Email  string
}

// UserDirectory resolves emails to known accounts.
type UserDirectory interface {
	// ResolveEmails returns the accounts whose email is in emails.
	// Unknown emails are simply absent from the result.
	ResolveEmails(ctx context.Context, emails []string) ([]*model.User, error)
}
