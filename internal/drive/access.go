package drive

import (
	"context"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"drive-go/internal/model"
)

// CanRead decides whether requester may read file under perm. The owner can
// always read; otherwise Public grants everyone and Shared grants the listed
// emails. A nil perm denies.
func CanRead(file *model.LogicalFile, perm *model.Permission, requester Principal) bool {
	if file == nil {
		return false
	}
	if requester.UserID != "" && requester.UserID == file.OwnerID {
		return true
	}
	if perm == nil {
		return false
	}
	switch perm.Kind {
	case model.PermissionPublic:
		return true
	case model.PermissionShared:
		if requester.Email == "" {
			return false
		}
		for _, email := range perm.SharedWith {
			if email == requester.Email {
				return true
			}
		}
	}
	return false
}

// ParsePermissionKind accepts "private", "Public", "shared" and so on: only
// the first letter is case-insensitive.
func ParsePermissionKind(s string) (model.PermissionKind, error) {
	s = strings.TrimSpace(s)
	if s != "" {
		r, n := utf8.DecodeRuneInString(s)
		s = string(unicode.ToUpper(r)) + s[n:]
	}
	switch k := model.PermissionKind(s); k {
	case model.PermissionPrivate, model.PermissionPublic, model.PermissionShared:
		return k, nil
	}
	return "", Errorf("ParsePermissionKind", InvalidPermissionKind, "%q is not one of Private, Public, Shared", s)
}

// PermissionChange reports the outcome of SetPermission.
// Kind is the effective kind persisted, which is Private when a Shared
// request ends up sharing with nobody but the owner.
type PermissionChange struct {
	Kind     model.PermissionKind
	Applied  []string
	Rejected []string
}

// normalizeEmails trims emails and drops blanks and duplicates.
func normalizeEmails(emails []string) []string {
	seen := make(map[string]bool, len(emails))
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		e = strings.TrimSpace(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// PlanShare splits requested into the emails of known users and the rest,
// then removes the owner's own email from the known ones. If no one is left
// the change collapses to Private.
func PlanShare(requested []string, known []*model.User, ownerEmail string) *PermissionChange {
	requested = normalizeEmails(requested)
	byEmail := make(map[string]bool, len(known))
	for _, u := range known {
		byEmail[u.Email] = true
	}

	change := &PermissionChange{Kind: model.PermissionShared, Applied: []string{}, Rejected: []string{}}
	for _, e := range requested {
		switch {
		case !byEmail[e]:
			change.Rejected = append(change.Rejected, e)
		case e == ownerEmail:
			// owner is implicit
		default:
			change.Applied = append(change.Applied, e)
		}
	}
	sort.Strings(change.Applied)
	sort.Strings(change.Rejected)

	if len(change.Applied) == 0 {
		change.Kind = model.PermissionPrivate
	}
	return change
}

// GetPermission returns the permission record of one of owner's files. A
// file without a record reads as Private.
func (c *Catalog) GetPermission(ctx context.Context, owner Principal, fileID string) (*model.Permission, error) {
	const op = "GetPermission"
	if _, err := c.ownedFile(ctx, op, owner, fileID); err != nil {
		return nil, err
	}
	perm, err := c.database.GetPermission(ctx, fileID)
	if err != nil {
		return nil, E(op, Internal, err)
	}
	if perm == nil {
		perm = &model.Permission{FileID: fileID, Kind: model.PermissionPrivate}
	}
	return perm, nil
}

// SetPermission replaces the permission of one of owner's files.
// For Public and Private the email list is ignored and the share list is
// cleared. For Shared each email is resolved against the user directory;
// unknown emails are rejected and the owner's own email is dropped.
func (c *Catalog) SetPermission(ctx context.Context, owner Principal, fileID, kind string, emails []string) (*PermissionChange, error) {
	const op = "SetPermission"
	k, err := ParsePermissionKind(kind)
	if err != nil {
		return nil, E(op, InvalidPermissionKind, err)
	}
	if _, err := c.ownedFile(ctx, op, owner, fileID); err != nil {
		return nil, err
	}

	change := &PermissionChange{Kind: k, Applied: []string{}, Rejected: []string{}}
	if k == model.PermissionShared {
		requested := normalizeEmails(emails)
		known, err := c.users.ResolveEmails(ctx, requested)
		if err != nil {
			return nil, E(op, Internal, err)
		}
		change = PlanShare(requested, known, owner.Email)
	}

	perm := &model.Permission{FileID: fileID, Kind: change.Kind}
	if change.Kind == model.PermissionShared {
		perm.SharedWith = change.Applied
	}
	if err := c.database.SetPermission(ctx, perm); err != nil {
		return nil, E(op, Internal, err)
	}

	c.logger.Info("permission set", "file_id", fileID, "kind", string(change.Kind),
		"applied", len(change.Applied), "rejected", len(change.Rejected))
	return change, nil
}
