package drive

import "path"

// NextVersionNumber returns the version number that follows current, the
// highest version number a logical file has so far (0 when it has none).
// The caller must read current and insert the new revision in one
// transaction.
func NextVersionNumber(current int64) int64 {
	if current < 1 {
		return 1
	}
	return current + 1
}

// RevisionPath is the blob store path of a revision payload. It depends only
// on ids generated by the catalog, never on names supplied by the user.
func RevisionPath(ownerID, revisionID string) string {
	return path.Join("users", ownerID, revisionID)
}
