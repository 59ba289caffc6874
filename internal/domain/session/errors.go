package session

import "errors"

// Resolver errors.
var (
	// ErrUnauthenticated means there is no valid identity; callers redirect to
	// login preserving the originally requested location.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrNoWorkspace means the user belongs to no organization; callers
	// redirect to the workspace-creation flow.
	ErrNoWorkspace = errors.New("no workspace")

	// ErrRefreshRequired means the resolver just persisted a fresh active
	// organization and the caller must re-resolve the current request once so
	// the selection becomes visible. It never recurs once the pointer is set.
	ErrRefreshRequired = errors.New("active organization set, re-resolve")

	// ErrNotAMember means the requested active organization does not belong
	// to the user.
	ErrNotAMember = errors.New("not a member of this organization")
)
