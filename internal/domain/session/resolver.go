// Package session resolves an authenticated identity into a workspace
// context, enforcing the onboarding invariants: a signed-in user navigating a
// workspace-scoped area must belong to at least one organization and must
// have exactly one active organization selected.
package session

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warewise/server/internal/model"
)

// Identity is an authenticated caller as produced by the identity provider.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	SessionID string
}

// WorkspaceContext is the result of a successful resolution.
type WorkspaceContext struct {
	UserID               uuid.UUID `json:"user_id"`
	Email                string    `json:"email"`
	ActiveOrganizationID uuid.UUID `json:"active_organization_id"`
}

// OrganizationLister lists the organizations a user belongs to, in the
// store's natural return order.
type OrganizationLister interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.Organization, error)
}

// ActiveOrganizationStore holds the per-session active organization pointer.
type ActiveOrganizationStore interface {
	// Get returns the pointer for a session; ok is false when unset.
	Get(ctx context.Context, sessionID string) (orgID uuid.UUID, ok bool, err error)

	// Set persists the pointer for a session.
	Set(ctx context.Context, sessionID string, orgID uuid.UUID) error
}

// DefaultSkipPaths are reachable without an existing workspace: creating the
// first workspace and accepting an invitation into one.
var DefaultSkipPaths = []string{"/workspace/create", "/accept-invitation"}

// Resolver determines the active organization for a session. The same
// resolver instance backs every execution path (middleware and explicit
// resolution endpoint), so the decision logic cannot diverge between them.
type Resolver struct {
	orgs      OrganizationLister
	state     ActiveOrganizationStore
	skipPaths []string
	logger    *zap.Logger
}

// NewResolver creates a new workspace resolver.
func NewResolver(orgs OrganizationLister, state ActiveOrganizationStore, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		orgs:      orgs,
		state:     state,
		skipPaths: DefaultSkipPaths,
		logger:    logger,
	}
}

// Resolve runs the workspace resolution algorithm for a navigation to path.
//
// The pointer-selection step is one-shot: the fresh selection is persisted
// before ErrRefreshRequired is returned, so the re-resolved request finds the
// pointer set and cannot loop.
func (r *Resolver) Resolve(ctx context.Context, identity *Identity, path string) (*WorkspaceContext, error) {
	if identity == nil || identity.UserID == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	if r.SkipsWorkspaceCheck(path) {
		wc := &WorkspaceContext{UserID: identity.UserID, Email: identity.Email}
		if active, ok, err := r.state.Get(ctx, identity.SessionID); err == nil && ok {
			wc.ActiveOrganizationID = active
		}
		return wc, nil
	}

	orgs, err := r.orgs.FindByUser(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	if len(orgs) == 0 {
		return nil, ErrNoWorkspace
	}

	active, ok, err := r.state.Get(ctx, identity.SessionID)
	if err != nil {
		return nil, err
	}

	// A stale pointer (organization the user has since left) is treated like
	// an unset one and re-resolved.
	if ok && !containsOrg(orgs, active) {
		ok = false
	}

	if !ok {
		first := orgs[0].ID
		if err := r.state.Set(ctx, identity.SessionID, first); err != nil {
			return nil, err
		}
		r.logger.Info("active organization auto-selected",
			zap.String("user_id", identity.UserID.String()),
			zap.String("organization_id", first.String()),
		)
		return nil, ErrRefreshRequired
	}

	return &WorkspaceContext{
		UserID:               identity.UserID,
		Email:                identity.Email,
		ActiveOrganizationID: active,
	}, nil
}

// SetActive explicitly selects the active organization for a session, after
// verifying the user belongs to it.
func (r *Resolver) SetActive(ctx context.Context, identity *Identity, orgID uuid.UUID) error {
	if identity == nil || identity.UserID == uuid.Nil {
		return ErrUnauthenticated
	}

	orgs, err := r.orgs.FindByUser(ctx, identity.UserID)
	if err != nil {
		return err
	}
	if !containsOrg(orgs, orgID) {
		return ErrNotAMember
	}

	return r.state.Set(ctx, identity.SessionID, orgID)
}

// SkipsWorkspaceCheck reports whether path is on the workspace-exempt
// allow-list. Matching is by whole path segments: "/accept-invitation/ID"
// is exempt, "/org/accept-invitation-notes" is not.
func (r *Resolver) SkipsWorkspaceCheck(path string) bool {
	for _, skip := range r.skipPaths {
		if path == skip || strings.HasPrefix(path, skip+"/") {
			return true
		}
	}
	return false
}

func containsOrg(orgs []*model.Organization, id uuid.UUID) bool {
	for _, org := range orgs {
		if org.ID == id {
			return true
		}
	}
	return false
}
