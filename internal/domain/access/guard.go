package access

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warewise/server/internal/model"
)

// Guard errors.
var (
	// ErrForbidden is returned whenever access cannot be affirmatively granted.
	ErrForbidden = errors.New("forbidden")
)

// MembershipLookup resolves a caller's membership in an organization.
type MembershipLookup interface {
	// Find retrieves the membership for (orgID, userID). A clean miss is
	// (nil, nil); errors are reserved for transport failures.
	Find(ctx context.Context, orgID, userID uuid.UUID) (*model.Membership, error)
}

// DecisionRecorder receives every authorization decision the guard makes.
// *metrics.Metrics satisfies it.
type DecisionRecorder interface {
	RecordAuthzDecision(resource, action string, allowed bool)
}

// Guard answers whether an identity, in a given organization, holds a
// permission. It fails closed: a missing membership, an unknown role, or any
// lookup error denies access.
type Guard struct {
	memberships MembershipLookup
	policy      *Policy
	logger      *zap.Logger
	recorder    DecisionRecorder
}

// NewGuard creates a new authorization guard.
func NewGuard(memberships MembershipLookup, policy *Policy, logger *zap.Logger) *Guard {
	if policy == nil {
		policy = DefaultPolicy()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{
		memberships: memberships,
		policy:      policy,
		logger:      logger,
	}
}

// WithRecorder attaches a decision recorder to the guard and returns it.
func (g *Guard) WithRecorder(rec DecisionRecorder) *Guard {
	g.recorder = rec
	return g
}

// Authorize checks that userID holds (resource, action) in orgID.
// Returns nil on allow and ErrForbidden on deny. There is no default-allow
// path; callers must invoke this before performing the gated mutation.
func (g *Guard) Authorize(ctx context.Context, userID, orgID uuid.UUID, resource Resource, action Action) error {
	allowed, err := g.decide(ctx, userID, orgID, resource, action)
	if g.recorder != nil {
		g.recorder.RecordAuthzDecision(string(resource), string(action), allowed)
	}
	if err != nil {
		return err
	}
	if !allowed {
		return ErrForbidden
	}
	return nil
}

func (g *Guard) decide(ctx context.Context, userID, orgID uuid.UUID, resource Resource, action Action) (bool, error) {
	member, err := g.memberships.Find(ctx, orgID, userID)
	if err != nil {
		g.logger.Warn("membership lookup failed, denying access",
			zap.String("user_id", userID.String()),
			zap.String("organization_id", orgID.String()),
			zap.Error(err),
		)
		return false, ErrForbidden
	}
	if member == nil {
		return false, nil
	}
	return g.policy.Allows(member.Role, resource, action), nil
}

// Role returns the caller's role in the organization, or ErrForbidden when
// there is no membership.
func (g *Guard) Role(ctx context.Context, userID, orgID uuid.UUID) (model.Role, error) {
	member, err := g.memberships.Find(ctx, orgID, userID)
	if err != nil || member == nil {
		return "", ErrForbidden
	}
	return member.Role, nil
}
