package organization

import "time"

// Config holds organization domain configuration.
type Config struct {
	// OrganizationLimit caps how many organizations a single user may create.
	OrganizationLimit int

	// MembershipLimit caps members per organization.
	MembershipLimit int

	// InvitationExpiry is how long an invitation is valid.
	InvitationExpiry time.Duration

	// MaxLogoBytes caps the decoded size of an uploaded logo.
	MaxLogoBytes int64

	// BaseURL is the base URL for invitation accept links.
	BaseURL string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		OrganizationLimit: 5,
		MembershipLimit:   100,
		InvitationExpiry:  7 * 24 * time.Hour, // 7 days
		MaxLogoBytes:      1 << 20,            // 1 MiB
		BaseURL:           "",
	}
}

// Validate normalizes out-of-range values back to defaults.
func (c *Config) Validate() error {
	if c.OrganizationLimit <= 0 {
		c.OrganizationLimit = 5
	}
	if c.MembershipLimit <= 0 {
		c.MembershipLimit = 100
	}
	if c.InvitationExpiry <= 0 {
		c.InvitationExpiry = 7 * 24 * time.Hour
	}
	if c.MaxLogoBytes <= 0 {
		c.MaxLogoBytes = 1 << 20
	}
	return nil
}

// AcceptURL returns the shareable accept link for an invitation id.
func (c *Config) AcceptURL(invitationID string) string {
	if c.BaseURL == "" {
		return "/accept-invitation/" + invitationID
	}
	return c.BaseURL + "/accept-invitation/" + invitationID
}
