package entity

import "fmt"

// IdentityKind distinguishes anonymous sessions from authenticated profiles.
type IdentityKind string

const (
	IdentityKindSession IdentityKind = "session"
	IdentityKindProfile IdentityKind = "profile"
)

// Identity is the liking actor: an anonymous browser session or an
// authenticated profile.
type Identity struct {
	Kind IdentityKind
	ID   string
}

// SessionIdentity builds an identity for an anonymous session.
func SessionIdentity(sessionID string) Identity {
	return Identity{Kind: IdentityKindSession, ID: sessionID}
}

// ProfileIdentity builds an identity for an authenticated profile.
func ProfileIdentity(profileID string) Identity {
	return Identity{Kind: IdentityKindProfile, ID: profileID}
}

// PickIdentity resolves the acting identity for a request. The profile id
// takes precedence over the session id when both are present.
func PickIdentity(sessionID, profileID string) Identity {
	if profileID != "" {
		return ProfileIdentity(profileID)
	}
	return SessionIdentity(sessionID)
}

// Key returns the member string stored in the liked-by sets,
// e.g. "session:abc" or "profile:42".
func (i Identity) Key() string {
	return fmt.Sprintf("%s:%s", i.Kind, i.ID)
}

// IsProfile reports whether this identity is an authenticated profile.
func (i Identity) IsProfile() bool {
	return i.Kind == IdentityKindProfile
}
