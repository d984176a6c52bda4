package entity

import "time"

// Rating is one durable like: a row keyed by (item, identity) where the
// identity is exactly one of a session id or a profile id.
type Rating struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	SessionID *string   `json:"session_id,omitempty"`
	ProfileID *string   `json:"profile_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity returns the acting identity recorded on the row. Profile rows
// win over session rows when both columns are somehow populated.
func (r Rating) Identity() Identity {
	if r.ProfileID != nil && *r.ProfileID != "" {
		return ProfileIdentity(*r.ProfileID)
	}
	if r.SessionID != nil {
		return SessionIdentity(*r.SessionID)
	}
	return Identity{}
}

// ToggleOutcome is the result of flipping like state for one (item,
// identity) pair. Durable marks outcomes that were written straight to the
// durable store (the fallback path), which therefore owe no async sync.
type ToggleOutcome struct {
	IsLiked  bool
	NewCount int64
	Durable  bool
}
