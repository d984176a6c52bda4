package dto

// ToggleResponse is the result of a like/unlike toggle.
type ToggleResponse struct {
	IsLiked  bool  `json:"is_liked"`
	NewCount int64 `json:"new_count"`
}

// CountsResponse is the batch like-count read.
type CountsResponse struct {
	Counts map[string]int64 `json:"counts"`
}

// StatusesResponse is the batch liked-status read for one identity.
type StatusesResponse struct {
	Statuses map[string]bool `json:"statuses"`
}

// MigrateRequest asks to re-key a session's likes to a profile. The
// session comes from the identity middleware; the profile must be named
// explicitly so a stray token cannot trigger a migration.
type MigrateRequest struct {
	ProfileID string `json:"profile_id" binding:"required"`
}
