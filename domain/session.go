package domain

// SessionData is the claim set embedded in a signed session token.
// The token is the sole source of truth for identity; nothing is kept
// server-side, so a logout on one client cannot revoke tokens held by others.
type SessionData struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}
