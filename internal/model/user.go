package model

import "time"

// Role names accepted in users.role. Admins manage users, editors write
// domain data, viewers only read.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// ValidRole reports whether r is one of the known role names.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// User represents an application user as stored in the `users` table.
// Email and username are unique. The password hash is never serialized.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name.
//  Email        – unique email address.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password, opaque to the domain logic.
//  Role         – admin, editor or viewer.
type User struct {
	ID           uint64 `json:"id"`       // users.id
	Name         string `json:"name"`     // users.name
	Email        string `json:"email"`    // users.email
	Username     string `json:"username"` // users.username
	PasswordHash string `json:"-"`        // users.password_hash
	Role         string `json:"role"`     // users.role
}

// RefreshToken models an entry in the `refresh_tokens` table. Only the
// SHA-256 hash of the raw token is stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp.
//  RevokedAt – when the token was revoked (null while active).
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
}
