package model

import "time"

// Role is the closed set of account types the platform knows about.
// It is validated once at the registration boundary; everything past
// that point can trust the value.
type Role string

const (
	RoleClient  Role = "client"  // books events from the public catalog
	RolePlanner Role = "planner" // creates and sells event offerings
	RoleVendor  Role = "vendor"  // supplies services to planners
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RolePlanner, RoleVendor:
		return true
	}
	return false
}

// User represents a row in the `users` table. The password hash never
// leaves the repository layer in API responses; handlers define their
// own response types with public fields only.
//
// Fields:
//  ID           – primary key identifier of the user.
//  FullName     – display name shown to other users.
//  Email        – unique email address (stored lower-cased).
//  PasswordHash – bcrypt hashed password.
//  Role         – one of client, planner, vendor. Immutable after creation.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last mutation (e.g. password change).
type User struct {
	ID           uint64    // users.id
	FullName     string    // users.full_name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         Role      // users.role
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. The raw
// token is never persisted; only its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
