package identity

import "github.com/google/uuid"

// Session is the authenticated caller context extracted from a request
// token. TenantID is nil for platform admins.
type Session struct {
	UserID        uuid.UUID
	TenantID      *uuid.UUID
	Email         string
	EmailVerified bool
	Role          Role
}
