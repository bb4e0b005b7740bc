package domain

import "time"

// Token captures metadata about an issued access token. The token itself is
// self-contained and never stored server-side; revocation records only its ID.
type Token struct {
	ID        string
	Subject   string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}
