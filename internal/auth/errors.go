package auth

import "errors"

// Sentinel errors returned by token validation and authorization. Callers
// branch on these with errors.Is; the transport layer maps each to a status.
var (
	// ErrTokenMalformed covers structurally broken tokens and signature
	// mismatches under the configured key and algorithm.
	ErrTokenMalformed = errors.New("auth: token malformed or forged")

	// ErrTokenExpired means the token's lifetime has passed.
	ErrTokenExpired = errors.New("auth: token expired")

	// ErrTokenRevoked means the token was explicitly invalidated before its
	// natural expiry.
	ErrTokenRevoked = errors.New("auth: token revoked")

	// ErrInvalidClaims means the payload verified but lacks a subject or a
	// recognized role.
	ErrInvalidClaims = errors.New("auth: invalid token claims")

	// ErrForbidden means the caller authenticated but holds the wrong role.
	ErrForbidden = errors.New("auth: access denied")

	// ErrAuthUnavailable means the revocation store could not be consulted,
	// so validity cannot be determined. The core fails closed on it.
	ErrAuthUnavailable = errors.New("auth: revocation store unavailable")
)
