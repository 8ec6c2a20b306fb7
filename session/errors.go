package session

import "errors"

var (
	// ErrNotFound means the token resolves to no session. Derivers report it
	// as absence, not as a failure.
	ErrNotFound = errors.New("session: not found")
	// ErrExpired means the session existed but is past its lifetime.
	ErrExpired = errors.New("session: expired")

	ErrInvalidSession = errors.New("session: invalid session")
	ErrStoreFailure   = errors.New("session: store failure")

	ErrInvalidToken            = errors.New("session: invalid token")
	ErrExpiredToken            = errors.New("session: token is expired")
	ErrInvalidSignature        = errors.New("session: invalid token signature")
	ErrUnexpectedSigningMethod = errors.New("session: unexpected signing method")
	ErrMissingSigningKey       = errors.New("session: missing signing key")
	ErrMissingClaims           = errors.New("session: missing claims")
)

// absent reports whether err means "no session" rather than a failure.
func absent(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrExpired) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrInvalidSignature) ||
		errors.Is(err, ErrUnexpectedSigningMethod)
}
