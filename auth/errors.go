package auth

import "errors"

// Error taxonomy for the session lifecycle. Credential errors map to client
// errors at the transport boundary; store and provider failures map to server
// errors and are never retried.
var (
	// ErrInvalidCredential covers malformed, badly signed or expired tokens,
	// including a token of one class presented to the other class's verifier.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrRevokedCredential is a well-formed refresh token that no longer
	// matches the stored value. The stored value is the sole revocation
	// mechanism: rotation or logout makes every older token fail this way.
	ErrRevokedCredential = errors.New("revoked credential")

	// ErrUserNotFound means the token subject resolves to no user record.
	ErrUserNotFound = errors.New("user not found")

	// ErrMissingCredential means the request carried no token at all.
	ErrMissingCredential = errors.New("missing credential")

	// ErrStoreUnavailable wraps persistence-layer failures.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrProviderExchangeFailed wraps upstream OAuth failures.
	ErrProviderExchangeFailed = errors.New("provider exchange failed")
)
