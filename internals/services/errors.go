package services

import "errors"

// Sentinel errors returned by the auth and provisioning services. Handlers
// map these onto HTTP statuses; anything not listed here is an internal
// failure that gets logged server-side and reported generically.
var (
	ErrMissingCredentials = errors.New("email and password are required")

	// ErrInvalidCredentials covers both "no such account" and "wrong
	// password" so the response cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRoleMismatch means the credentials were valid but the caller asked
	// for a different role than the account holds. It must be rendered to
	// the client exactly like ErrInvalidCredentials.
	ErrRoleMismatch = errors.New("account role mismatch")

	ErrDuplicateEmail  = errors.New("email is already registered")
	ErrProvisionFailed = errors.New("failed to create user")

	ErrUserCreationFailed = errors.New("failed to resolve sso account")
)
