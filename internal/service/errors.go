package service

import "errors"

var (
	// ErrInvalidCredentials is returned when the identifier is unknown or
	// the password does not match. The two cases are deliberately not
	// distinguished for the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrIdentifierTaken is returned on registration when another account
	// already owns the identifier.
	ErrIdentifierTaken = errors.New("identifier already taken")

	// ErrNoIdentifier is returned on registration when neither email,
	// username, nor phone is provided.
	ErrNoIdentifier = errors.New("at least one identifier is required")

	// ErrWeakPassword is returned on registration when the password is
	// shorter than the minimum length.
	ErrWeakPassword = errors.New("password is too short")
)
