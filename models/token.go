package models

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps the resumable-session JWT stored on a logged-in account.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry).
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) as persisted on the account row.
//
// AccountID is a cached copy of the "sub" (subject) claim. It is populated
// during validation and avoids repeated claim extraction.
type Token struct {
	// Token is the underlying JWT token used for signing and claim
	// inspection. Excluded from JSON serialization because only the
	// compact string form is meaningful outside the process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// AccountID is the owner identifier extracted from the "sub" claim.
	AccountID string `json:"-"`
}

// GetAccountID extracts the account identifier from the token's "sub"
// (subject) claim.
//
// Returns an error if the subject claim is missing or empty.
func (t *Token) GetAccountID() (string, error) {
	accountID, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting AccountID from token: %w", err)
	}
	if accountID == "" {
		return "", errors.New("empty subject in session token")
	}

	return accountID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
