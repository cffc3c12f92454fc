// Package token issues and validates the signed resumable-session tokens
// stored on logged-in account rows. A window restores its session on start
// by validating the token persisted with the account; an expired or
// tampered token simply means the session is not resumable.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avbelov/gamedeck/models"
)

// GenerateSessionToken creates a signed HMAC-SHA256 JWT for the account.
//
// The token includes the following standard claims:
//   - Issuer    (iss): identifies the shell installation
//   - Subject   (sub): the account ID
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required. Returns an error if any of them are empty or
// zero.
func GenerateSessionToken(issuer, accountID string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || accountID == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating session token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   accountID,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := jwtToken.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing session token: %w", err)
	}

	return models.Token{Token: jwtToken, SignedString: tokenString}, nil
}

// ValidateSessionToken validates the given token string and extracts its
// claims.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided issuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence
//
// Returns an error if validation fails or the subject claim is missing.
func ValidateSessionToken(tokenString, signKey, issuer string) (models.Token, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &models.Token{}, func(t *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	sessionToken, ok := parsed.Claims.(*models.Token)
	if !ok {
		return models.Token{}, errors.New("unexpected claims type in session token")
	}

	accountID, err := sessionToken.GetAccountID()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}

	sessionToken.Token = parsed
	sessionToken.SignedString = tokenString
	sessionToken.AccountID = accountID

	return *sessionToken, nil
}
