// Package service holds the business operations built on top of the
// store: registration, credential verification, and guest sessions.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/avbelov/gamedeck/internal/logger"
	"github.com/avbelov/gamedeck/internal/store"
	"github.com/avbelov/gamedeck/models"
)

// minPasswordLength is the shortest password accepted at registration.
const minPasswordLength = 8

// RegisterInput carries the fields of a registration request. At least
// one of Email, Username, or Phone must be set.
type RegisterInput struct {
	Email        string
	Username     string
	Phone        string
	Password     string
	StayLoggedIn bool
}

// AuthService registers accounts and verifies credentials. It is the only
// code that touches password hashes.
type AuthService struct {
	accounts store.AccountRepository
	logger   *logger.Logger

	now func() time.Time
}

// NewAuthService creates an AuthService over the given account repository.
func NewAuthService(accounts store.AccountRepository, logger *logger.Logger) *AuthService {
	return &AuthService{accounts: accounts, logger: logger, now: time.Now}
}

// Register creates a new account with a bcrypt-hashed password. The
// identifier must not collide with an existing visible account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.Account, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(input.Email) == "" &&
		strings.TrimSpace(input.Username) == "" &&
		strings.TrimSpace(input.Phone) == "" {
		return models.Account{}, ErrNoIdentifier
	}
	if len(input.Password) < minPasswordLength {
		return models.Account{}, ErrWeakPassword
	}

	for _, identifier := range []string{input.Email, input.Username, input.Phone} {
		if strings.TrimSpace(identifier) == "" {
			continue
		}
		if _, err := s.accounts.Find(ctx, identifier); err == nil {
			return models.Account{}, ErrIdentifierTaken
		} else if !errors.Is(err, store.ErrAccountNotFound) {
			log.Error().Err(err).Str("func", "Register").Msg("error checking identifier")
			return models.Account{}, fmt.Errorf("error checking identifier: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Account{}, fmt.Errorf("error hashing password: %w", err)
	}

	account := models.Account{
		ID:             uuid.NewString(),
		Email:          input.Email,
		Username:       input.Username,
		Phone:          input.Phone,
		CredentialHash: string(hash),
		StayLoggedIn:   input.StayLoggedIn,
		CreatedAt:      s.now(),
	}
	if err := s.accounts.Upsert(ctx, account); err != nil {
		log.Error().Err(err).Str("func", "Register").Msg("error persisting new account")
		return models.Account{}, fmt.Errorf("error persisting new account: %w", err)
	}

	log.Info().Str("func", "Register").Str("account_id", account.ID).Msg("account registered")
	return account, nil
}

// Authenticate resolves the identifier and verifies the password against
// the stored bcrypt hash. Unknown identifier and wrong password both
// come back as ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (models.Account, error) {
	log := logger.FromContext(ctx)

	account, err := s.accounts.Find(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return models.Account{}, ErrInvalidCredentials
		}
		log.Error().Err(err).Str("func", "Authenticate").Msg("error finding account")
		return models.Account{}, fmt.Errorf("error finding account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.CredentialHash), []byte(password)); err != nil {
		log.Warn().Str("func", "Authenticate").Str("account_id", account.ID).Msg("password mismatch")
		return models.Account{}, ErrInvalidCredentials
	}

	return account, nil
}

// CreateGuest creates a throwaway guest account. Guests never appear in
// the switcher and are never switch targets.
func (s *AuthService) CreateGuest(ctx context.Context) (models.Account, error) {
	log := logger.FromContext(ctx)

	id := uuid.NewString()
	account := models.Account{
		ID:        id,
		Username:  "guest-" + id[:8],
		IsGuest:   true,
		CreatedAt: s.now(),
	}
	if err := s.accounts.Upsert(ctx, account); err != nil {
		log.Error().Err(err).Str("func", "CreateGuest").Msg("error persisting guest account")
		return models.Account{}, fmt.Errorf("error persisting guest account: %w", err)
	}

	log.Info().Str("func", "CreateGuest").Str("account_id", account.ID).Msg("guest account created")
	return account, nil
}
