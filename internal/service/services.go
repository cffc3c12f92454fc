package service

import (
	"github.com/avbelov/gamedeck/internal/logger"
	"github.com/avbelov/gamedeck/internal/store"
)

// Services aggregates the business services of one window process.
type Services struct {
	Auth *AuthService
}

// NewServices wires the services over the given storages.
func NewServices(storages *store.Storages, logger *logger.Logger) *Services {
	return &Services{
		Auth: NewAuthService(storages.Accounts, logger),
	}
}
