package service

import (
	"github.com/ablecorp/abuelo/internal/logger"
	"github.com/ablecorp/abuelo/internal/store"
)

// Services aggregates the application's domain services for injection into
// the transport layer.
type Services struct {
	AccountService AccountService
	HandleService  HandleService
}

// NewServices wires both services to the shared storages and a single
// crypto/rand-backed entropy source.
func NewServices(storages *store.Storages, logger *logger.Logger) *Services {
	entropy := NewCryptoSource()

	return &Services{
		AccountService: NewAccountService(storages.AccountRepository, entropy, logger),
		HandleService:  NewHandleService(storages.HandleRepository, entropy, logger),
	}
}
