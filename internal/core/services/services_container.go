package services

import (
	portsrepo "github.com/dianadimla/walo_backend/internal/core/ports/repositories"
	portssvc "github.com/dianadimla/walo_backend/internal/core/ports/services"
	"github.com/dianadimla/walo_backend/pkg/config"
)

// NewServiceContainer wires all services from the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	userSvc := NewUserService(repos.UserRepo)

	return &portssvc.ServiceContainer{
		Pod:         NewPodService(repos.PodRepo),
		Ledger:      NewLedgerService(repos.LedgerRepo),
		Reporting:   NewReportingService(repos.PodRepo, repos.LedgerRepo),
		User:        userSvc,
		Token:       NewTokenService(cfg, userSvc),
		GoogleOAuth: NewGoogleOAuthService(cfg),
	}
}
