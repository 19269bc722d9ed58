package pgsql

import (
	portsrepo "github.com/dianadimla/walo_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	podRepo := newPgxPodRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		PodRepo:    podRepo,
		LedgerRepo: ledgerRepo,
		UserRepo:   userRepo,
	}
}
