package pgsql

import (
	portsrepo "github.com/craneworks/craneops_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:     newPgxUserRepository(dbPool),
		CompanyRepo:  newPgxCompanyRepository(dbPool),
		MachineRepo:  newPgxMachineRepository(dbPool),
		PartnerRepo:  newPgxPartnerRepository(dbPool),
		JobRepo:      newPgxJobRepository(dbPool),
		LedgerRepo:   newPgxLedgerRepository(dbPool),
		DocumentRepo: newPgxDocumentRepository(dbPool),
	}
}
