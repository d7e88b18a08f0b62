package services

import (
	portsrepo "github.com/craneworks/craneops_backend/internal/core/ports/repositories"
	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/platform/config"
	"github.com/redis/go-redis/v9"
)

// NewServiceContainer wires every service with its dependencies. The ledger
// service must exist before the job service since job changes trigger ledger
// reconciliation.
func NewServiceContainer(repos portsrepo.RepositoryProvider, redisClient *redis.Client, cfg *config.Config) *portssvc.ServiceContainer {
	ledgerSvc := NewLedgerService(repos.LedgerRepo, repos.JobRepo)

	return &portssvc.ServiceContainer{
		Auth:      NewAuthService(repos.UserRepo, repos.CompanyRepo),
		Token:     NewTokenService(cfg),
		User:      NewUserService(repos.UserRepo),
		Company:   NewCompanyService(repos.CompanyRepo),
		Machine:   NewMachineService(repos.MachineRepo),
		Partner:   NewPartnerService(repos.PartnerRepo),
		Job:       NewJobService(repos.JobRepo, repos.MachineRepo, ledgerSvc),
		Ledger:    ledgerSvc,
		Reporting: NewReportingService(repos.LedgerRepo, repos.JobRepo),
		Document:  NewDocumentService(repos.DocumentRepo, cfg),
		Share:     NewShareService(redisClient),
		Export:    NewExportService(),
		Mail:      NewMailService(cfg),
	}
}
