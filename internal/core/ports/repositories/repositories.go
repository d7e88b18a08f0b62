package repositories

// RepositoryProvider bundles every repository the service layer needs, so the
// composition root can hand them over in one value.
type RepositoryProvider struct {
	UserRepo     UserRepository
	CompanyRepo  CompanyRepository
	MachineRepo  MachineRepository
	PartnerRepo  PartnerRepository
	JobRepo      JobRepository
	LedgerRepo   LedgerRepository
	DocumentRepo DocumentRepository
}
