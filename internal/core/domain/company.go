package domain

// Company represents a tenant: one crane rental business whose staff,
// machines, partners, jobs and ledgers are isolated from every other tenant.
type Company struct {
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	// JoinCode is a 6-digit shared secret workers present when self-registering.
	JoinCode string `json:"joinCode"`
	Phone    string `json:"phone"`
	AuditFields
}
