package models

// Partner is the partners table row, one name in a company's owner or tenant
// directory.
type Partner struct {
	PartnerID string `db:"partner_id"`
	CompanyID string `db:"company_id"`
	Kind      string `db:"kind"`
	Name      string `db:"name"`
	AuditFields
}
