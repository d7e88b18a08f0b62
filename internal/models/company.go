package models

// Company is the companies table row.
type Company struct {
	CompanyID string `db:"company_id"`
	Name      string `db:"name"`
	JoinCode  string `db:"join_code"`
	Phone     string `db:"phone"`
	AuditFields
}
