package domain

// PartnerKind distinguishes the two client directories each company keeps.
type PartnerKind string

const (
	// PartnerOwner is the primary contracting client for a job (원수급자).
	PartnerOwner PartnerKind = "owner"
	// PartnerTenant is the sub-lessee / secondary client (임차인), may equal the owner.
	PartnerTenant PartnerKind = "tenant"
)

// Partner is one entry in a company's owner or tenant directory.
// Names are deduplicated per company and kind.
type Partner struct {
	PartnerID string      `json:"partnerID"`
	CompanyID string      `json:"companyID"`
	Kind      PartnerKind `json:"kind"`
	Name      string      `json:"name"`
	AuditFields
}
