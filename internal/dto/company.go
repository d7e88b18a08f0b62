package dto

import "github.com/craneworks/craneops_backend/internal/core/domain"

// UpdateCompanyRequest updates tenant details. Nil fields are left unchanged.
type UpdateCompanyRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// CompanyResponse is the API shape of a company. The join code is only
// exposed to boss/manager callers.
type CompanyResponse struct {
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	JoinCode  string `json:"joinCode,omitempty"`
}

// ToCompanyResponse maps a company, optionally hiding the join code.
func ToCompanyResponse(c *domain.Company, includeJoinCode bool) CompanyResponse {
	resp := CompanyResponse{
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Phone:     c.Phone,
	}
	if includeJoinCode {
		resp.JoinCode = c.JoinCode
	}
	return resp
}
