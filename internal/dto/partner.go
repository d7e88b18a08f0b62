package dto

import "github.com/craneworks/craneops_backend/internal/core/domain"

// AddPartnerRequest adds one name to the owner or tenant directory.
type AddPartnerRequest struct {
	Kind domain.PartnerKind `json:"kind" binding:"required,oneof=owner tenant"`
	Name string             `json:"name" binding:"required"`
}

// PartnerResponse is the API shape of a partner directory entry.
type PartnerResponse struct {
	PartnerID string             `json:"partnerID"`
	Kind      domain.PartnerKind `json:"kind"`
	Name      string             `json:"name"`
}

// ListPartnersResponse wraps a partner directory listing.
type ListPartnersResponse struct {
	Partners []PartnerResponse `json:"partners"`
}

// ToPartnerResponse maps a domain partner to its API shape.
func ToPartnerResponse(p *domain.Partner) PartnerResponse {
	return PartnerResponse{
		PartnerID: p.PartnerID,
		Kind:      p.Kind,
		Name:      p.Name,
	}
}
