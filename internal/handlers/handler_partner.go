package handlers

import (
	"net/http"

	"github.com/craneworks/craneops_backend/internal/core/domain"
	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// partnerHandler handles HTTP requests for the owner/tenant directories.
type partnerHandler struct {
	partnerService portssvc.PartnerSvcFacade
}

func newPartnerHandler(ps portssvc.PartnerSvcFacade) *partnerHandler {
	return &partnerHandler{partnerService: ps}
}

// registerPartnerRoutes registers client directory routes. Writes are
// managerial.
func registerPartnerRoutes(rg *gin.RouterGroup, partnerService portssvc.PartnerSvcFacade) {
	h := newPartnerHandler(partnerService)

	partners := rg.Group("/partners")
	{
		partners.GET("", h.listPartners)

		managerial := partners.Group("", middleware.RequireManagerial())
		{
			managerial.POST("", h.addPartner)
			managerial.DELETE("/:id", h.removePartner)
		}
	}
}

type addPartnerRequest struct {
	Kind domain.PartnerKind `json:"kind" binding:"required,oneof=owner tenant"`
	Name string             `json:"name" binding:"required"`
}

type listPartnersParams struct {
	Kind domain.PartnerKind `form:"kind" binding:"required,oneof=owner tenant"`
}

// listPartners godoc
// @Summary List one of the company's client directories
// @Tags partners
// @Produce json
// @Param kind query string true "owner or tenant"
// @Success 200 {array} domain.Partner
// @Security BearerAuth
// @Router /partners [get]
func (h *partnerHandler) listPartners(c *gin.Context) {
	var params listPartnersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query: " + err.Error()})
		return
	}
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	partners, err := h.partnerService.ListPartners(c.Request.Context(), companyID, params.Kind)
	if err != nil {
		respondError(c, err, "Failed to list partners")
		return
	}
	c.JSON(http.StatusOK, partners)
}

// addPartner godoc
// @Summary Add a client to a directory
// @Tags partners
// @Accept json
// @Produce json
// @Param partner body addPartnerRequest true "Directory and name"
// @Success 201 {object} domain.Partner
// @Failure 409 {object} ErrorResponse "Name already listed"
// @Security BearerAuth
// @Router /partners [post]
func (h *partnerHandler) addPartner(c *gin.Context) {
	var req addPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	creatorUserID, _ := middleware.GetUserIDFromContext(c)

	partner, err := h.partnerService.AddPartner(c.Request.Context(), companyID, req.Kind, req.Name, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to add partner")
		return
	}
	c.JSON(http.StatusCreated, partner)
}

// removePartner godoc
// @Summary Remove a client from a directory
// @Tags partners
// @Produce json
// @Param id path string true "Partner ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /partners/{id} [delete]
func (h *partnerHandler) removePartner(c *gin.Context) {
	requestingUserID, _ := middleware.GetUserIDFromContext(c)
	if err := h.partnerService.RemovePartner(c.Request.Context(), c.Param("id"), requestingUserID); err != nil {
		respondError(c, err, "Failed to remove partner")
		return
	}
	c.Status(http.StatusNoContent)
}
