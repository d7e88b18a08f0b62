package handlers

import (
	"net/http"

	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/dto"
	"github.com/craneworks/craneops_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// companyHandler handles HTTP requests for the tenant record.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

func newCompanyHandler(cs portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{companyService: cs}
}

// registerCompanyRoutes registers tenant routes. Updates and join code
// rotation are managerial.
func registerCompanyRoutes(rg *gin.RouterGroup, companyService portssvc.CompanySvcFacade) {
	h := newCompanyHandler(companyService)

	company := rg.Group("/company")
	{
		company.GET("", h.getCompany)

		managerial := company.Group("", middleware.RequireManagerial())
		{
			managerial.PUT("", h.updateCompany)
			managerial.POST("/join-code", h.rotateJoinCode)
		}
	}
}

// getCompany godoc
// @Summary Get the caller's company
// @Tags company
// @Produce json
// @Success 200 {object} dto.CompanyResponse
// @Security BearerAuth
// @Router /company [get]
func (h *companyHandler) getCompany(c *gin.Context) {
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	company, err := h.companyService.GetCompanyByID(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "Failed to get company")
		return
	}
	role, _ := middleware.GetRoleFromContext(c)
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company, role.IsManagerial()))
}

// updateCompany godoc
// @Summary Update company details
// @Tags company
// @Accept json
// @Produce json
// @Param company body dto.UpdateCompanyRequest true "Fields to update"
// @Success 200 {object} dto.CompanyResponse
// @Security BearerAuth
// @Router /company [put]
func (h *companyHandler) updateCompany(c *gin.Context) {
	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	requestingUserID, _ := middleware.GetUserIDFromContext(c)

	company, err := h.companyService.UpdateCompany(c.Request.Context(), companyID, req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to update company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company, true))
}

// rotateJoinCode godoc
// @Summary Replace the worker registration join code
// @Tags company
// @Produce json
// @Success 200 {object} dto.CompanyResponse
// @Security BearerAuth
// @Router /company/join-code [post]
func (h *companyHandler) rotateJoinCode(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	requestingUserID, _ := middleware.GetUserIDFromContext(c)

	company, err := h.companyService.RotateJoinCode(c.Request.Context(), companyID, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to rotate join code")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company, true))
}
