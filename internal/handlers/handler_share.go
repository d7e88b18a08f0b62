package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/dto"
	"github.com/craneworks/craneops_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// shareHandler issues share links and serves the public shared job view.
type shareHandler struct {
	shareService portssvc.ShareSvcFacade
	jobService   portssvc.JobSvcFacade
}

func newShareHandler(ss portssvc.ShareSvcFacade, js portssvc.JobSvcFacade) *shareHandler {
	return &shareHandler{shareService: ss, jobService: js}
}

// registerShareRoutes registers the managerial link-issuing route.
func registerShareRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newShareHandler(services.Share, services.Job)
	rg.POST("/share-links", middleware.RequireManagerial(), h.createShareLink)
}

// registerSharedViewRoute registers the public token-resolving route. It
// lives outside the authenticated group: the password is the only credential.
func registerSharedViewRoute(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := newShareHandler(services.Share, services.Job)
	r.GET("/shared/:token", h.sharedJobs)
}

// createShareLink godoc
// @Summary Issue a password-protected share link
// @Tags share
// @Accept json
// @Produce json
// @Param link body dto.CreateShareLinkRequest true "Password and lifetime"
// @Success 201 {object} dto.ShareLinkResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /share-links [post]
func (h *shareHandler) createShareLink(c *gin.Context) {
	var req dto.CreateShareLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	creatorUserID, _ := middleware.GetUserIDFromContext(c)
	ttl := time.Duration(req.ExpiryHours) * time.Hour

	link, err := h.shareService.CreateShareLink(c.Request.Context(), companyID, req.Password, ttl, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create share link")
		return
	}
	c.JSON(http.StatusCreated, dto.ShareLinkResponse{Token: link.Token, ExpiresAt: link.ExpiresAt})
}

// sharedJobs godoc
// @Summary Read the shared job list behind a token
// @Description Public. Requires the link password; amounts appear only on jobs shared with them.
// @Tags share
// @Produce json
// @Param token path string true "Share token"
// @Param password query string true "Link password"
// @Param from query string false "Start date (2006-01-02)"
// @Param to query string false "End date (2006-01-02)"
// @Success 200 {object} dto.ListJobsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /shared/{token} [get]
func (h *shareHandler) sharedJobs(c *gin.Context) {
	var params dto.SharedJobsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query: " + err.Error()})
		return
	}

	link, err := h.shareService.ResolveShareLink(c.Request.Context(), c.Param("token"), params.Password)
	if err != nil {
		respondError(c, err, "Failed to resolve share link")
		return
	}

	result, err := h.jobService.ListJobs(c.Request.Context(), link.CompanyID, dto.ListJobsParams{
		From: params.From,
		To:   params.To,
	})
	if err != nil {
		respondError(c, err, "Failed to list shared jobs")
		return
	}
	c.JSON(http.StatusOK, dto.ListJobsResponse{
		Jobs:      dto.ToSharedJobResponses(result.Jobs),
		NextToken: result.NextToken,
	})
}
