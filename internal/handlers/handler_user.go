package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/dto"
	"github.com/craneworks/craneops_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests for the staff directory.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerUserRoutes registers all staff-related routes. Write operations
// other than the self phone-change request require a managerial role.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService)

	workers := rg.Group("/workers")
	{
		workers.GET("", h.listWorkers)
		workers.GET("/:id", h.getWorker)
		workers.POST("/phone-change", h.requestPhoneChange)

		managerial := workers.Group("", middleware.RequireManagerial())
		{
			managerial.POST("", h.createWorker)
			managerial.PUT("/:id", h.updateWorker)
			managerial.DELETE("/:id", h.deleteWorker)
			managerial.POST("/:id/approve", h.approveWorker)
			managerial.POST("/:id/approve-phone", h.approvePhoneChange)
		}
	}
}

// listWorkers godoc
// @Summary List the company's staff
// @Tags workers
// @Produce json
// @Success 200 {object} dto.ListUsersResponse
// @Security BearerAuth
// @Router /workers [get]
func (h *userHandler) listWorkers(c *gin.Context) {
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	users, err := h.userService.ListCompanyStaff(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "Failed to list staff")
		return
	}
	resp := dto.ListUsersResponse{Users: make([]dto.UserResponse, len(users))}
	for i := range users {
		resp.Users[i] = dto.ToUserResponse(&users[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getWorker godoc
// @Summary Get one staff member
// @Tags workers
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workers/{id} [get]
func (h *userHandler) getWorker(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get staff member")
		return
	}
	if user.CompanyID != companyID {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// createWorker godoc
// @Summary Add a staff member directly
// @Tags workers
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "Staff details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /workers [post]
func (h *userHandler) createWorker(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create staff member")
		return
	}
	logger.Info("Staff member created", slog.String("new_user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// updateWorker godoc
// @Summary Update a staff member
// @Tags workers
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workers/{id} [put]
func (h *userHandler) updateWorker(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	requestingUserID, _ := middleware.GetUserIDFromContext(c)

	user, err := h.userService.UpdateUser(c.Request.Context(), companyID, c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to update staff member")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// deleteWorker godoc
// @Summary Deactivate a staff member
// @Tags workers
// @Produce json
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workers/{id} [delete]
func (h *userHandler) deleteWorker(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	requestingUserID, _ := middleware.GetUserIDFromContext(c)
	if err := h.userService.DeactivateUser(c.Request.Context(), companyID, c.Param("id"), requestingUserID); err != nil {
		respondError(c, err, "Failed to deactivate staff member")
		return
	}
	c.Status(http.StatusNoContent)
}

// approveWorker godoc
// @Summary Approve a pending worker registration
// @Tags workers
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "Not pending"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /workers/{id}/approve [post]
func (h *userHandler) approveWorker(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	approverUserID, _ := middleware.GetUserIDFromContext(c)
	user, err := h.userService.ApproveWorker(c.Request.Context(), companyID, c.Param("id"), approverUserID)
	if err != nil {
		respondError(c, err, "Failed to approve worker")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// requestPhoneChange godoc
// @Summary Request a phone number change for the calling user
// @Tags workers
// @Accept json
// @Produce json
// @Param phone body dto.RequestPhoneChangeRequest true "New phone"
// @Success 200 {object} dto.UserResponse
// @Security BearerAuth
// @Router /workers/phone-change [post]
func (h *userHandler) requestPhoneChange(c *gin.Context) {
	var req dto.RequestPhoneChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	user, err := h.userService.RequestPhoneChange(c.Request.Context(), userID, req.Phone)
	if err != nil {
		respondError(c, err, "Failed to request phone change")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// approvePhoneChange godoc
// @Summary Approve a pending phone change
// @Tags workers
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse "No change pending"
// @Security BearerAuth
// @Router /workers/{id}/approve-phone [post]
func (h *userHandler) approvePhoneChange(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	approverUserID, _ := middleware.GetUserIDFromContext(c)
	user, err := h.userService.ApprovePhoneChange(c.Request.Context(), companyID, c.Param("id"), approverUserID)
	if err != nil {
		respondError(c, err, "Failed to approve phone change")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
