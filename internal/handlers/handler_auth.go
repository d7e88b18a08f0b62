package handlers

import (
	"log/slog"
	"net/http"

	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ulule/limiter/v3"

	"github.com/craneworks/craneops_backend/internal/core/domain"
	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/dto"
	"github.com/craneworks/craneops_backend/internal/middleware"
	"github.com/craneworks/craneops_backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// authHandler handles registration, login and token rotation.
type authHandler struct {
	authService  portssvc.AuthSvcFacade
	tokenService portssvc.TokenSvcFacade
	userService  portssvc.UserSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade, ts portssvc.TokenSvcFacade, us portssvc.UserSvcFacade) *authHandler {
	return &authHandler{authService: as, tokenService: ts, userService: us}
}

// registerAuthRoutes sets up the public authentication routes. Login and the
// two registrations are rate limited per IP.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.Auth, services.Token, services.User)

	rate, _ := limiter.NewRateFromFormatted("10-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register/company", limitMiddleware, h.registerCompany)
		auth.POST("/register/worker", limitMiddleware, h.registerWorker)
		auth.POST("/login", limitMiddleware, h.login)
		auth.POST("/refresh", h.refresh)
	}
}

// issueTokens generates an access/refresh pair and persists the refresh hash.
func (h *authHandler) issueTokens(c *gin.Context, user *domain.User) (dto.AuthResponse, bool) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	accessToken, accessExpiry, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return dto.AuthResponse{}, false
	}
	refreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate refresh token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return dto.AuthResponse{}, false
	}
	if err := h.userService.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(refreshToken), refreshExpiry); err != nil {
		logger.Error("Failed to store refresh token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return dto.AuthResponse{}, false
	}
	return dto.ToAuthResponse(user, accessToken, accessExpiry, refreshToken, refreshExpiry), true
}

// registerCompany godoc
// @Summary Register a company with its boss account
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterCompanyRequest true "Company and boss details"
// @Success 201 {object} dto.RegisterCompanyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register/company [post]
func (h *authHandler) registerCompany(c *gin.Context) {
	var req dto.RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	boss, company, err := h.authService.RegisterCompany(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register company")
		return
	}

	authResp, ok := h.issueTokens(c, boss)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, dto.RegisterCompanyResponse{
		AuthResponse: authResp,
		Company:      dto.ToCompanyResponse(company, true),
	})
}

// registerWorker godoc
// @Summary Self-register a worker against a company join code
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterWorkerRequest true "Worker details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register/worker [post]
func (h *authHandler) registerWorker(c *gin.Context) {
	var req dto.RegisterWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	worker, err := h.authService.RegisterWorker(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register worker")
		return
	}
	// No tokens: the account cannot log in until the boss approves it.
	c.JSON(http.StatusCreated, dto.ToUserResponse(worker))
}

// login godoc
// @Summary Log in with phone (or username) and password
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Account awaiting approval"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	authResp, ok := h.issueTokens(c, user)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, authResp)
}

// refresh godoc
// @Summary Rotate tokens using a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.authService.Refresh(c.Request.Context(), req.UserID, req.RefreshToken)
	if err != nil {
		respondError(c, err, "Failed to refresh token")
		return
	}

	authResp, ok := h.issueTokens(c, user)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, authResp)
}

// logout godoc
// @Summary Log out, invalidating the refresh token
// @Tags auth
// @Produce json
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err, "Failed to log out")
		return
	}
	c.Status(http.StatusNoContent)
}

// registerLogoutRoute attaches the authenticated logout endpoint.
func registerLogoutRoute(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services.Auth, services.Token, services.User)
	rg.POST("/auth/logout", h.logout)
}
