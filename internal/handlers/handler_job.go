package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/craneworks/craneops_backend/internal/core/domain"
	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/dto"
	"github.com/craneworks/craneops_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// jobHandler handles HTTP requests for dispatch records.
type jobHandler struct {
	jobService portssvc.JobSvcFacade
}

func newJobHandler(js portssvc.JobSvcFacade) *jobHandler {
	return &jobHandler{jobService: js}
}

// registerJobRoutes registers job routes. Every authenticated staff member
// can read and write jobs; only bulk operations are managerial.
func registerJobRoutes(rg *gin.RouterGroup, jobService portssvc.JobSvcFacade) {
	h := newJobHandler(jobService)

	jobs := rg.Group("/jobs")
	{
		jobs.GET("", h.listJobs)
		jobs.GET("/calendar", h.calendar)
		jobs.GET("/:id", h.getJob)
		jobs.POST("", h.createJob)
		jobs.PUT("/:id", h.updateJob)
		jobs.DELETE("/:id", h.deleteJob)
		jobs.PUT("/:id/payment", h.recordPayment)

		jobs.POST("/bulk-complete", middleware.RequireManagerial(), h.bulkComplete)
	}
}

// listJobs godoc
// @Summary List jobs with filters and cursor pagination
// @Tags jobs
// @Produce json
// @Param from query string false "Start date (2006-01-02)"
// @Param to query string false "End date (2006-01-02)"
// @Param worker query string false "Worker ID or name"
// @Param machine query string false "Machine plate number"
// @Param client query string false "Client name (owner or tenant)"
// @Param status query string false "진행중 or 완료"
// @Param payment query string false "미설정, 미납, 부분 or 완납"
// @Param outsource query string false "none, received or given"
// @Param q query string false "Location substring"
// @Param limit query int false "Page size (default 50)"
// @Param pageToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListJobsResponse
// @Security BearerAuth
// @Router /jobs [get]
func (h *jobHandler) listJobs(c *gin.Context) {
	var params dto.ListJobsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query: " + err.Error()})
		return
	}
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	// Workers only ever see their own jobs, whatever filter they ask for.
	if isWorker(c) {
		userID, _ := middleware.GetUserIDFromContext(c)
		params.Worker = userID
	}

	result, err := h.jobService.ListJobs(c.Request.Context(), companyID, params)
	if err != nil {
		respondError(c, err, "Failed to list jobs")
		return
	}
	c.JSON(http.StatusOK, dto.ListJobsResponse{
		Jobs:      dto.ToJobResponses(result.Jobs),
		NextToken: result.NextToken,
	})
}

// getJob godoc
// @Summary Get one job
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.JobResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /jobs/{id} [get]
func (h *jobHandler) getJob(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	job, err := h.jobService.GetJobByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get job")
		return
	}
	if job.CompanyID != companyID {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		return
	}
	if isWorker(c) {
		userID, _ := middleware.GetUserIDFromContext(c)
		if job.WorkerID == nil || *job.WorkerID != userID {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
			return
		}
	}
	c.JSON(http.StatusOK, dto.ToJobResponse(job))
}

// isWorker reports whether the caller holds the non-managerial worker role.
func isWorker(c *gin.Context) bool {
	role, ok := middleware.GetRoleFromContext(c)
	return ok && role == domain.RoleWorker
}

// createJob godoc
// @Summary Record a new dispatch
// @Tags jobs
// @Accept json
// @Produce json
// @Param job body dto.CreateJobRequest true "Job details"
// @Success 201 {object} dto.JobResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /jobs [post]
func (h *jobHandler) createJob(c *gin.Context) {
	var req dto.CreateJobRequest
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
	// A worker records jobs for themselves, so the job stays visible to them.
	if isWorker(c) && req.WorkerID == "" {
		req.WorkerID = creatorUserID
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create job")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJobResponse(job))
}

// updateJob godoc
// @Summary Update a dispatch
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param job body dto.UpdateJobRequest true "Fields to update"
// @Success 200 {object} dto.JobResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /jobs/{id} [put]
func (h *jobHandler) updateJob(c *gin.Context) {
	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	requestingUserID, _ := middleware.GetUserIDFromContext(c)

	job, err := h.jobService.UpdateJob(c.Request.Context(), companyID, c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to update job")
		return
	}
	c.JSON(http.StatusOK, dto.ToJobResponse(job))
}

// deleteJob godoc
// @Summary Delete a dispatch
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /jobs/{id} [delete]
func (h *jobHandler) deleteJob(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	requestingUserID, _ := middleware.GetUserIDFromContext(c)
	if err := h.jobService.DeleteJob(c.Request.Context(), companyID, c.Param("id"), requestingUserID); err != nil {
		respondError(c, err, "Failed to delete job")
		return
	}
	c.Status(http.StatusNoContent)
}

// recordPayment godoc
// @Summary Record the amount paid for a job
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payment body dto.RecordPaymentRequest true "Paid amount in 만원"
// @Success 200 {object} dto.JobResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /jobs/{id}/payment [put]
func (h *jobHandler) recordPayment(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	requestingUserID, _ := middleware.GetUserIDFromContext(c)

	job, err := h.jobService.RecordPayment(c.Request.Context(), companyID, c.Param("id"), req.PaidAmountMan, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToJobResponse(job))
}

// bulkComplete godoc
// @Summary Mark a set of jobs completed
// @Tags jobs
// @Accept json
// @Produce json
// @Param jobs body dto.BulkStatusRequest true "Job IDs"
// @Success 200 {object} map[string]int64
// @Security BearerAuth
// @Router /jobs/bulk-complete [post]
func (h *jobHandler) bulkComplete(c *gin.Context) {
	var req dto.BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	requestingUserID, _ := middleware.GetUserIDFromContext(c)

	updated, err := h.jobService.BulkComplete(c.Request.Context(), companyID, req.JobIDs, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to bulk complete jobs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// calendar godoc
// @Summary Aggregate a month's jobs per day
// @Tags jobs
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Param worker query string false "Restrict to one worker ID"
// @Success 200 {array} dto.CalendarDay
// @Security BearerAuth
// @Router /jobs/calendar [get]
func (h *jobHandler) calendar(c *gin.Context) {
	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid month"})
		return
	}
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	workerID := c.Query("worker")
	if isWorker(c) {
		workerID, _ = middleware.GetUserIDFromContext(c)
	}

	days, err := h.jobService.Calendar(c.Request.Context(), companyID, year, month, workerID)
	if err != nil {
		respondError(c, err, "Failed to build calendar")
		return
	}
	c.JSON(http.StatusOK, days)
}
