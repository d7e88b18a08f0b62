package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/craneworks/craneops_backend/internal/core/domain"
	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/dto"
	"github.com/craneworks/craneops_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exportHandler renders job lists and ledgers to CSV/XLSX and mails them.
type exportHandler struct {
	jobService    portssvc.JobSvcFacade
	ledgerService portssvc.LedgerSvcFacade
	exportService portssvc.ExportSvcFacade
	mailService   portssvc.MailSvcFacade
}

func newExportHandler(js portssvc.JobSvcFacade, ls portssvc.LedgerSvcFacade, es portssvc.ExportSvcFacade, ms portssvc.MailSvcFacade) *exportHandler {
	return &exportHandler{jobService: js, ledgerService: ls, exportService: es, mailService: ms}
}

// registerExportRoutes registers export routes, managerial only.
func registerExportRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newExportHandler(services.Job, services.Ledger, services.Export, services.Mail)

	export := rg.Group("/export", middleware.RequireManagerial())
	{
		export.GET("/jobs", h.exportJobs)
		export.GET("/ledger", h.exportLedger)
		export.POST("/jobs/email", h.emailJobs)
	}
}

// serveFile writes an export as a download attachment.
func serveFile(c *gin.Context, file *portssvc.ExportFile) {
	disposition := fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(file.Filename))
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, file.Mime, file.Data)
}

// collectJobs fetches every job in the range, walking all pages.
func (h *exportHandler) collectJobs(c *gin.Context, companyID, fromStr, toStr string) ([]domain.Job, error) {
	params := dto.ListJobsParams{From: fromStr, To: toStr, Limit: 500}
	jobs := []domain.Job{}
	for {
		result, err := h.jobService.ListJobs(c.Request.Context(), companyID, params)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, result.Jobs...)
		if result.NextToken == "" {
			return jobs, nil
		}
		params.PageToken = result.NextToken
	}
}

// exportJobs godoc
// @Summary Download the job list as CSV or XLSX
// @Tags export
// @Produce application/octet-stream
// @Param format query string false "csv (default) or xlsx"
// @Param from query string false "Start date (2006-01-02)"
// @Param to query string false "End date (2006-01-02)"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /export/jobs [get]
func (h *exportHandler) exportJobs(c *gin.Context) {
	from, to, err := parseDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date range"})
		return
	}
	companyID, _ := middleware.GetCompanyIDFromContext(c)

	jobs, err := h.collectJobs(c, companyID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err, "Failed to collect jobs")
		return
	}

	var file *portssvc.ExportFile
	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		file, err = h.exportService.JobsXLSX(c.Request.Context(), jobs, from, to)
	case "csv":
		file, err = h.exportService.JobsCSV(c.Request.Context(), jobs, from, to)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "format must be csv or xlsx"})
		return
	}
	if err != nil {
		respondError(c, err, "Failed to render export")
		return
	}
	serveFile(c, file)
}

// exportLedger godoc
// @Summary Download one ledger as CSV or XLSX
// @Tags export
// @Produce application/octet-stream
// @Param direction query string true "income or expense"
// @Param format query string false "csv (default) or xlsx"
// @Param from query string false "Start date (2006-01-02)"
// @Param to query string false "End date (2006-01-02)"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /export/ledger [get]
func (h *exportHandler) exportLedger(c *gin.Context) {
	var params dto.ListLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query: " + err.Error()})
		return
	}
	from, to, err := parseDateRange(params.From, params.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date range"})
		return
	}
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	direction := domain.LedgerDirection(params.Direction)

	entries, err := h.ledgerService.ListEntries(c.Request.Context(), companyID, direction, from, to)
	if err != nil {
		respondError(c, err, "Failed to list ledger entries")
		return
	}

	var file *portssvc.ExportFile
	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		file, err = h.exportService.LedgerXLSX(c.Request.Context(), entries, direction, from, to)
	case "csv":
		file, err = h.exportService.LedgerCSV(c.Request.Context(), entries, direction, from, to)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "format must be csv or xlsx"})
		return
	}
	if err != nil {
		respondError(c, err, "Failed to render export")
		return
	}
	serveFile(c, file)
}

// emailJobs godoc
// @Summary Email the job list as an XLSX attachment
// @Tags export
// @Accept json
// @Produce json
// @Param mail body dto.MailExportRequest true "Recipients and range"
// @Success 202
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /export/jobs/email [post]
func (h *exportHandler) emailJobs(c *gin.Context) {
	var req dto.MailExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	from, to, err := parseDateRange(req.From, req.ToDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid date range"})
		return
	}
	companyID, _ := middleware.GetCompanyIDFromContext(c)

	jobs, err := h.collectJobs(c, companyID, req.From, req.ToDate)
	if err != nil {
		respondError(c, err, "Failed to collect jobs")
		return
	}
	file, err := h.exportService.JobsXLSX(c.Request.Context(), jobs, from, to)
	if err != nil {
		respondError(c, err, "Failed to render export")
		return
	}

	subject := req.Subject
	if subject == "" {
		subject = file.Filename
	}
	if err := h.mailService.SendWithAttachment(c.Request.Context(), req.To, subject, req.Body, file); err != nil {
		respondError(c, err, "Failed to send mail")
		return
	}
	c.Status(http.StatusAccepted)
}
