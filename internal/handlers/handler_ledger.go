package handlers

import (
	"net/http"

	"github.com/craneworks/craneops_backend/internal/core/domain"
	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/dto"
	"github.com/craneworks/craneops_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for the income/expense ledgers.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers ledger routes. The ledgers are a managerial
// concern throughout.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger", middleware.RequireManagerial())
	{
		ledger.GET("", h.listEntries)
		ledger.POST("", h.createEntry)
		ledger.DELETE("/:id", h.deleteEntry)
		ledger.POST("/sync", h.sync)
	}
}

// listEntries godoc
// @Summary List ledger entries of one direction
// @Tags ledger
// @Produce json
// @Param direction query string true "income or expense"
// @Param from query string false "Start date (2006-01-02)"
// @Param to query string false "End date (2006-01-02)"
// @Success 200 {object} dto.ListLedgerResponse
// @Security BearerAuth
// @Router /ledger [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
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

	entries, err := h.ledgerService.ListEntries(c.Request.Context(), companyID, domain.LedgerDirection(params.Direction), from, to)
	if err != nil {
		respondError(c, err, "Failed to list ledger entries")
		return
	}
	c.JSON(http.StatusOK, dto.ListLedgerResponse{Entries: dto.ToLedgerEntryResponses(entries)})
}

// createEntry godoc
// @Summary Add a manual ledger entry
// @Tags ledger
// @Accept json
// @Produce json
// @Param entry body dto.CreateLedgerEntryRequest true "Entry details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger [post]
func (h *ledgerHandler) createEntry(c *gin.Context) {
	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	creatorUserID, _ := middleware.GetUserIDFromContext(c)

	entry, err := h.ledgerService.CreateManualEntry(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create ledger entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a ledger entry
// @Description Deleting an auto-generated entry also deletes the job it was derived from.
// @Tags ledger
// @Produce json
// @Param id path string true "Entry ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /ledger/{id} [delete]
func (h *ledgerHandler) deleteEntry(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	requestingUserID, _ := middleware.GetUserIDFromContext(c)
	if err := h.ledgerService.DeleteEntry(c.Request.Context(), companyID, c.Param("id"), requestingUserID); err != nil {
		respondError(c, err, "Failed to delete ledger entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// sync godoc
// @Summary Reconcile ledgers against outsourced jobs
// @Description Idempotent: running it twice on unchanged data changes nothing.
// @Tags ledger
// @Produce json
// @Success 200 {object} portssvc.SyncReport
// @Security BearerAuth
// @Router /ledger/sync [post]
func (h *ledgerHandler) sync(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	report, err := h.ledgerService.SyncOutsourcing(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "Failed to reconcile ledgers")
		return
	}
	c.JSON(http.StatusOK, report)
}
