package handlers

import (
	"net/http"

	portssvc "github.com/craneworks/craneops_backend/internal/core/ports/services"
	"github.com/craneworks/craneops_backend/internal/dto"
	"github.com/craneworks/craneops_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// machineHandler handles HTTP requests for the fleet directory.
type machineHandler struct {
	machineService portssvc.MachineSvcFacade
}

func newMachineHandler(ms portssvc.MachineSvcFacade) *machineHandler {
	return &machineHandler{machineService: ms}
}

// registerMachineRoutes registers machine directory routes. Writes are
// managerial.
func registerMachineRoutes(rg *gin.RouterGroup, machineService portssvc.MachineSvcFacade) {
	h := newMachineHandler(machineService)

	machines := rg.Group("/machines")
	{
		machines.GET("", h.listMachines)
		machines.GET("/:id", h.getMachine)

		managerial := machines.Group("", middleware.RequireManagerial())
		{
			managerial.POST("", h.createMachine)
			managerial.PUT("/:id", h.updateMachine)
			managerial.DELETE("/:id", h.deleteMachine)
		}
	}
}

// listMachines godoc
// @Summary List the company's machines
// @Tags machines
// @Produce json
// @Success 200 {object} dto.ListMachinesResponse
// @Security BearerAuth
// @Router /machines [get]
func (h *machineHandler) listMachines(c *gin.Context) {
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	machines, err := h.machineService.ListMachines(c.Request.Context(), companyID)
	if err != nil {
		respondError(c, err, "Failed to list machines")
		return
	}
	resp := dto.ListMachinesResponse{Machines: make([]dto.MachineResponse, len(machines))}
	for i := range machines {
		resp.Machines[i] = dto.ToMachineResponse(&machines[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getMachine godoc
// @Summary Get one machine
// @Tags machines
// @Produce json
// @Param id path string true "Machine ID"
// @Success 200 {object} dto.MachineResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /machines/{id} [get]
func (h *machineHandler) getMachine(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	machine, err := h.machineService.GetMachineByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get machine")
		return
	}
	if machine.CompanyID != companyID {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToMachineResponse(machine))
}

// createMachine godoc
// @Summary Add a machine
// @Tags machines
// @Accept json
// @Produce json
// @Param machine body dto.CreateMachineRequest true "Machine details"
// @Success 201 {object} dto.MachineResponse
// @Failure 409 {object} ErrorResponse "Plate number taken"
// @Security BearerAuth
// @Router /machines [post]
func (h *machineHandler) createMachine(c *gin.Context) {
	var req dto.CreateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	creatorUserID, _ := middleware.GetUserIDFromContext(c)

	machine, err := h.machineService.CreateMachine(c.Request.Context(), companyID, req, creatorUserID)
	if err != nil {
		respondError(c, err, "Failed to create machine")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMachineResponse(machine))
}

// updateMachine godoc
// @Summary Update a machine
// @Tags machines
// @Accept json
// @Produce json
// @Param id path string true "Machine ID"
// @Param machine body dto.UpdateMachineRequest true "Fields to update"
// @Success 200 {object} dto.MachineResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /machines/{id} [put]
func (h *machineHandler) updateMachine(c *gin.Context) {
	var req dto.UpdateMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	requestingUserID, _ := middleware.GetUserIDFromContext(c)

	machine, err := h.machineService.UpdateMachine(c.Request.Context(), companyID, c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err, "Failed to update machine")
		return
	}
	c.JSON(http.StatusOK, dto.ToMachineResponse(machine))
}

// deleteMachine godoc
// @Summary Remove a machine from the fleet
// @Tags machines
// @Produce json
// @Param id path string true "Machine ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /machines/{id} [delete]
func (h *machineHandler) deleteMachine(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	requestingUserID, _ := middleware.GetUserIDFromContext(c)
	if err := h.machineService.DeleteMachine(c.Request.Context(), companyID, c.Param("id"), requestingUserID); err != nil {
		respondError(c, err, "Failed to delete machine")
		return
	}
	c.Status(http.StatusNoContent)
}
