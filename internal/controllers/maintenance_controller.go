package controllers

import (
	"net/http"

	"github.com/nguyensartoro/property-management-system-backend/internal/dtos"
	"github.com/nguyensartoro/property-management-system-backend/internal/middleware"
	"github.com/nguyensartoro/property-management-system-backend/internal/services"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

type MaintenanceController struct {
	maintenanceService *services.MaintenanceService
}

func NewMaintenanceController(s *services.MaintenanceService) *MaintenanceController {
	return &MaintenanceController{maintenanceService: s}
}

// POST /api/v1/maintenance
func (c *MaintenanceController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())

	var req dtos.CreateMaintenanceEventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	event, err := c.maintenanceService.CreateMaintenanceEvent(r.Context(), subject, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, event)
}

// GET /api/v1/maintenance/{id}
func (c *MaintenanceController) GetHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	event, err := c.maintenanceService.GetMaintenanceEvent(r.Context(), subject, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, event)
}

// PATCH /api/v1/maintenance/{id}
func (c *MaintenanceController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.UpdateMaintenanceEventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	event, err := c.maintenanceService.UpdateMaintenanceEvent(r.Context(), subject, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, event)
}

// DELETE /api/v1/maintenance/{id}
func (c *MaintenanceController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := c.maintenanceService.DeleteMaintenanceEvent(r.Context(), subject, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
