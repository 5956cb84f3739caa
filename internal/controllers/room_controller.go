package controllers

import (
	"net/http"

	"github.com/nguyensartoro/property-management-system-backend/internal/dtos"
	"github.com/nguyensartoro/property-management-system-backend/internal/middleware"
	"github.com/nguyensartoro/property-management-system-backend/internal/services"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

type RoomController struct {
	roomService        *services.RoomService
	contractService    *services.ContractService
	maintenanceService *services.MaintenanceService
}

func NewRoomController(roomService *services.RoomService, contractService *services.ContractService, maintenanceService *services.MaintenanceService) *RoomController {
	return &RoomController{
		roomService:        roomService,
		contractService:    contractService,
		maintenanceService: maintenanceService,
	}
}

// POST /api/v1/rooms
func (c *RoomController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())

	var req dtos.CreateRoomRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	room, err := c.roomService.CreateRoom(r.Context(), subject, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, room)
}

// GET /api/v1/rooms/{id}
func (c *RoomController) GetHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	room, err := c.roomService.GetRoom(r.Context(), subject, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, room)
}

// PATCH /api/v1/rooms/{id}
func (c *RoomController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.UpdateRoomRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	room, err := c.roomService.UpdateRoom(r.Context(), subject, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, room)
}

// DELETE /api/v1/rooms/{id}
func (c *RoomController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := c.roomService.DeleteRoom(r.Context(), subject, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/rooms/{id}/contracts
func (c *RoomController) ListContractsHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	contracts, err := c.contractService.ListContractsByRoom(r.Context(), subject, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, contracts)
}

// GET /api/v1/rooms/{id}/maintenance
func (c *RoomController) ListMaintenanceHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	events, err := c.maintenanceService.ListMaintenanceEventsByRoom(r.Context(), subject, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, events)
}
