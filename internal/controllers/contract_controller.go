package controllers

import (
	"net/http"

	"github.com/nguyensartoro/property-management-system-backend/internal/dtos"
	"github.com/nguyensartoro/property-management-system-backend/internal/middleware"
	"github.com/nguyensartoro/property-management-system-backend/internal/services"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

type ContractController struct {
	contractService *services.ContractService
}

func NewContractController(s *services.ContractService) *ContractController {
	return &ContractController{contractService: s}
}

// POST /api/v1/contracts
func (c *ContractController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())

	var req dtos.CreateContractRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	contract, err := c.contractService.CreateContract(r.Context(), subject, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, contract)
}

// GET /api/v1/contracts/{id}
func (c *ContractController) GetHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	contract, err := c.contractService.GetContract(r.Context(), subject, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, contract)
}

// PATCH /api/v1/contracts/{id}
func (c *ContractController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.UpdateContractRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	contract, err := c.contractService.UpdateContract(r.Context(), subject, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, contract)
}

// POST /api/v1/contracts/{id}/terminate
func (c *ContractController) TerminateHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.TerminateContractRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	contract, err := c.contractService.TerminateContract(r.Context(), subject, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, contract)
}

// DELETE /api/v1/contracts/{id}
func (c *ContractController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := c.contractService.DeleteContract(r.Context(), subject, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
