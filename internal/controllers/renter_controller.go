package controllers

import (
	"net/http"

	"github.com/nguyensartoro/property-management-system-backend/internal/dtos"
	"github.com/nguyensartoro/property-management-system-backend/internal/middleware"
	"github.com/nguyensartoro/property-management-system-backend/internal/services"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

type RenterController struct {
	renterService   *services.RenterService
	paymentService  *services.PaymentService
	documentService *services.DocumentService
}

func NewRenterController(rs *services.RenterService, ps *services.PaymentService, ds *services.DocumentService) *RenterController {
	return &RenterController{renterService: rs, paymentService: ps, documentService: ds}
}

// POST /api/v1/renters
func (c *RenterController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())

	var req dtos.CreateRenterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	renter, err := c.renterService.CreateRenter(r.Context(), subject, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, renter)
}

// GET /api/v1/renters/{id}
func (c *RenterController) GetHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	renter, err := c.renterService.GetRenter(r.Context(), subject, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, renter)
}

// PATCH /api/v1/renters/{id}
func (c *RenterController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.UpdateRenterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	renter, err := c.renterService.UpdateRenter(r.Context(), subject, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, renter)
}

// DELETE /api/v1/renters/{id}
func (c *RenterController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := c.renterService.DeleteRenter(r.Context(), subject, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/renters/{id}/payments
func (c *RenterController) ListPaymentsHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	payments, err := c.paymentService.ListPaymentsByRenter(r.Context(), subject, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payments)
}

// GET /api/v1/renters/{id}/documents
func (c *RenterController) ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	documents, err := c.documentService.ListDocumentsByRenter(r.Context(), subject, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, documents)
}
