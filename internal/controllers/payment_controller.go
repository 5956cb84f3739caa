package controllers

import (
	"net/http"

	"github.com/nguyensartoro/property-management-system-backend/internal/dtos"
	"github.com/nguyensartoro/property-management-system-backend/internal/middleware"
	"github.com/nguyensartoro/property-management-system-backend/internal/services"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

type PaymentController struct {
	paymentService *services.PaymentService
}

func NewPaymentController(s *services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: s}
}

// POST /api/v1/payments
func (c *PaymentController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())

	var req dtos.CreatePaymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	payment, err := c.paymentService.CreatePayment(r.Context(), subject, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, payment)
}

// GET /api/v1/payments/{id}
func (c *PaymentController) GetHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	payment, err := c.paymentService.GetPayment(r.Context(), subject, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payment)
}

// PATCH /api/v1/payments/{id}
func (c *PaymentController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.UpdatePaymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	payment, err := c.paymentService.UpdatePayment(r.Context(), subject, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payment)
}

// POST /api/v1/payments/{id}/pay
func (c *PaymentController) MarkPaidHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req dtos.MarkPaymentPaidRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	payment, err := c.paymentService.MarkPaymentAsPaid(r.Context(), subject, id, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, payment)
}

// DELETE /api/v1/payments/{id}
func (c *PaymentController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := c.paymentService.DeletePayment(r.Context(), subject, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
