package controllers

import (
	"net/http"

	"github.com/nguyensartoro/property-management-system-backend/internal/dtos"
	"github.com/nguyensartoro/property-management-system-backend/internal/middleware"
	"github.com/nguyensartoro/property-management-system-backend/internal/services"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

type DocumentController struct {
	documentService *services.DocumentService
}

func NewDocumentController(s *services.DocumentService) *DocumentController {
	return &DocumentController{documentService: s}
}

// POST /api/v1/documents
func (c *DocumentController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())

	var req dtos.CreateDocumentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	document, err := c.documentService.CreateDocument(r.Context(), subject, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, document)
}

// GET /api/v1/documents/{id}
func (c *DocumentController) GetHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	document, err := c.documentService.GetDocument(r.Context(), subject, id)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, document)
}

// DELETE /api/v1/documents/{id}
func (c *DocumentController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := c.documentService.DeleteDocument(r.Context(), subject, id); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
