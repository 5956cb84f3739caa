package controllers

import (
	"net/http"

	"github.com/nguyensartoro/property-management-system-backend/internal/dtos"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

// GET /health
func (c *HealthController) HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthResponse{Status: "ok"})
}
