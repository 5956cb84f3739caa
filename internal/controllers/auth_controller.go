package controllers

import (
	"net/http"

	"github.com/nguyensartoro/property-management-system-backend/internal/dtos"
	"github.com/nguyensartoro/property-management-system-backend/internal/middleware"
	"github.com/nguyensartoro/property-management-system-backend/internal/services"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(s *services.AuthService) *AuthController {
	return &AuthController{authService: s}
}

// POST /api/v1/auth/register
func (c *AuthController) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := c.authService.Register(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, user)
}

// POST /api/v1/auth/login
func (c *AuthController) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.authService.Login(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/auth/me
func (c *AuthController) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	subject := middleware.SubjectFromContext(r.Context())

	user, err := c.authService.GetProfile(r.Context(), subject)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}
