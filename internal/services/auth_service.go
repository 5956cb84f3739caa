package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/nguyensartoro/property-management-system-backend/internal/dtos"
	"github.com/nguyensartoro/property-management-system-backend/internal/models"
	"github.com/nguyensartoro/property-management-system-backend/internal/repositories"
	"github.com/nguyensartoro/property-management-system-backend/internal/security"
	"github.com/nguyensartoro/property-management-system-backend/internal/utils"
)

type AuthService struct {
	store  repositories.Store
	tokens *security.TokenManager
}

func NewAuthService(store repositories.Store, tokens *security.TokenManager) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

// Register creates an account with the base USER role. Elevated roles
// are granted by an admin afterwards, never self-assigned.
func (s *AuthService) Register(ctx context.Context, req dtos.RegisterRequest) (*models.User, error) {
	existing, err := s.store.Users().GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if existing != nil {
		return nil, utils.NewConflict("an account with this email already exists")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.NewInternal(err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Roles:        []models.RoleType{models.RoleUser},
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, utils.NewInternal(err)
	}
	return user, nil
}

// Login verifies credentials and issues an access token. Wrong email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req dtos.LoginRequest) (*dtos.LoginResponse, error) {
	user, err := s.store.Users().GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, utils.NewUnauthenticated()
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	return &dtos.LoginResponse{Token: token, User: user}, nil
}

// GetProfile returns the caller's own account.
func (s *AuthService) GetProfile(ctx context.Context, subject *security.Subject) (*models.User, error) {
	if subject == nil {
		return nil, utils.NewUnauthenticated()
	}
	user, err := s.store.Users().GetByID(ctx, subject.ID)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if user == nil {
		return nil, utils.NewNotFound("User")
	}
	return user, nil
}
