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

// DocumentService stores document metadata. The files themselves live
// wherever Path points; this layer only tracks who may see the record.
type DocumentService struct {
	store repositories.Store
	eval  *security.PermissionEvaluator
}

func NewDocumentService(store repositories.Store, eval *security.PermissionEvaluator) *DocumentService {
	return &DocumentService{store: store, eval: eval}
}

func (s *DocumentService) GetDocument(ctx context.Context, subject *security.Subject, id uuid.UUID) (*models.Document, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceDocument, security.ActionRead, &id); err != nil {
		return nil, err
	}
	document, err := s.store.Documents().GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if document == nil {
		return nil, utils.NewNotFound("Document")
	}
	return document, nil
}

func (s *DocumentService) ListDocumentsByRenter(ctx context.Context, subject *security.Subject, renterID uuid.UUID) ([]*models.Document, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceRenter, security.ActionRead, &renterID); err != nil {
		return nil, err
	}
	documents, err := s.store.Documents().ListByRenterID(ctx, renterID)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	return documents, nil
}

func (s *DocumentService) CreateDocument(ctx context.Context, subject *security.Subject, req dtos.CreateDocumentRequest) (*models.Document, error) {
	if req.RenterID == nil && req.RoomID == nil {
		return nil, utils.NewValidation("document must reference a renter or a room")
	}

	// Authorization anchors on the renter when present, else the room.
	if req.RenterID != nil {
		if err := s.eval.Authorize(ctx, subject, security.ResourceDocument, security.ActionCreate, req.RenterID); err != nil {
			return nil, err
		}
	} else {
		if err := s.eval.Authorize(ctx, subject, security.ResourceRoom, security.ActionUpdate, req.RoomID); err != nil {
			return nil, err
		}
	}

	document := &models.Document{
		ID:       uuid.New(),
		RenterID: req.RenterID,
		RoomID:   req.RoomID,
		Name:     req.Name,
		Type:     req.Type,
		Path:     req.Path,
	}
	if err := s.store.Documents().Create(ctx, document); err != nil {
		return nil, utils.NewInternal(err)
	}
	return document, nil
}

func (s *DocumentService) DeleteDocument(ctx context.Context, subject *security.Subject, id uuid.UUID) error {
	if err := s.eval.Authorize(ctx, subject, security.ResourceDocument, security.ActionDelete, &id); err != nil {
		return err
	}

	document, err := s.store.Documents().GetByID(ctx, id)
	if err != nil {
		return utils.NewInternal(err)
	}
	if document == nil {
		return utils.NewNotFound("Document")
	}
	return s.store.Documents().Delete(ctx, id)
}
