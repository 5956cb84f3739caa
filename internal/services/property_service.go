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

// PropertyService covers property CRUD. The caller creating a property
// becomes its owner; ownership never moves after that.
type PropertyService struct {
	store repositories.Store
	eval  *security.PermissionEvaluator
}

func NewPropertyService(store repositories.Store, eval *security.PermissionEvaluator) *PropertyService {
	return &PropertyService{store: store, eval: eval}
}

func (s *PropertyService) GetProperty(ctx context.Context, subject *security.Subject, id uuid.UUID) (*models.Property, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceProperty, security.ActionRead, &id); err != nil {
		return nil, err
	}
	property, err := s.store.Properties().GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if property == nil {
		return nil, utils.NewNotFound("Property")
	}
	return property, nil
}

// ListProperties returns all properties for the super role and the
// caller's own properties for everyone else.
func (s *PropertyService) ListProperties(ctx context.Context, subject *security.Subject) ([]*models.Property, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceProperty, security.ActionList, nil); err != nil {
		return nil, err
	}

	var (
		properties []*models.Property
		err        error
	)
	if subject.Role == models.RoleAdmin {
		properties, err = s.store.Properties().ListAll(ctx)
	} else {
		properties, err = s.store.Properties().ListByUserID(ctx, subject.ID)
	}
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	return properties, nil
}

func (s *PropertyService) CreateProperty(ctx context.Context, subject *security.Subject, req dtos.CreatePropertyRequest) (*models.Property, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceProperty, security.ActionCreate, nil); err != nil {
		return nil, err
	}

	property := &models.Property{
		ID:      uuid.New(),
		UserID:  subject.ID,
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
		State:   req.State,
		ZipCode: req.ZipCode,
	}
	if err := s.store.Properties().Create(ctx, property); err != nil {
		return nil, utils.NewInternal(err)
	}
	return property, nil
}

func (s *PropertyService) UpdateProperty(ctx context.Context, subject *security.Subject, id uuid.UUID, req dtos.UpdatePropertyRequest) (*models.Property, error) {
	if err := s.eval.Authorize(ctx, subject, security.ResourceProperty, security.ActionUpdate, &id); err != nil {
		return nil, err
	}

	property, err := s.store.Properties().GetByID(ctx, id)
	if err != nil {
		return nil, utils.NewInternal(err)
	}
	if property == nil {
		return nil, utils.NewNotFound("Property")
	}

	if req.Name != nil {
		property.Name = *req.Name
	}
	if req.Address != nil {
		property.Address = *req.Address
	}
	if req.City != nil {
		property.City = *req.City
	}
	if req.State != nil {
		property.State = *req.State
	}
	if req.ZipCode != nil {
		property.ZipCode = *req.ZipCode
	}

	if err := s.store.Properties().Update(ctx, property); err != nil {
		return nil, utils.NewInternal(err)
	}
	return property, nil
}

func (s *PropertyService) DeleteProperty(ctx context.Context, subject *security.Subject, id uuid.UUID) error {
	if err := s.eval.Authorize(ctx, subject, security.ResourceProperty, security.ActionDelete, &id); err != nil {
		return err
	}

	return s.store.WithinTx(ctx, func(tx repositories.Store) error {
		property, err := tx.Properties().GetByID(ctx, id)
		if err != nil {
			return utils.NewInternal(err)
		}
		if property == nil {
			return utils.NewNotFound("Property")
		}

		rooms, err := tx.Rooms().ListByPropertyID(ctx, id)
		if err != nil {
			return utils.NewInternal(err)
		}
		if len(rooms) > 0 {
			return utils.NewConflict("property still has rooms")
		}

		if err := tx.Properties().Delete(ctx, id); err != nil {
			return utils.NewInternal(err)
		}
		return nil
	})
}
