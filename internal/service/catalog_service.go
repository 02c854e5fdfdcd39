package service

import (
	"fmt"

	"go-catalog-api/internal/apperr"
	"go-catalog-api/internal/authz"
	"go-catalog-api/internal/model"
	"go-catalog-api/internal/repository"
	"go-catalog-api/internal/ws"
	"go-catalog-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogService interface {
	CreateProduct(req *model.Product, actor *model.User) error
	GetActiveProducts() ([]model.Product, error)
	GetAllProducts() ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *ProductUpdate, versions []VersionRow, actor *model.User) (*model.Product, error)
	DeleteProduct(id uuid.UUID, actor *model.User) error
	ToggleActive(id uuid.UUID, actor *model.User) (*model.Product, error)
	TogglePublished(id uuid.UUID, actor *model.User) (*model.Product, error)
	SetProductImage(id uuid.UUID, imagePath string, actor *model.User) (*model.Product, error)
}

// ProductUpdate carries the parent fields of an edit submission.
// Pointer fields distinguish "not submitted" from zero values; fields
// outside the actor's resolved field set are dropped, not rejected.
type ProductUpdate struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	ImagePath   *string    `json:"image"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Price       *int64     `json:"price"`
	IsActive    *bool      `json:"is_active"`
	IsPublished *bool      `json:"is_published"`
}

// VersionRow is one child row of a combined parent+versions submission.
// Rows with an ID update or delete an existing record; rows without an
// ID insert a new one bound to the parent.
type VersionRow struct {
	ID            *uuid.UUID `json:"id"`
	VersionNumber int        `json:"version_number"`
	VersionName   string     `json:"version_name"`
	IsCurrent     bool       `json:"is_current"`
	IsActive      bool       `json:"is_active"`
	Delete        bool       `json:"delete"`
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository, db *gorm.DB, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		db:           db,
		wsHub:        hub,
	}
}

// firstValidationError converts the first struct validation failure
// into the shared field-level error type.
func firstValidationError(errs []*validator.ErrorResponse) error {
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]
	reason := fmt.Sprintf("failed on tag '%s'", first.Tag)
	if first.Tag == "not_forbidden" {
		reason = "value is a forbidden word"
	}
	return apperr.NewValidation(first.FailedField, reason)
}

func (s *catalogService) CreateProduct(req *model.Product, actor *model.User) error {
	// 1. Validate struct (required fields, price >= 0, forbidden words)
	if err := firstValidationError(validator.ValidateStruct(req)); err != nil {
		return err
	}

	// 2. Category must exist
	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		return fmt.Errorf("category: %w", apperr.ErrNotFound)
	}

	// 3. Ownership and audit fields
	req.OwnerID = actor.ID
	req.CreatedBy = actor.ID.String()
	req.UpdatedBy = actor.ID.String()

	// 4. Persist
	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	// 5. Broadcast
	go s.wsHub.Publish(ws.Event{
		Type:   "catalog_update",
		Action: "product_created",
		Data:   map[string]interface{}{"id": req.ID, "name": req.Name, "price": req.Price},
		Actor:  map[string]interface{}{"id": actor.ID, "name": actor.FullName},
	})

	return nil
}

func (s *catalogService) GetActiveProducts() ([]model.Product, error) {
	return s.productRepo.FindActive()
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	return product, nil
}

// applyFields copies submitted parent fields onto the product, keeping
// only those the actor's field set allows. Disallowed fields are
// silently ignored so a moderator payload carrying owner-only fields
// never reaches the store.
func applyFields(product *model.Product, req *ProductUpdate, fields authz.FieldSet) {
	if req.Name != nil && fields.Allows("name") {
		product.Name = *req.Name
	}
	if req.Description != nil && fields.Allows("description") {
		product.Description = *req.Description
	}
	if req.ImagePath != nil && fields.Allows("image") {
		product.ImagePath = *req.ImagePath
	}
	if req.CategoryID != nil && fields.Allows("category") {
		product.CategoryID = *req.CategoryID
	}
	if req.Price != nil && fields.Allows("price") {
		product.Price = *req.Price
	}
	if req.IsActive != nil && fields.Allows("is_active") {
		product.IsActive = *req.IsActive
	}
	if req.IsPublished != nil && fields.Allows("is_published") {
		product.IsPublished = *req.IsPublished
	}
}

// validateVersionRows checks every child row up-front so the batch is
// accepted or rejected as a whole before anything is written.
func validateVersionRows(rows []VersionRow) error {
	for i, row := range rows {
		if row.Delete {
			if row.ID == nil {
				return apperr.NewValidation(fmt.Sprintf("versions[%d]", i), "delete marker without id")
			}
			continue
		}
		if row.VersionName == "" {
			return apperr.NewValidation(fmt.Sprintf("versions[%d].version_name", i), "required")
		}
		if len(row.VersionName) > 50 {
			return apperr.NewValidation(fmt.Sprintf("versions[%d].version_name", i), "must be at most 50 characters")
		}
	}
	return nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *ProductUpdate, versions []VersionRow, actor *model.User) (*model.Product, error) {
	var existing model.Product
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		return nil, apperr.ErrNotFound
	}

	// Authorization gate: owner, or moderator with the full capability set
	if err := authz.Can(actor, existing.OwnerID, authz.ActionUpdate); err != nil {
		return nil, err
	}

	// Resolve the edit surface once and filter the payload through it
	fields := authz.FieldsFor(actor, existing.OwnerID)
	applyFields(&existing, req, fields)
	existing.UpdatedBy = actor.ID.String()

	// Validate parent and the whole child batch before touching the store
	if err := firstValidationError(validator.ValidateStruct(&existing)); err != nil {
		return nil, err
	}
	if err := validateVersionRows(versions); err != nil {
		return nil, err
	}
	if req.CategoryID != nil && fields.Allows("category") {
		if _, err := s.categoryRepo.FindByID(*req.CategoryID); err != nil {
			return nil, fmt.Errorf("category: %w", apperr.ErrNotFound)
		}
	}

	// Parent and child rows commit together or not at all
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var locked model.Product
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&locked, "id = ?", id).Error; err != nil {
			return apperr.ErrNotFound
		}

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		for _, row := range versions {
			switch {
			case row.Delete:
				if err := tx.Delete(&model.Version{}, "id = ? AND product_id = ?", *row.ID, id).Error; err != nil {
					return err
				}
			case row.ID != nil:
				var child model.Version
				if err := tx.First(&child, "id = ? AND product_id = ?", *row.ID, id).Error; err != nil {
					return apperr.NewValidation("versions", "row does not belong to this product")
				}
				child.VersionNumber = row.VersionNumber
				child.VersionName = row.VersionName
				child.IsCurrent = row.IsCurrent
				child.IsActive = row.IsActive
				child.UpdatedBy = actor.ID.String()
				if err := tx.Save(&child).Error; err != nil {
					return err
				}
			default:
				child := model.Version{
					VersionNumber: row.VersionNumber,
					VersionName:   row.VersionName,
					IsCurrent:     row.IsCurrent,
					IsActive:      row.IsActive,
					ProductID:     id,
				}
				child.CreatedBy = actor.ID.String()
				child.UpdatedBy = actor.ID.String()
				if err := tx.Create(&child).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.wsHub.Publish(ws.Event{
		Type:   "catalog_update",
		Action: "product_updated",
		Data:   map[string]interface{}{"id": existing.ID, "name": existing.Name, "price": existing.Price},
		Actor:  map[string]interface{}{"id": actor.ID, "name": actor.FullName},
	})

	return s.productRepo.FindByID(id)
}

func (s *catalogService) DeleteProduct(id uuid.UUID, actor *model.User) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return apperr.ErrNotFound
	}

	// Delete is owner-only; moderators get no bypass
	if err := authz.Can(actor, product.OwnerID, authz.ActionDelete); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.productRepo.Delete(tx, id, actor.ID.String())
	})
}

// toggleFlag negates one boolean column and persists it. The two flags
// are independent; neither blocks the other.
func (s *catalogService) toggleFlag(id uuid.UUID, actor *model.User, action authz.Action, column string, read func(*model.Product) bool) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}

	if err := authz.Can(actor, product.OwnerID, action); err != nil {
		return nil, err
	}

	newValue := !read(product)
	if err := s.db.Model(&model.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			column:       newValue,
			"updated_by": actor.ID.String(),
		}).Error; err != nil {
		return nil, err
	}

	go s.wsHub.Publish(ws.Event{
		Type:   "catalog_update",
		Action: "product_" + column,
		Data:   map[string]interface{}{"id": id, column: newValue},
		Actor:  map[string]interface{}{"id": actor.ID, "name": actor.FullName},
	})

	return s.productRepo.FindByID(id)
}

func (s *catalogService) ToggleActive(id uuid.UUID, actor *model.User) (*model.Product, error) {
	return s.toggleFlag(id, actor, authz.ActionUpdate, "is_active", func(p *model.Product) bool { return p.IsActive })
}

func (s *catalogService) TogglePublished(id uuid.UUID, actor *model.User) (*model.Product, error) {
	return s.toggleFlag(id, actor, authz.ActionPublish, "is_published", func(p *model.Product) bool { return p.IsPublished })
}

func (s *catalogService) SetProductImage(id uuid.UUID, imagePath string, actor *model.User) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}

	if err := authz.Can(actor, product.OwnerID, authz.ActionUpdate); err != nil {
		return nil, err
	}
	if !authz.FieldsFor(actor, product.OwnerID).Allows("image") {
		return nil, apperr.ErrPermissionDenied
	}

	product.ImagePath = imagePath
	product.UpdatedBy = actor.ID.String()
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}
