package service

import (
	"go-catalog-api/internal/apperr"
	"go-catalog-api/internal/model"
	"go-catalog-api/internal/repository"
	"go-catalog-api/internal/ws"
	"go-catalog-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryService interface {
	CreateCategory(req *model.Category, actor *model.User) error
	GetCategories() ([]model.Category, error)
	GetCategory(id uuid.UUID) (*model.Category, error)
	UpdateCategory(id uuid.UUID, req *CategoryUpdate, versions []VersionRow, actor *model.User) (*model.Category, error)
	DeleteCategory(id uuid.UUID, actor *model.User) error
}

// CategoryUpdate carries the parent fields of a category edit.
type CategoryUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImagePath   *string `json:"image"`
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewCategoryService(cRepo repository.CategoryRepository, db *gorm.DB, hub *ws.Hub) CategoryService {
	return &categoryService{
		categoryRepo: cRepo,
		db:           db,
		wsHub:        hub,
	}
}

func (s *categoryService) CreateCategory(req *model.Category, actor *model.User) error {
	if err := firstValidationError(validator.ValidateStruct(req)); err != nil {
		return err
	}

	req.CreatedBy = actor.ID.String()
	req.UpdatedBy = actor.ID.String()

	return s.categoryRepo.Create(req)
}

func (s *categoryService) GetCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *categoryService) GetCategory(id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(id uuid.UUID, req *CategoryUpdate, versions []VersionRow, actor *model.User) (*model.Category, error) {
	var existing model.Category
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		return nil, apperr.ErrNotFound
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.ImagePath != nil {
		existing.ImagePath = *req.ImagePath
	}
	existing.UpdatedBy = actor.ID.String()

	if err := firstValidationError(validator.ValidateStruct(&existing)); err != nil {
		return nil, err
	}
	if err := validateVersionRows(versions); err != nil {
		return nil, err
	}

	// Same batch semantics as products: parent plus child rows in one
	// transaction, committed only when every row validated
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var locked model.Category
		if err := tx.Set("gorm:query_option", "FOR UPDATE").First(&locked, "id = ?", id).Error; err != nil {
			return apperr.ErrNotFound
		}

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		for _, row := range versions {
			switch {
			case row.Delete:
				if err := tx.Delete(&model.VersionCategory{}, "id = ? AND category_id = ?", *row.ID, id).Error; err != nil {
					return err
				}
			case row.ID != nil:
				var child model.VersionCategory
				if err := tx.First(&child, "id = ? AND category_id = ?", *row.ID, id).Error; err != nil {
					return apperr.NewValidation("versions", "row does not belong to this category")
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
				child := model.VersionCategory{
					VersionNumber: row.VersionNumber,
					VersionName:   row.VersionName,
					IsCurrent:     row.IsCurrent,
					IsActive:      row.IsActive,
					CategoryID:    id,
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

	return s.categoryRepo.FindByID(id)
}

// DeleteCategory removes a category together with its version rows,
// its products and their version rows. ADMIN role only.
func (s *categoryService) DeleteCategory(id uuid.UUID, actor *model.User) error {
	if actor == nil || !actor.HasRole(model.RoleAdmin) {
		return apperr.ErrPermissionDenied
	}

	if _, err := s.categoryRepo.FindByID(id); err != nil {
		return apperr.ErrNotFound
	}

	deletedBy := actor.ID.String()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var products []model.Product
		if err := tx.Where("category_id = ?", id).Find(&products).Error; err != nil {
			return err
		}
		for _, p := range products {
			if err := tx.Where("product_id = ?", p.ID).Delete(&model.Version{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&model.Product{}).Where("category_id = ?", id).
			Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&model.Product{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&model.VersionCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Category{}).Where("id = ?", id).
			Update("deleted_by", deletedBy).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Category{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	go s.wsHub.Publish(ws.Event{
		Type:   "catalog_update",
		Action: "category_deleted",
		Data:   map[string]interface{}{"id": id},
		Actor:  map[string]interface{}{"id": actor.ID, "name": actor.FullName},
	})

	return nil
}
