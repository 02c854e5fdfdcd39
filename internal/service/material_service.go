package service

import (
	"go-catalog-api/internal/apperr"
	"go-catalog-api/internal/model"
	"go-catalog-api/internal/repository"
	"go-catalog-api/internal/ws"
	"go-catalog-api/pkg/validator"

	"github.com/gosimple/slug"
)

type MaterialService interface {
	CreateMaterial(req *model.Material, actor *model.User) error
	GetPublishedMaterials() ([]model.Material, error)
	GetMaterialBySlug(slugValue string) (*model.Material, error)
	UpdateMaterial(slugValue string, req *MaterialUpdate, actor *model.User) (*model.Material, error)
	DeleteMaterial(slugValue string, actor *model.User) error
	TogglePublished(slugValue string, actor *model.User) (*model.Material, error)
}

type MaterialUpdate struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

type materialService struct {
	materialRepo repository.MaterialRepository
	wsHub        *ws.Hub
}

func NewMaterialService(mRepo repository.MaterialRepository, hub *ws.Hub) MaterialService {
	return &materialService{materialRepo: mRepo, wsHub: hub}
}

func (s *materialService) CreateMaterial(req *model.Material, actor *model.User) error {
	if err := firstValidationError(validator.ValidateStruct(req)); err != nil {
		return err
	}

	req.Slug = slug.Make(req.Title)
	req.CreatedBy = actor.ID.String()
	req.UpdatedBy = actor.ID.String()

	if err := s.materialRepo.Create(req); err != nil {
		// Unique slug index; same title twice collides
		return apperr.ErrConflict
	}
	return nil
}

func (s *materialService) GetPublishedMaterials() ([]model.Material, error) {
	return s.materialRepo.FindPublished()
}

// GetMaterialBySlug returns the material and bumps its view counter.
// Every read counts; there is no per-visitor dedupe.
func (s *materialService) GetMaterialBySlug(slugValue string) (*model.Material, error) {
	material, err := s.materialRepo.FindBySlug(slugValue)
	if err != nil {
		return nil, apperr.ErrNotFound
	}

	if err := s.materialRepo.IncrementViews(material.ID); err != nil {
		return nil, err
	}
	material.ViewsCount++

	return material, nil
}

func (s *materialService) UpdateMaterial(slugValue string, req *MaterialUpdate, actor *model.User) (*model.Material, error) {
	material, err := s.materialRepo.FindBySlug(slugValue)
	if err != nil {
		return nil, apperr.ErrNotFound
	}

	if req.Title != nil {
		material.Title = *req.Title
		// Slug always follows the title
		material.Slug = slug.Make(*req.Title)
	}
	if req.Body != nil {
		material.Body = *req.Body
	}
	material.UpdatedBy = actor.ID.String()

	if err := firstValidationError(validator.ValidateStruct(material)); err != nil {
		return nil, err
	}

	if err := s.materialRepo.Update(material); err != nil {
		return nil, err
	}
	return material, nil
}

func (s *materialService) DeleteMaterial(slugValue string, actor *model.User) error {
	material, err := s.materialRepo.FindBySlug(slugValue)
	if err != nil {
		return apperr.ErrNotFound
	}
	return s.materialRepo.Delete(material.ID)
}

func (s *materialService) TogglePublished(slugValue string, actor *model.User) (*model.Material, error) {
	material, err := s.materialRepo.FindBySlug(slugValue)
	if err != nil {
		return nil, apperr.ErrNotFound
	}

	material.IsPublished = !material.IsPublished
	material.UpdatedBy = actor.ID.String()
	if err := s.materialRepo.Update(material); err != nil {
		return nil, err
	}

	go s.wsHub.Publish(ws.Event{
		Type:   "catalog_update",
		Action: "material_published",
		Data:   map[string]interface{}{"slug": material.Slug, "is_published": material.IsPublished},
		Actor:  map[string]interface{}{"id": actor.ID, "name": actor.FullName},
	})

	return material, nil
}
