package repository

import (
	"go-catalog-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MaterialRepository interface {
	Create(material *model.Material) error
	FindPublished() ([]model.Material, error)
	FindBySlug(slug string) (*model.Material, error)
	FindByID(id uuid.UUID) (*model.Material, error)
	Update(material *model.Material) error
	Delete(id uuid.UUID) error
	IncrementViews(id uuid.UUID) error
	CountAll() (int64, error)
	TotalViews() (int64, error)
}

type materialRepo struct {
	db *gorm.DB
}

func NewMaterialRepo(db *gorm.DB) MaterialRepository {
	return &materialRepo{db}
}

func (r *materialRepo) Create(material *model.Material) error {
	return r.db.Create(material).Error
}

func (r *materialRepo) FindPublished() ([]model.Material, error) {
	var materials []model.Material
	err := r.db.Where("is_published = ?", true).Find(&materials).Error
	return materials, err
}

func (r *materialRepo) FindBySlug(slug string) (*model.Material, error) {
	var material model.Material
	err := r.db.First(&material, "slug = ?", slug).Error
	return &material, err
}

func (r *materialRepo) FindByID(id uuid.UUID) (*model.Material, error) {
	var material model.Material
	err := r.db.First(&material, "id = ?", id).Error
	return &material, err
}

func (r *materialRepo) Update(material *model.Material) error {
	return r.db.Save(material).Error
}

func (r *materialRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Material{}, "id = ?", id).Error
}

// IncrementViews bumps the counter atomically at the store
func (r *materialRepo) IncrementViews(id uuid.UUID) error {
	return r.db.Model(&model.Material{}).Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

func (r *materialRepo) CountAll() (int64, error) {
	var n int64
	err := r.db.Model(&model.Material{}).Count(&n).Error
	return n, err
}

func (r *materialRepo) TotalViews() (int64, error) {
	var total int64
	err := r.db.Model(&model.Material{}).
		Select("COALESCE(SUM(views_count), 0)").Scan(&total).Error
	return total, err
}
