package repository

import (
	"go-catalog-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindActive() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	Update(product *model.Product) error
	Delete(tx *gorm.DB, id uuid.UUID, deletedBy string) error
	CountAll() (int64, error)
	CountPublished() (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Preload("Versions").Find(&products).Error
	return products, err
}

func (r *productRepo) FindActive() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Preload("Versions").
		Where("is_active = ?", true).Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").Preload("Versions").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// Delete receives tx so the cascade to version rows stays in one transaction
func (r *productRepo) Delete(tx *gorm.DB, id uuid.UUID, deletedBy string) error {
	if err := tx.Where("product_id = ?", id).Delete(&model.Version{}).Error; err != nil {
		return err
	}
	if err := tx.Model(&model.Product{}).Where("id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) CountAll() (int64, error) {
	var n int64
	err := r.db.Model(&model.Product{}).Count(&n).Error
	return n, err
}

func (r *productRepo) CountPublished() (int64, error) {
	var n int64
	err := r.db.Model(&model.Product{}).Where("is_published = ?", true).Count(&n).Error
	return n, err
}
