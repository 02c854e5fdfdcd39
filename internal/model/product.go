package model

import "github.com/google/uuid"

type Product struct {
	BaseModel
	Name        string    `gorm:"type:varchar(100);not null" json:"name" validate:"required,not_forbidden"`
	Description string    `gorm:"type:text" json:"description" validate:"not_forbidden"`
	ImagePath   string    `gorm:"type:varchar(255)" json:"image_path"`
	CategoryID  uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id" validate:"uuid_required"`
	Category    *Category `json:"category,omitempty" validate:"-"`
	Price       int64     `gorm:"not null;default:0" json:"price" validate:"gte=0"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	IsPublished bool      `gorm:"default:false" json:"is_published"`

	// Ownership
	OwnerID uuid.UUID `gorm:"type:uuid;index" json:"owner_id"`
	Owner   *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty" validate:"-"`

	// Relations
	Versions []Version `gorm:"foreignKey:ProductID" json:"versions,omitempty" validate:"-"`
}

// Version is a version record attached to a product. Nothing enforces
// a single row with IsCurrent=true per product; multiple rows may be
// marked current at the same time.
type Version struct {
	BaseModel
	VersionNumber int       `json:"version_number"`
	VersionName   string    `gorm:"type:varchar(50);not null" json:"version_name" validate:"required,max=50"`
	IsCurrent     bool      `gorm:"default:false" json:"is_current"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
}
