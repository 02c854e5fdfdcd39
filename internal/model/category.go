package model

import "github.com/google/uuid"

// Category groups products. Deleting a category cascades to its
// products and their versions (handled in the service layer because
// soft deletes bypass DB-level ON DELETE CASCADE).
type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null" json:"name" validate:"required,not_forbidden"`
	Description string `gorm:"type:text" json:"description" validate:"not_forbidden"`
	ImagePath   string `gorm:"type:varchar(255)" json:"image_path"`

	// Relations
	Products []Product         `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
	Versions []VersionCategory `gorm:"foreignKey:CategoryID" json:"versions,omitempty"`
}

// VersionCategory is a version record scoped to a category.
// Same shape as Version but owned by a Category.
type VersionCategory struct {
	BaseModel
	VersionNumber int       `json:"version_number"`
	VersionName   string    `gorm:"type:varchar(50);not null" json:"version_name" validate:"required,max=50"`
	IsCurrent     bool      `gorm:"default:false" json:"is_current"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CategoryID    uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id" validate:"uuid_required"`
}
