package model

// Material is a published article: title/body content addressed by
// slug, with a view counter bumped on every detail read.
type Material struct {
	BaseModel
	Title       string `gorm:"type:varchar(150);not null" json:"title" validate:"required"`
	Slug        string `gorm:"type:varchar(150);uniqueIndex;not null" json:"slug"`
	Body        string `gorm:"type:text" json:"body"`
	IsPublished bool   `gorm:"default:false" json:"is_published"`
	ViewsCount  int    `gorm:"default:0" json:"views_count"`
}

func (Material) TableName() string {
	return "materials"
}
