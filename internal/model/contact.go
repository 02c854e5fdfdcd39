package model

// Contact is a message left through the contact form.
// Phone uniqueness is enforced at the store.
type Contact struct {
	BaseModel
	Name    string `gorm:"type:varchar(100)" json:"name"`
	Phone   string `gorm:"type:varchar(30);uniqueIndex;not null" json:"phone" validate:"required"`
	Message string `gorm:"type:text" json:"message"`
}
