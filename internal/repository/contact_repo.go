package repository

import (
	"go-catalog-api/internal/model"

	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(contact *model.Contact) error
	FindAll() ([]model.Contact, error)
	FindByPhone(phone string) (*model.Contact, error)
}

type contactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) ContactRepository {
	return &contactRepo{db}
}

func (r *contactRepo) Create(contact *model.Contact) error {
	return r.db.Create(contact).Error
}

func (r *contactRepo) FindAll() ([]model.Contact, error) {
	var contacts []model.Contact
	err := r.db.Find(&contacts).Error
	return contacts, err
}

func (r *contactRepo) FindByPhone(phone string) (*model.Contact, error) {
	var contact model.Contact
	if err := r.db.First(&contact, "phone = ?", phone).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}
