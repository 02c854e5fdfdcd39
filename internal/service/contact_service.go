package service

import (
	"fmt"

	"go-catalog-api/internal/apperr"
	"go-catalog-api/internal/model"
	"go-catalog-api/internal/repository"
	"go-catalog-api/pkg/validator"
)

type ContactService interface {
	SubmitContact(req *model.Contact) error
	GetContacts() ([]model.Contact, error)
}

type contactService struct {
	contactRepo repository.ContactRepository
}

func NewContactService(cRepo repository.ContactRepository) ContactService {
	return &contactService{contactRepo: cRepo}
}

func (s *contactService) SubmitContact(req *model.Contact) error {
	if err := firstValidationError(validator.ValidateStruct(req)); err != nil {
		return err
	}

	// Phone is unique at the store; check first for a clean error
	if existing, _ := s.contactRepo.FindByPhone(req.Phone); existing != nil {
		return fmt.Errorf("phone: %w", apperr.ErrConflict)
	}

	return s.contactRepo.Create(req)
}

func (s *contactService) GetContacts() ([]model.Contact, error) {
	return s.contactRepo.FindAll()
}
