package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-catalog-api/internal/apperr"
	"go-catalog-api/internal/model"
	"go-catalog-api/internal/repository"
)

func TestSubmitContact(t *testing.T) {
	db := setupTestDB(t)
	svc := NewContactService(repository.NewContactRepo(db))

	t.Run("valid submission stored", func(t *testing.T) {
		err := svc.SubmitContact(&model.Contact{
			Name:    "Ivan",
			Phone:   "+7 900 123-45-67",
			Message: "Please call me back",
		})
		require.NoError(t, err)

		contacts, err := svc.GetContacts()
		require.NoError(t, err)
		require.Len(t, contacts, 1)
		assert.Equal(t, "+7 900 123-45-67", contacts[0].Phone)
	})

	t.Run("duplicate phone rejected", func(t *testing.T) {
		err := svc.SubmitContact(&model.Contact{
			Name:  "Another Ivan",
			Phone: "+7 900 123-45-67",
		})
		assert.ErrorIs(t, err, apperr.ErrConflict)

		contacts, err := svc.GetContacts()
		require.NoError(t, err)
		assert.Len(t, contacts, 1)
	})

	t.Run("missing phone rejected", func(t *testing.T) {
		err := svc.SubmitContact(&model.Contact{Name: "No Phone"})
		assert.True(t, apperr.IsValidation(err))
	})
}
