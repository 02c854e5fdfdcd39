package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-catalog-api/internal/apperr"
	"go-catalog-api/internal/model"
	"go-catalog-api/internal/repository"
)

func TestCreateProduct(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	category := createTestCategory(t, db, "Electronics")
	svc := NewCatalogService(repository.NewProductRepo(db), repository.NewCategoryRepo(db), db, newTestHub())

	t.Run("valid product", func(t *testing.T) {
		product := &model.Product{
			Name:       "Phone",
			CategoryID: category.ID,
			Price:      500,
			IsActive:   true,
		}
		require.NoError(t, svc.CreateProduct(product, owner))
		assert.Equal(t, owner.ID, product.OwnerID)

		stored, err := svc.GetProduct(product.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(500), stored.Price)
		assert.False(t, stored.IsPublished, "products start unpublished")
	})

	t.Run("forbidden name rejected", func(t *testing.T) {
		product := &model.Product{
			Name:       "казино",
			CategoryID: category.ID,
		}
		err := svc.CreateProduct(product, owner)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("forbidden word as substring is accepted", func(t *testing.T) {
		product := &model.Product{
			Name:       "дешево!!!",
			CategoryID: category.ID,
			IsActive:   true,
		}
		assert.NoError(t, svc.CreateProduct(product, owner))
	})

	t.Run("negative price rejected", func(t *testing.T) {
		product := &model.Product{
			Name:       "Phone",
			CategoryID: category.ID,
			Price:      -5,
		}
		err := svc.CreateProduct(product, owner)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("missing category rejected", func(t *testing.T) {
		product := &model.Product{Name: "Phone"}
		err := svc.CreateProduct(product, owner)
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestUpdateProductWithVersions(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	category := createTestCategory(t, db, "Electronics")
	svc := NewCatalogService(repository.NewProductRepo(db), repository.NewCategoryRepo(db), db, newTestHub())

	product := createTestProduct(t, db, owner, category, "Phone", 500)
	v1 := &model.Version{VersionNumber: 1, VersionName: "v1", IsCurrent: true, IsActive: true, ProductID: product.ID}
	require.NoError(t, db.Create(v1).Error)

	t.Run("owner updates price and adds a version", func(t *testing.T) {
		newPrice := int64(600)
		updated, err := svc.UpdateProduct(product.ID, &ProductUpdate{Price: &newPrice}, []VersionRow{
			{VersionNumber: 2, VersionName: "v2", IsCurrent: true, IsActive: true},
		}, owner)
		require.NoError(t, err)

		assert.Equal(t, int64(600), updated.Price)
		assert.Len(t, updated.Versions, 2)
	})

	t.Run("multiple current versions are allowed", func(t *testing.T) {
		updated, err := svc.UpdateProduct(product.ID, &ProductUpdate{}, nil, owner)
		require.NoError(t, err)

		current := 0
		for _, v := range updated.Versions {
			if v.IsCurrent {
				current++
			}
		}
		assert.Equal(t, 2, current)
	})

	t.Run("updating and deleting rows in one batch", func(t *testing.T) {
		renamed := "v1-final"
		updated, err := svc.UpdateProduct(product.ID, &ProductUpdate{}, []VersionRow{
			{ID: uuidPtr(v1.ID), VersionNumber: 1, VersionName: renamed, IsActive: true},
		}, owner)
		require.NoError(t, err)

		var found bool
		for _, v := range updated.Versions {
			if v.ID == v1.ID {
				found = true
				assert.Equal(t, renamed, v.VersionName)
				assert.False(t, v.IsCurrent)
			}
		}
		assert.True(t, found)

		updated, err = svc.UpdateProduct(product.ID, &ProductUpdate{}, []VersionRow{
			{ID: uuidPtr(v1.ID), Delete: true},
		}, owner)
		require.NoError(t, err)
		assert.Len(t, updated.Versions, 1)
	})

	t.Run("invalid child row rolls back the parent too", func(t *testing.T) {
		before, err := svc.GetProduct(product.ID)
		require.NoError(t, err)

		badPrice := int64(9999)
		_, err = svc.UpdateProduct(product.ID, &ProductUpdate{Price: &badPrice}, []VersionRow{
			{VersionNumber: 3, VersionName: ""},
		}, owner)
		assert.True(t, apperr.IsValidation(err))

		after, err := svc.GetProduct(product.ID)
		require.NoError(t, err)
		assert.Equal(t, before.Price, after.Price, "parent save must not survive a failed batch")
		assert.Len(t, after.Versions, len(before.Versions))
	})

	t.Run("stranger is denied", func(t *testing.T) {
		stranger := createTestUser(t, db, "stranger@example.com")
		newPrice := int64(1)
		_, err := svc.UpdateProduct(product.ID, &ProductUpdate{Price: &newPrice}, nil, stranger)
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
	})
}

func TestUpdateProductModeratorFieldFiltering(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	category := createTestCategory(t, db, "Electronics")
	svc := NewCatalogService(repository.NewProductRepo(db), repository.NewCategoryRepo(db), db, newTestHub())

	product := createTestProduct(t, db, owner, category, "Phone", 500)
	moderator := createModerator(t, db, "moderator@example.com", model.ModerationCapabilities)

	t.Run("allowed fields are applied", func(t *testing.T) {
		description := "reviewed by moderation"
		published := true
		updated, err := svc.UpdateProduct(product.ID, &ProductUpdate{
			Description: &description,
			IsPublished: &published,
		}, nil, moderator)
		require.NoError(t, err)
		assert.Equal(t, description, updated.Description)
		assert.True(t, updated.IsPublished)
	})

	t.Run("owner-only fields in the payload are ignored", func(t *testing.T) {
		injectedName := "hijacked"
		injectedPrice := int64(1)
		updated, err := svc.UpdateProduct(product.ID, &ProductUpdate{
			Name:  &injectedName,
			Price: &injectedPrice,
		}, nil, moderator)
		require.NoError(t, err)
		assert.Equal(t, "Phone", updated.Name)
		assert.Equal(t, int64(500), updated.Price)
	})

	t.Run("moderator missing a capability is denied", func(t *testing.T) {
		partial := createModerator(t, db, "partial@example.com", []string{model.CapSetPublication})
		description := "x"
		_, err := svc.UpdateProduct(product.ID, &ProductUpdate{Description: &description}, nil, partial)
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
	})
}

func TestDeleteProduct(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	category := createTestCategory(t, db, "Electronics")
	svc := NewCatalogService(repository.NewProductRepo(db), repository.NewCategoryRepo(db), db, newTestHub())

	product := createTestProduct(t, db, owner, category, "Phone", 500)
	require.NoError(t, db.Create(&model.Version{VersionNumber: 1, VersionName: "v1", ProductID: product.ID}).Error)

	t.Run("moderator cannot delete", func(t *testing.T) {
		moderator := createModerator(t, db, "moderator@example.com", model.ModerationCapabilities)
		err := svc.DeleteProduct(product.ID, moderator)
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
	})

	t.Run("owner deletes, versions cascade", func(t *testing.T) {
		require.NoError(t, svc.DeleteProduct(product.ID, owner))

		_, err := svc.GetProduct(product.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		var versions int64
		require.NoError(t, db.Model(&model.Version{}).Where("product_id = ?", product.ID).Count(&versions).Error)
		assert.Zero(t, versions)
	})
}

func TestToggleFlags(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	category := createTestCategory(t, db, "Electronics")
	svc := NewCatalogService(repository.NewProductRepo(db), repository.NewCategoryRepo(db), db, newTestHub())

	product := createTestProduct(t, db, owner, category, "Phone", 500)

	t.Run("toggling active twice is an involution", func(t *testing.T) {
		once, err := svc.ToggleActive(product.ID, owner)
		require.NoError(t, err)
		assert.False(t, once.IsActive)

		twice, err := svc.ToggleActive(product.ID, owner)
		require.NoError(t, err)
		assert.True(t, twice.IsActive)
	})

	t.Run("flags are independent", func(t *testing.T) {
		// deactivate, then publish anyway
		inactive, err := svc.ToggleActive(product.ID, owner)
		require.NoError(t, err)
		assert.False(t, inactive.IsActive)

		published, err := svc.TogglePublished(product.ID, owner)
		require.NoError(t, err)
		assert.True(t, published.IsPublished)
		assert.False(t, published.IsActive)
	})

	t.Run("stranger cannot toggle", func(t *testing.T) {
		stranger := createTestUser(t, db, "stranger@example.com")
		_, err := svc.ToggleActive(product.ID, stranger)
		assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
	})
}

func TestGetActiveProducts(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	category := createTestCategory(t, db, "Electronics")
	svc := NewCatalogService(repository.NewProductRepo(db), repository.NewCategoryRepo(db), db, newTestHub())

	createTestProduct(t, db, owner, category, "Visible", 10)
	hidden := createTestProduct(t, db, owner, category, "Hidden", 10)
	require.NoError(t, db.Model(hidden).Update("is_active", false).Error)

	products, err := svc.GetActiveProducts()
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Visible", products[0].Name)
}
