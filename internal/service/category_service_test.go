package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-catalog-api/internal/apperr"
	"go-catalog-api/internal/model"
	"go-catalog-api/internal/repository"
)

func TestCreateCategory(t *testing.T) {
	db := setupTestDB(t)
	actor := createTestUser(t, db, "user@example.com")
	svc := NewCategoryService(repository.NewCategoryRepo(db), db, newTestHub())

	t.Run("valid category", func(t *testing.T) {
		category := &model.Category{Name: "Electronics", Description: "gadgets"}
		require.NoError(t, svc.CreateCategory(category, actor))

		stored, err := svc.GetCategory(category.ID)
		require.NoError(t, err)
		assert.Equal(t, "Electronics", stored.Name)
	})

	t.Run("forbidden name rejected", func(t *testing.T) {
		err := svc.CreateCategory(&model.Category{Name: "биржа"}, actor)
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("empty name rejected", func(t *testing.T) {
		err := svc.CreateCategory(&model.Category{}, actor)
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestUpdateCategoryWithVersions(t *testing.T) {
	db := setupTestDB(t)
	actor := createTestUser(t, db, "user@example.com")
	category := createTestCategory(t, db, "Electronics")
	svc := NewCategoryService(repository.NewCategoryRepo(db), db, newTestHub())

	t.Run("rename and add version rows", func(t *testing.T) {
		name := "Home Electronics"
		updated, err := svc.UpdateCategory(category.ID, &CategoryUpdate{Name: &name}, []VersionRow{
			{VersionNumber: 1, VersionName: "initial", IsCurrent: true, IsActive: true},
		}, actor)
		require.NoError(t, err)
		assert.Equal(t, name, updated.Name)
		require.Len(t, updated.Versions, 1)
		assert.True(t, updated.Versions[0].IsCurrent)
	})

	t.Run("forbidden description rejected", func(t *testing.T) {
		description := "обман"
		_, err := svc.UpdateCategory(category.ID, &CategoryUpdate{Description: &description}, nil, actor)
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestDeleteCategoryCascades(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	admin := createAdmin(t, db, "admin@example.com")
	category := createTestCategory(t, db, "Electronics")
	svc := NewCategoryService(repository.NewCategoryRepo(db), db, newTestHub())

	product := createTestProduct(t, db, owner, category, "Phone", 500)
	require.NoError(t, db.Create(&model.Version{VersionNumber: 1, VersionName: "v1", ProductID: product.ID}).Error)
	require.NoError(t, db.Create(&model.VersionCategory{VersionNumber: 1, VersionName: "c1", CategoryID: category.ID}).Error)

	t.Run("non-admin is denied", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteCategory(category.ID, owner), apperr.ErrPermissionDenied)
	})

	t.Run("admin delete removes products and versions", func(t *testing.T) {
		require.NoError(t, svc.DeleteCategory(category.ID, admin))

		_, err := svc.GetCategory(category.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		var products, versions, categoryVersions int64
		require.NoError(t, db.Model(&model.Product{}).Where("category_id = ?", category.ID).Count(&products).Error)
		require.NoError(t, db.Model(&model.Version{}).Where("product_id = ?", product.ID).Count(&versions).Error)
		require.NoError(t, db.Model(&model.VersionCategory{}).Where("category_id = ?", category.ID).Count(&categoryVersions).Error)
		assert.Zero(t, products)
		assert.Zero(t, versions)
		assert.Zero(t, categoryVersions)
	})
}
