package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-catalog-api/internal/apperr"
	"go-catalog-api/internal/model"
	"go-catalog-api/internal/repository"
)

func TestCreateMaterial(t *testing.T) {
	db := setupTestDB(t)
	actor := createTestUser(t, db, "author@example.com")
	svc := NewMaterialService(repository.NewMaterialRepo(db), newTestHub())

	t.Run("slug generated from title", func(t *testing.T) {
		material := &model.Material{Title: "Choosing a Phone", Body: "text"}
		require.NoError(t, svc.CreateMaterial(material, actor))
		assert.Equal(t, "choosing-a-phone", material.Slug)
	})

	t.Run("cyrillic title transliterated", func(t *testing.T) {
		material := &model.Material{Title: "Новая статья", Body: "text"}
		require.NoError(t, svc.CreateMaterial(material, actor))
		require.NotEmpty(t, material.Slug)
		for _, r := range material.Slug {
			assert.Less(t, r, rune(128), "slug must be ascii")
		}

		read, err := svc.GetMaterialBySlug(material.Slug)
		require.NoError(t, err)
		assert.Equal(t, "Новая статья", read.Title)
	})

	t.Run("duplicate title conflicts on slug", func(t *testing.T) {
		err := svc.CreateMaterial(&model.Material{Title: "Choosing a Phone", Body: "other"}, actor)
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		err := svc.CreateMaterial(&model.Material{Body: "text"}, actor)
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestMaterialViewCounter(t *testing.T) {
	db := setupTestDB(t)
	actor := createTestUser(t, db, "author@example.com")
	svc := NewMaterialService(repository.NewMaterialRepo(db), newTestHub())

	material := &model.Material{Title: "Popular Post", Body: "text"}
	require.NoError(t, svc.CreateMaterial(material, actor))

	for i := 1; i <= 3; i++ {
		read, err := svc.GetMaterialBySlug("popular-post")
		require.NoError(t, err)
		assert.Equal(t, i, read.ViewsCount)
	}

	_, err := svc.GetMaterialBySlug("no-such-slug")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateMaterial(t *testing.T) {
	db := setupTestDB(t)
	actor := createTestUser(t, db, "author@example.com")
	svc := NewMaterialService(repository.NewMaterialRepo(db), newTestHub())

	material := &model.Material{Title: "Old Title", Body: "text"}
	require.NoError(t, svc.CreateMaterial(material, actor))

	t.Run("retitle regenerates slug", func(t *testing.T) {
		title := "Fresh Title"
		updated, err := svc.UpdateMaterial("old-title", &MaterialUpdate{Title: &title}, actor)
		require.NoError(t, err)
		assert.Equal(t, "fresh-title", updated.Slug)

		_, err = svc.GetMaterialBySlug("old-title")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("toggle publish flips flag", func(t *testing.T) {
		toggled, err := svc.TogglePublished("fresh-title", actor)
		require.NoError(t, err)
		assert.True(t, toggled.IsPublished)

		toggled, err = svc.TogglePublished("fresh-title", actor)
		require.NoError(t, err)
		assert.False(t, toggled.IsPublished)
	})

	t.Run("published listing only shows published", func(t *testing.T) {
		published, err := svc.GetPublishedMaterials()
		require.NoError(t, err)
		assert.Empty(t, published)

		_, err = svc.TogglePublished("fresh-title", actor)
		require.NoError(t, err)

		published, err = svc.GetPublishedMaterials()
		require.NoError(t, err)
		require.Len(t, published, 1)
		assert.Equal(t, "fresh-title", published[0].Slug)
	})

	t.Run("delete removes by slug", func(t *testing.T) {
		require.NoError(t, svc.DeleteMaterial("fresh-title", actor))
		_, err := svc.GetMaterialBySlug("fresh-title")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
