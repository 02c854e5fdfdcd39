package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-catalog-api/internal/model"
	"go-catalog-api/internal/ws"
)

// setupTestDB opens an isolated in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Category{}, &model.Product{}, &model.Version{}, &model.VersionCategory{},
		&model.Material{}, &model.Contact{},
		&model.User{}, &model.Capability{}, &model.Role{},
	))

	return db
}

func newTestHub() *ws.Hub {
	hub := ws.NewHub()
	go hub.Run()
	return hub
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		Email:    email,
		Password: "x",
		FullName: "Test User",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createModerator builds a user carrying the moderator role plus every
// capability in codes.
func createModerator(t *testing.T, db *gorm.DB, email string, codes []string) *model.User {
	t.Helper()

	role := &model.Role{Code: model.RoleModerator, Name: "Moderator"}
	require.NoError(t, db.FirstOrCreate(role, model.Role{Code: model.RoleModerator}).Error)

	capabilities := make([]model.Capability, 0, len(codes))
	for _, code := range codes {
		capability := model.Capability{Code: code, Name: code}
		require.NoError(t, db.FirstOrCreate(&capability, model.Capability{Code: code}).Error)
		capabilities = append(capabilities, capability)
	}

	user := &model.User{
		Email:        email,
		Password:     "x",
		FullName:     "Test Moderator",
		IsActive:     true,
		RoleID:       &role.ID,
		Role:         role,
		Capabilities: capabilities,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createAdmin(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	role := &model.Role{Code: model.RoleAdmin, Name: "Administrator"}
	require.NoError(t, db.FirstOrCreate(role, model.Role{Code: model.RoleAdmin}).Error)

	user := &model.User{
		Email:    email,
		Password: "x",
		FullName: "Test Admin",
		IsActive: true,
		RoleID:   &role.ID,
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()

	category := &model.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createTestProduct(t *testing.T, db *gorm.DB, owner *model.User, category *model.Category, name string, price int64) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:       name,
		CategoryID: category.ID,
		Price:      price,
		IsActive:   true,
		OwnerID:    owner.ID,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }
