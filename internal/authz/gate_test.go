package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-catalog-api/internal/apperr"
	"go-catalog-api/internal/model"
)

func userWith(role string, capabilities ...string) *model.User {
	u := &model.User{}
	u.ID = uuid.New()
	if role != "" {
		u.Role = &model.Role{Code: role}
	}
	for _, code := range capabilities {
		u.Capabilities = append(u.Capabilities, model.Capability{Code: code})
	}
	return u
}

func TestCan(t *testing.T) {
	ownerID := uuid.New()
	owner := &model.User{}
	owner.ID = ownerID

	fullModerator := userWith(model.RoleModerator, model.ModerationCapabilities...)
	partialModerator := userWith(model.RoleModerator, model.CapSetPublication, model.CapSetCategory)
	capsNoRole := userWith("", model.ModerationCapabilities...)
	stranger := userWith("")

	testCases := []struct {
		name    string
		actor   *model.User
		action  Action
		allowed bool
	}{
		{"owner can update", owner, ActionUpdate, true},
		{"owner can publish", owner, ActionPublish, true},
		{"owner can delete", owner, ActionDelete, true},
		{"stranger cannot update", stranger, ActionUpdate, false},
		{"moderator with all capabilities can update", fullModerator, ActionUpdate, true},
		{"moderator with all capabilities can publish", fullModerator, ActionPublish, true},
		{"moderator missing one capability cannot update", partialModerator, ActionUpdate, false},
		{"capabilities without the role are not enough", capsNoRole, ActionUpdate, false},
		{"moderator cannot delete", fullModerator, ActionDelete, false},
		{"nil actor is denied", nil, ActionUpdate, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Can(tc.actor, ownerID, tc.action)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperr.ErrPermissionDenied)
			}
		})
	}
}

func TestFieldsFor(t *testing.T) {
	ownerID := uuid.New()
	owner := &model.User{}
	owner.ID = ownerID
	moderator := userWith(model.RoleModerator, model.ModerationCapabilities...)

	ownerFields := FieldsFor(owner, ownerID)
	assert.True(t, ownerFields.Allows("name"))
	assert.True(t, ownerFields.Allows("price"))
	assert.True(t, ownerFields.Allows("is_active"))

	moderatorFields := FieldsFor(moderator, ownerID)
	assert.True(t, moderatorFields.Allows("description"))
	assert.True(t, moderatorFields.Allows("category"))
	assert.True(t, moderatorFields.Allows("is_published"))
	assert.False(t, moderatorFields.Allows("name"), "owner-only field withheld from moderators")
	assert.False(t, moderatorFields.Allows("price"))
	assert.False(t, moderatorFields.Allows("is_active"))
}
