package authz

import (
	"github.com/google/uuid"

	"go-catalog-api/internal/apperr"
	"go-catalog-api/internal/model"
)

// Action is a gated operation on an owned entity.
type Action string

const (
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionPublish Action = "publish"
)

// FieldSet is the set of parent field names an actor may submit on an
// edit. Resolved once per request and used both to shape the form and
// to drop disallowed fields from the incoming payload, so a lower
// privilege actor cannot inject owner-only fields.
type FieldSet map[string]struct{}

func newFieldSet(names ...string) FieldSet {
	fs := make(FieldSet, len(names))
	for _, n := range names {
		fs[n] = struct{}{}
	}
	return fs
}

func (fs FieldSet) Allows(name string) bool {
	_, ok := fs[name]
	return ok
}

var (
	// OwnerFields is the full edit surface available to the product owner.
	OwnerFields = newFieldSet("name", "description", "image", "category", "price", "is_active", "is_published")
	// ModeratorFields is the reduced surface for moderators editing
	// products they do not own.
	ModeratorFields = newFieldSet("description", "category", "is_published")
)

// isModerator reports whether the actor carries the moderator role AND
// all three product moderation capabilities. Role membership alone is
// not enough.
func isModerator(actor *model.User) bool {
	return actor.HasRole(model.RoleModerator) && actor.HasAllCapabilities(model.ModerationCapabilities)
}

// Can decides whether actor may perform action on an entity owned by
// ownerID. Pure decision function; callers translate the returned
// apperr.ErrPermissionDenied into an HTTP response.
func Can(actor *model.User, ownerID uuid.UUID, action Action) error {
	if actor == nil {
		return apperr.ErrPermissionDenied
	}

	switch action {
	case ActionUpdate, ActionPublish:
		if actor.ID == ownerID || isModerator(actor) {
			return nil
		}
	case ActionDelete:
		// Owner only. Moderators get no bypass for delete.
		if actor.ID == ownerID {
			return nil
		}
	}
	return apperr.ErrPermissionDenied
}

// FieldsFor resolves the edit surface for actor on an entity owned by
// ownerID. Owners get the full set; everyone else (who passed Can) is
// a moderator and gets the reduced set.
func FieldsFor(actor *model.User, ownerID uuid.UUID) FieldSet {
	if actor != nil && actor.ID == ownerID {
		return OwnerFields
	}
	return ModeratorFields
}
