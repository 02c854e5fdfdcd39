package model

// Capability represents a fine-grained permission that can be assigned to users
type Capability struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "product:set_publication"
	Name string `gorm:"type:varchar(100)" json:"name"`
}

// Product moderation capabilities. A moderator must hold all three to
// edit products they do not own.
const (
	CapSetPublication = "product:set_publication"
	CapSetCategory    = "product:set_category"
	CapSetDescription = "product:set_description"
)

// ModerationCapabilities is the full set required for moderator edits.
var ModerationCapabilities = []string{CapSetPublication, CapSetCategory, CapSetDescription}

// Default capabilities for the system
var DefaultCapabilities = []Capability{
	// Product moderation
	{Code: CapSetPublication, Name: "Set Product Publication"},
	{Code: CapSetCategory, Name: "Set Product Category"},
	{Code: CapSetDescription, Name: "Set Product Description"},
	// User management
	{Code: "user:view", Name: "View User"},
	{Code: "user:create", Name: "Create User"},
	{Code: "user:update", Name: "Update User"},
	{Code: "user:delete", Name: "Delete User"},
	{Code: "user:update_capability", Name: "Update User Capabilities"},
	// Contact form submissions
	{Code: "contact:view", Name: "View Contacts"},
}
