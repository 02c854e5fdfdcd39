package model

// Role represents user roles in the system
type Role struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Code         string       `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // ADMIN, MODERATOR
	Name         string       `gorm:"type:varchar(100)" json:"name"`
	Description  string       `gorm:"type:text" json:"description"`
	Capabilities []Capability `gorm:"many2many:role_capabilities;" json:"capabilities,omitempty"`
}

// Role codes as constants
const (
	RoleAdmin     = "ADMIN"
	RoleModerator = "MODERATOR"
)

// DefaultRoles defines the default roles in the system
var DefaultRoles = []Role{
	{
		Code:        RoleAdmin,
		Name:        "Administrator",
		Description: "Full system access with all capabilities",
	},
	{
		Code:        RoleModerator,
		Name:        "Moderator",
		Description: "Restricted edit access to products owned by other users",
	},
}
