package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents an authenticated user in the system
type User struct {
	BaseModel
	Email        string       `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password     string       `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName     string       `gorm:"type:varchar(255)" json:"full_name" validate:"required"`
	PhoneNumber  string       `gorm:"type:varchar(20)" json:"phone_number"`
	RoleID       *uint        `gorm:"index" json:"role_id"`
	Role         *Role        `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	IsActive     bool         `gorm:"default:true" json:"is_active"`
	Capabilities []Capability `gorm:"many2many:user_capabilities;" json:"capabilities,omitempty"`
	TokenVersion string       `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement

	// Password reset flow
	ResetToken       *string    `gorm:"type:varchar(255);index" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// HasCapability checks if the user has a specific capability
func (u *User) HasCapability(code string) bool {
	for _, c := range u.Capabilities {
		if c.Code == code {
			return true
		}
	}
	return false
}

// HasAllCapabilities checks if the user holds every capability in codes
func (u *User) HasAllCapabilities(codes []string) bool {
	for _, code := range codes {
		if !u.HasCapability(code) {
			return false
		}
	}
	return true
}

// HasRole checks the user's role code
func (u *User) HasRole(code string) bool {
	return u.Role != nil && u.Role.Code == code
}

// GetCapabilityCodes returns a slice of all capability codes for this user
func (u *User) GetCapabilityCodes() []string {
	codes := make([]string, len(u.Capabilities))
	for i, c := range u.Capabilities {
		codes[i] = c.Code
	}
	return codes
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID           uuid.UUID    `json:"id"`
	Email        string       `json:"email"`
	FullName     string       `json:"full_name"`
	PhoneNumber  string       `json:"phone_number"`
	RoleID       *uint        `json:"role_id,omitempty"`
	Role         *Role        `json:"role,omitempty"`
	IsActive     bool         `json:"is_active"`
	Capabilities []Capability `json:"capabilities"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		PhoneNumber:  u.PhoneNumber,
		RoleID:       u.RoleID,
		Role:         u.Role,
		IsActive:     u.IsActive,
		Capabilities: u.Capabilities,
	}
}
