package domain

import (
	"strings"
	"time"
)

// User represents a user of the application in the domain.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Username     string `json:"username" validate:"required,min=3,max=50"`
	Name         string `json:"name" validate:"required,max=255"`
	PasswordHash string `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// NewUser builds a validated user. The caller hashes the password.
func NewUser(userID, username, name, passwordHash string, at time.Time) (*User, error) {
	u := &User{
		UserID:       userID,
		Username:     strings.ToLower(strings.TrimSpace(username)),
		Name:         strings.TrimSpace(name),
		PasswordHash: passwordHash,
		AuditFields:  NewAuditFields(at, userID),
	}
	if err := validateStruct("user", u); err != nil {
		return nil, err
	}
	return u, nil
}
