package entity

import (
	"time"
)

// User caches an identity issued by the external identity provider.
// Exactly one record exists per SubjectID; credentials live with the provider.
type User struct {
	ID          string    `json:"_id"`
	SubjectID   string    `json:"firebaseUid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        Role      `json:"role"`
	LastLogin   time.Time `json:"lastLogin"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user may reach admin-only routes
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }
