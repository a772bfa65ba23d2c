// Package domain contains the core records of the marketplace.
// No storage, network, or UI logic should be added here.
package domain

import "time"

const (
	RoleCollector  = "COLLECTOR"
	RoleTechnician = "TECHNICIAN"
	RoleAdmin      = "ADMIN"
)

// User is a registered account, either a collector requesting work,
// a technician fulfilling it, or an admin.
type User struct {
	ID                string
	FirstName         string
	LastName          string
	Phone             string
	Username          string
	Email             string
	Role              string
	PasswordHash      string
	ProfilePictureURL string
	IsVerified        bool
	CreatedAt         time.Time
}

// UserView is the denormalized display projection embedded in messages
// and conversation listings. It never carries credentials.
type UserView struct {
	ID                string `json:"id"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
	Role              string `json:"role,omitempty"`
}

func (u User) View() UserView {
	return UserView{
		ID:                u.ID,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		ProfilePictureURL: u.ProfilePictureURL,
		Role:              u.Role,
	}
}
