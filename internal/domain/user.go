package domain

import "time"

type UserRole string

const (
	RoleRenter  UserRole = "renter"
	RoleOwner   UserRole = "owner"
	RoleAdmin   UserRole = "admin"
	RolePending UserRole = "pending"
)

type VerificationStatus string

const (
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
	VerificationRejected   VerificationStatus = "rejected"
)

type User struct {
	ID                 int64              `json:"id"`
	Email              string             `json:"email" validate:"required,email"`
	PasswordHash       string             `json:"-"`
	Role               UserRole           `json:"role"`
	FirstName          string             `json:"first_name"`
	LastName           string             `json:"last_name"`
	Phone              string             `json:"phone,omitempty"`
	AvatarURL          string             `json:"avatar_url,omitempty"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	IsActive           bool               `json:"is_active"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// FullName is used for notification and email templates.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
