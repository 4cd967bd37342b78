package models

import "time"

// User roles. Merchandisers execute missions, superviseurs plan them,
// client users read the aggregated reports of their own Client.
const (
	RoleClient       = "client"
	RoleSuperviseur  = "superviseur"
	RoleMerchandiser = "merchandiser"
)

// IsValidRole reports whether the given role is one of the known roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleClient, RoleSuperviseur, RoleMerchandiser:
		return true
	}
	return false
}

// User is an operator account (merchandiser, superviseur or client user).
type User struct {
	ID           int64     `json:"id" db:"id"`
	ClientID     *int64    `json:"client_id,omitempty" db:"client_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Region       string    `json:"region" db:"region"`
	Wilaya       string    `json:"wilaya" db:"wilaya"`
	PhoneNumber  string    `json:"phone_number" db:"phone_number"`
	Role         string    `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// FullName returns "First Last" for display in reports.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Actor identifies the authenticated caller of an operation. It is resolved
// from the JWT claims by the auth middleware and passed explicitly into every
// service operation; there is no ambient "current user".
type Actor struct {
	UserID   int64
	Email    string
	Role     string
	ClientID *int64
}
