package domain

import (
	"errors"
	"time"
)

// Role identifies what an account is allowed to do.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleCityAdmin  Role = "city_admin"
	RoleCitizen    Role = "citizen"
)

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r Role) bool {
	return r == RoleSuperAdmin || r == RoleCityAdmin || r == RoleCitizen
}

var ErrEmailTaken = errors.New("email already registered")
var ErrAccountNotFound = errors.New("account not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")

// Account models a registered actor: a citizen, a city administrator, or the
// singleton super administrator. Email is unique across all accounts with an
// exact-case match.
type Account struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	City         string    `json:"city,omitempty" bson:"city,omitempty"`
	State        string    `json:"state,omitempty" bson:"state,omitempty"`
	Address      string    `json:"address,omitempty" bson:"address,omitempty"`
	Phone        string    `json:"phone,omitempty" bson:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
