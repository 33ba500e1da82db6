package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleRider  Role = "rider"
	RoleDriver Role = "driver"
)

// ValidRoles lists every role a user document may carry.
var ValidRoles = []Role{RoleAdmin, RoleRider, RoleDriver}

func IsValidRole(r Role) bool {
	for _, role := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Role        Role               `json:"role" bson:"role" validate:"required"`
	FirstName   string             `json:"first_name" bson:"first_name" validate:"required,min=1,max=100"`
	LastName    string             `json:"last_name" bson:"last_name" validate:"required,min=1,max=100"`
	Email       string             `json:"email" bson:"email" validate:"required,email"`
	PhoneNumber string             `json:"phone_number" bson:"phone_number" validate:"required"`
	Password    string             `json:"-" bson:"password"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// AccessibleBy reports whether the principal owns this account, for the
// object-scoped "admin or self" checks on user records.
func (u *User) AccessibleBy(p *User) bool {
	return p != nil && u.ID == p.ID
}
